package errors

import (
	"strings"
	"unicode"
)

// maxProjectTitleLength bounds project titles used as storage keys and URL segments.
const maxProjectTitleLength = 256

// ValidateProjectTitle validates a project title before it is used as a store key.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only titles
//   - No control characters
//   - No null bytes or path separators
//   - Maximum length of 256 characters
func ValidateProjectTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return New(ErrCodeInvalidProject, "project title cannot be empty")
	}

	if len(title) > maxProjectTitleLength {
		return New(ErrCodeInvalidProject, "project title too long (max %d characters)", maxProjectTitleLength)
	}

	for _, r := range title {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidProject, "project title contains invalid control characters")
		}
	}

	if strings.ContainsAny(title, "/\\") {
		return New(ErrCodeInvalidProject, "project title cannot contain path separators")
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output path for the CLI.
// It rejects empty paths and null bytes; relative and absolute paths are both allowed.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidInput, "output path contains null byte")
	}
	return nil
}
