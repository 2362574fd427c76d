package errors

import (
	"strings"
	"testing"
)

func TestValidateProjectTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Adaptive Learning Path Generator", false},
		{"valid with punctuation", "Chat-App (v2)", false},
		{"valid unicode", "Générateur de quiz", false},

		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectTitle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateProjectTitle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidProject) {
				t.Errorf("ValidateProjectTitle(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidProject)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/diagram.svg"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateOutputPath(""); err == nil {
		t.Error("empty path should be rejected")
	}
	if err := ValidateOutputPath("a\x00b"); err == nil {
		t.Error("null byte should be rejected")
	}
}
