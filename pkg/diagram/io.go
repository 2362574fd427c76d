package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// Document is the persisted unit: one project's diagram set.
type Document struct {
	ID           string    `json:"id" bson:"_id"`
	ProjectTitle string    `json:"project_title" bson:"project_title"`
	Diagrams     Set       `json:"diagrams" bson:"diagrams"`
	StoredAt     time.Time `json:"stored_at" bson:"stored_at"`
}

// envelope matches both the backend response and a stored document.
type envelope struct {
	ProjectTitle string          `json:"project_title"`
	Diagrams     json.RawMessage `json:"diagrams"`
}

// ReadSet decodes a diagram set from r.
//
// Two shapes are accepted: a bare set ({"UML": ..., "Flowchart": ..., "DFD": ...})
// and an envelope carrying the set under "diagrams", optionally with a
// "project_title". The title from an envelope is returned alongside the set;
// it is empty for bare sets.
//
// ReadSet returns an INVALID_PAYLOAD error for malformed JSON or a document
// that contains no diagrams at all. ReadSet does not close r.
func ReadSet(r io.Reader) (Set, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Set{}, "", fmt.Errorf("read: %w", err)
	}
	return decodeSet(data)
}

// ImportSet reads the JSON file at path with [ReadSet].
func ImportSet(path string) (Set, string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, "", apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Set{}, "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSet(f)
}

func decodeSet(data []byte) (Set, string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Set{}, "", apperrors.Wrap(apperrors.ErrCodeInvalidPayload, err, "decode diagrams")
	}

	body := data
	if len(bytes.TrimSpace(env.Diagrams)) > 0 {
		body = env.Diagrams
	}

	var s Set
	if err := json.Unmarshal(body, &s); err != nil {
		return Set{}, "", apperrors.Wrap(apperrors.ErrCodeInvalidPayload, err, "decode diagrams")
	}
	if s.Empty() {
		return Set{}, "", apperrors.New(apperrors.ErrCodeInvalidPayload, "no UML, Flowchart or DFD diagram found")
	}
	return s, env.ProjectTitle, nil
}

// DecodePayload decodes a single payload for kind k.
// The returned value is a pointer to the kind's payload type.
func DecodePayload(k Kind, data []byte) (any, error) {
	var target any
	switch k {
	case KindClass:
		target = &ClassDiagram{}
	case KindFlowchart:
		target = &Flowchart{}
	case KindDataFlow:
		target = &DataFlowDiagram{}
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidKind, "unsupported diagram kind: %q", string(k))
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidPayload, err, "decode %s payload", k)
	}
	return target, nil
}
