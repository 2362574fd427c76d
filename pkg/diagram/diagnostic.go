package diagram

import "fmt"

// DiagnosticCode classifies a non-fatal generation problem.
type DiagnosticCode string

// Diagnostic codes.
const (
	// DiagUnresolved marks an edge dropped because an endpoint is not declared.
	DiagUnresolved DiagnosticCode = "unresolved_reference"
	// DiagDuplicate marks a node declared more than once and emitted once.
	DiagDuplicate DiagnosticCode = "duplicate_node"
	// DiagUnsupported marks an unrecognized kind or mismatched payload.
	DiagUnsupported DiagnosticCode = "unsupported_kind"
	// DiagUnknownRelationship marks a relationship kind rendered as a plain arrow.
	DiagUnknownRelationship DiagnosticCode = "unknown_relationship"
)

// Diagnostic reports something a generator omitted or reinterpreted.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
	Source  string         `json:"source,omitempty"`
	Target  string         `json:"target,omitempty"`
}

// String formats d for log output.
func (d Diagnostic) String() string {
	if d.Source == "" && d.Target == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s (%s -> %s)", d.Code, d.Message, d.Source, d.Target)
}

// Unresolved builds a [DiagUnresolved] diagnostic for the edge source → target.
func Unresolved(what, source, target string) Diagnostic {
	return Diagnostic{
		Code:    DiagUnresolved,
		Message: fmt.Sprintf("invalid %s", what),
		Source:  source,
		Target:  target,
	}
}
