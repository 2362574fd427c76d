package mermaid

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
)

// UnsupportedMarker prefixes the comment returned for an unrecognized kind.
const UnsupportedMarker = "%% Unsupported diagram type"

const (
	reservedSuffix = "_Node"
	indent         = "    "
	memberIndent   = "        "

	headerClass = "classDiagram"
	headerFlow  = "flowchart TD"

	defaultArrow        = "-->"
	defaultRelationship = diagram.RelAssociation
)

// reservedWords are identifiers the Mermaid parser treats as keywords.
var reservedWords = map[string]bool{
	"end":      true,
	"subgraph": true,
	"class":    true,
	"style":    true,
}

// relationshipArrows maps a relationship kind to its class diagram arrow.
var relationshipArrows = map[string]string{
	diagram.RelAggregation: "o--",
	diagram.RelComposition: "*--",
	diagram.RelInheritance: "--|>",
	diagram.RelAssociation: defaultArrow,
}

type shape struct{ open, close string }

// elementShapes maps a flowchart element kind to its node wrapper.
var elementShapes = map[string]shape{
	diagram.ElementStart:    {"(", ")"},
	diagram.ElementEnd:      {"(", ")"},
	diagram.ElementDecision: {"{", "}"},
}

var (
	processShape = shape{"[", "]"}
	entityShape  = shape{"([", "])"}
)

// Options tunes generation. The zero value is the default policy.
type Options struct {
	// ChainSequential links consecutive flowchart elements with plain arrows
	// when the flowchart declares no connections at all.
	ChainSequential bool
}

// Result is the output of one generation call.
type Result struct {
	// Code is the Mermaid source, newline terminated.
	Code string
	// Diagnostics lists every edge that was dropped or reinterpreted, in
	// input order. It is nil when the input was fully resolved.
	Diagnostics []diagram.Diagnostic
}

// Generate translates payload as a diagram of the given kind.
//
// payload must be the kind's payload type from package diagram, by value or
// by pointer; a nil pointer produces just the header line. An unrecognized
// kind, or a payload that does not match the kind, returns the
// [UnsupportedMarker] comment with a single diagnostic.
func Generate(kind diagram.Kind, payload any, opts Options) Result {
	switch kind {
	case diagram.KindClass:
		switch p := payload.(type) {
		case diagram.ClassDiagram:
			return ClassDiagram(p)
		case *diagram.ClassDiagram:
			return ClassDiagram(deref(p))
		}
	case diagram.KindFlowchart:
		switch p := payload.(type) {
		case diagram.Flowchart:
			return Flowchart(p, opts)
		case *diagram.Flowchart:
			return Flowchart(deref(p), opts)
		}
	case diagram.KindDataFlow:
		switch p := payload.(type) {
		case diagram.DataFlowDiagram:
			return DataFlow(p)
		case *diagram.DataFlowDiagram:
			return DataFlow(deref(p))
		}
	default:
		return unsupported(kind, fmt.Sprintf("unsupported diagram type: %s", kind))
	}
	return unsupported(kind, fmt.Sprintf("payload %T does not match diagram type %s", payload, kind))
}

// Code is [Generate] with default options, discarding diagnostics.
func Code(kind diagram.Kind, payload any) string {
	return Generate(kind, payload, Options{}).Code
}

// Unsupported returns the comment emitted for an unrecognized kind.
func Unsupported(kind diagram.Kind) string {
	return fmt.Sprintf("%s: %s\n", UnsupportedMarker, kind)
}

func unsupported(kind diagram.Kind, msg string) Result {
	return Result{
		Code:        Unsupported(kind),
		Diagnostics: []diagram.Diagnostic{{Code: diagram.DiagUnsupported, Message: msg}},
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// Sanitize converts id into a token the Mermaid parser accepts as a node
// identifier. Each run of whitespace becomes one underscore; a result equal
// to a reserved word (case-insensitive) gets the "_Node" suffix.
//
//	Sanitize("Learning Resource") == "Learning_Resource"
//	Sanitize("End")               == "End_Node"
func Sanitize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	inSpace := false
	for _, r := range id {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	s := b.String()
	if reservedWords[strings.ToLower(s)] {
		s += reservedSuffix
	}
	return s
}

// =============================================================================
// Class Diagram
// =============================================================================

// ClassDiagram renders d as a Mermaid classDiagram.
//
// Relationships whose source or target is not a declared class are dropped
// with an unresolved-reference diagnostic. Relationship kinds missing from the
// arrow table render as a plain arrow; a non-empty unknown kind is reported.
func ClassDiagram(d diagram.ClassDiagram) Result {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic

	buf.WriteString(headerClass + "\n")

	declared := make(map[string]bool, len(d.Classes))
	for _, cls := range d.Classes {
		id := Sanitize(cls.Name)
		declared[id] = true
		fmt.Fprintf(&buf, "%sclass %s {\n", indent, id)
		for _, attr := range cls.Attributes {
			fmt.Fprintf(&buf, "%s+%s\n", memberIndent, attr)
		}
		buf.WriteString(indent + "}\n")
	}

	for _, rel := range d.Relationships {
		src, dst := Sanitize(rel.Source), Sanitize(rel.Target)
		if !declared[src] || !declared[dst] {
			diags = append(diags, diagram.Unresolved("relationship", src, dst))
			continue
		}

		kind := strings.ToLower(strings.TrimSpace(rel.Type))
		arrow, known := relationshipArrows[kind]
		if !known {
			arrow = defaultArrow
			if kind != "" {
				diags = append(diags, diagram.Diagnostic{
					Code:    diagram.DiagUnknownRelationship,
					Message: fmt.Sprintf("relationship type %q rendered as association", rel.Type),
					Source:  src,
					Target:  dst,
				})
			}
		}

		label := rel.Type
		if strings.TrimSpace(label) == "" {
			label = defaultRelationship
		}
		fmt.Fprintf(&buf, "%s%s %s %s : %s\n", indent, src, arrow, dst, label)
	}

	return Result{Code: buf.String(), Diagnostics: diags}
}

// =============================================================================
// Flowchart
// =============================================================================

// Flowchart renders f as a top-down Mermaid flowchart.
//
// Start and end elements are rounded, decisions use braces and everything
// else is a square process box. A connection is emitted only when both
// sanitized endpoints are declared element ids.
func Flowchart(f diagram.Flowchart, opts Options) Result {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic

	buf.WriteString(headerFlow + "\n")

	declared := make(map[string]bool, len(f.Elements))
	for _, el := range f.Elements {
		id := Sanitize(el.ID)
		declared[id] = true
		sh, ok := elementShapes[el.Type]
		if !ok {
			sh = processShape
		}
		fmt.Fprintf(&buf, "%s%s%s%s%s\n", indent, id, sh.open, el.Text, sh.close)
	}

	if len(f.Connections) == 0 && opts.ChainSequential {
		for i := 0; i+1 < len(f.Elements); i++ {
			fmt.Fprintf(&buf, "%s%s --> %s\n", indent, Sanitize(f.Elements[i].ID), Sanitize(f.Elements[i+1].ID))
		}
	}

	for _, conn := range f.Connections {
		src, dst := Sanitize(conn.Source), Sanitize(conn.Destination)
		if !declared[src] || !declared[dst] {
			diags = append(diags, diagram.Unresolved("connection", src, dst))
			continue
		}
		fmt.Fprintf(&buf, "%s%s -->|%s| %s\n", indent, src, conn.Label, dst)
	}

	return Result{Code: buf.String(), Diagnostics: diags}
}

// =============================================================================
// Data Flow Diagram
// =============================================================================

// DataFlow renders d as a top-down Mermaid flowchart of entities and flows.
//
// Each entity is declared once as a stadium node labelled with its sanitized
// name. A flow endpoint that has not been declared yet is declared just before
// the flow line and remembered for the rest of the call. Flows with an empty
// endpoint cannot be drawn and are dropped with a diagnostic.
func DataFlow(d diagram.DataFlowDiagram) Result {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic

	buf.WriteString(headerFlow + "\n")

	declared := make(map[string]bool, len(d.Entities))
	declare := func(id string) {
		declared[id] = true
		fmt.Fprintf(&buf, "%s%s%s%s%s\n", indent, id, entityShape.open, id, entityShape.close)
	}

	for _, ent := range d.Entities {
		id := Sanitize(ent.Name)
		if declared[id] {
			diags = append(diags, diagram.Diagnostic{
				Code:    diagram.DiagDuplicate,
				Message: fmt.Sprintf("entity %q declared more than once", ent.Name),
				Source:  id,
			})
			continue
		}
		declare(id)
	}

	for _, flow := range d.DataFlows {
		src, dst := Sanitize(flow.Source), Sanitize(flow.Destination)
		if src == "" || dst == "" {
			diags = append(diags, diagram.Unresolved("data flow", src, dst))
			continue
		}
		if !declared[src] {
			declare(src)
		}
		if !declared[dst] {
			declare(dst)
		}
		fmt.Fprintf(&buf, "%s%s -- \"%s\" --> %s\n", indent, src, escapeQuotes(flow.Data), dst)
	}

	return Result{Code: buf.String(), Diagnostics: diags}
}

// escapeQuotes replaces double quotes with Mermaid's entity code so that a
// quoted edge label cannot terminate early.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
