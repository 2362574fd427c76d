package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// arrowheads maps a relationship kind to the Graphviz arrowhead drawn at the
// target end.
var arrowheads = map[string]string{
	diagram.RelAggregation: "odiamond",
	diagram.RelComposition: "diamond",
	diagram.RelInheritance: "empty",
	diagram.RelAssociation: "normal",
}

var elementShapes = map[string]string{
	diagram.ElementStart:    "ellipse",
	diagram.ElementEnd:      "ellipse",
	diagram.ElementDecision: "diamond",
}

// ToDOT converts a payload of the given kind to Graphviz DOT source.
//
// The returned diagnostics describe dropped edges. An unrecognized kind or a
// payload of the wrong type is an error with code UNSUPPORTED.
func ToDOT(kind diagram.Kind, payload any) (string, []diagram.Diagnostic, error) {
	switch kind {
	case diagram.KindClass:
		switch p := payload.(type) {
		case diagram.ClassDiagram:
			src, diags := classDOT(p)
			return src, diags, nil
		case *diagram.ClassDiagram:
			src, diags := classDOT(deref(p))
			return src, diags, nil
		}
	case diagram.KindFlowchart:
		switch p := payload.(type) {
		case diagram.Flowchart:
			src, diags := flowchartDOT(p)
			return src, diags, nil
		case *diagram.Flowchart:
			src, diags := flowchartDOT(deref(p))
			return src, diags, nil
		}
	case diagram.KindDataFlow:
		switch p := payload.(type) {
		case diagram.DataFlowDiagram:
			src, diags := dataFlowDOT(p)
			return src, diags, nil
		case *diagram.DataFlowDiagram:
			src, diags := dataFlowDOT(deref(p))
			return src, diags, nil
		}
	default:
		return "", nil, apperrors.New(apperrors.ErrCodeUnsupported, "unsupported diagram type: %s", kind)
	}
	return "", nil, apperrors.New(apperrors.ErrCodeUnsupported, "payload %T does not match diagram type %s", payload, kind)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func header(buf *bytes.Buffer, nodeAttrs string) {
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [" + nodeAttrs + "];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

func classDOT(d diagram.ClassDiagram) (string, []diagram.Diagnostic) {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic
	header(&buf, "shape=record, style=filled, fillcolor=white, fontsize=14")

	declared := make(map[string]bool, len(d.Classes))
	for _, cls := range d.Classes {
		id := mermaid.Sanitize(cls.Name)
		declared[id] = true
		fmt.Fprintf(&buf, "  %q [label=\"%s\"];\n", id, recordLabel(id, cls.Attributes))
	}

	buf.WriteString("\n")
	for _, rel := range d.Relationships {
		src, dst := mermaid.Sanitize(rel.Source), mermaid.Sanitize(rel.Target)
		if !declared[src] || !declared[dst] {
			diags = append(diags, diagram.Unresolved("relationship", src, dst))
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(rel.Type))
		head, ok := arrowheads[kind]
		if !ok {
			head = "normal"
		}
		label := rel.Type
		if strings.TrimSpace(label) == "" {
			label = diagram.RelAssociation
		}
		fmt.Fprintf(&buf, "  %q -> %q [arrowhead=%s, label=%q];\n", src, dst, head, label)
	}

	buf.WriteString("}\n")
	return buf.String(), diags
}

// recordLabel builds "{Name|+a\l+b\l}" with record metacharacters escaped.
func recordLabel(name string, attrs []string) string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(escapeRecord(name))
	b.WriteString("|")
	for _, a := range attrs {
		b.WriteString("+")
		b.WriteString(escapeRecord(a))
		b.WriteString(`\l`)
	}
	b.WriteString("}")
	return b.String()
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
)

func escapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

func flowchartDOT(f diagram.Flowchart) (string, []diagram.Diagnostic) {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic
	header(&buf, "style=filled, fillcolor=white, fontsize=14")

	declared := make(map[string]bool, len(f.Elements))
	for _, el := range f.Elements {
		id := mermaid.Sanitize(el.ID)
		declared[id] = true
		shape, ok := elementShapes[el.Type]
		if !ok {
			shape = "box"
		}
		fmt.Fprintf(&buf, "  %q [shape=%s, label=%q];\n", id, shape, el.Text)
	}

	buf.WriteString("\n")
	for _, conn := range f.Connections {
		src, dst := mermaid.Sanitize(conn.Source), mermaid.Sanitize(conn.Destination)
		if !declared[src] || !declared[dst] {
			diags = append(diags, diagram.Unresolved("connection", src, dst))
			continue
		}
		if conn.Label == "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", src, dst)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", src, dst, conn.Label)
	}

	buf.WriteString("}\n")
	return buf.String(), diags
}

func dataFlowDOT(d diagram.DataFlowDiagram) (string, []diagram.Diagnostic) {
	var buf bytes.Buffer
	var diags []diagram.Diagnostic
	header(&buf, "shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"")

	declared := make(map[string]bool, len(d.Entities))
	declare := func(id string) {
		declared[id] = true
		fmt.Fprintf(&buf, "  %q;\n", id)
	}

	for _, ent := range d.Entities {
		id := mermaid.Sanitize(ent.Name)
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
		src, dst := mermaid.Sanitize(flow.Source), mermaid.Sanitize(flow.Destination)
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
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", src, dst, flow.Data)
	}

	buf.WriteString("}\n")
	return buf.String(), diags
}
