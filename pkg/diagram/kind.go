package diagram

import "strings"

// Kind selects which diagram a payload describes.
type Kind string

// Diagram kinds. The string values match the keys of a [Set].
const (
	KindClass     Kind = "UML"
	KindFlowchart Kind = "Flowchart"
	KindDataFlow  Kind = "DFD"
)

// Kinds lists every supported kind in rendering order.
var Kinds = []Kind{KindClass, KindFlowchart, KindDataFlow}

var kindAliases = map[string]Kind{
	"uml":          KindClass,
	"class":        KindClass,
	"classdiagram": KindClass,
	"flowchart":    KindFlowchart,
	"flow":         KindFlowchart,
	"dfd":          KindDataFlow,
	"dataflow":     KindDataFlow,
	"data-flow":    KindDataFlow,
}

// ParseKind resolves a user-supplied kind name case-insensitively.
// Unknown names are returned unchanged with ok == false, so that callers may
// still pass them to a generator and receive its unsupported marker.
func ParseKind(s string) (k Kind, ok bool) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, true
	}
	return Kind(s), false
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindClass, KindFlowchart, KindDataFlow:
		return true
	}
	return false
}

// Slug returns a lower-case, file-name friendly form of the kind.
func (k Kind) Slug() string {
	switch k {
	case KindClass:
		return "uml"
	case KindFlowchart:
		return "flowchart"
	case KindDataFlow:
		return "dfd"
	}
	return strings.ToLower(string(k))
}
