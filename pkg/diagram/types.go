package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// =============================================================================
// Class Diagram
// =============================================================================

// Relationship kinds understood by the class diagram generators.
// Any other value is rendered as a plain association.
const (
	RelAggregation = "aggregation"
	RelComposition = "composition"
	RelInheritance = "inheritance"
	RelAssociation = "association"
)

// ClassDiagram is the payload for [KindClass].
type ClassDiagram struct {
	Description   string         `json:"description,omitempty" bson:"description,omitempty"`
	Classes       []Class        `json:"classes" bson:"classes"`
	Relationships []Relationship `json:"relationships,omitempty" bson:"relationships,omitempty"`
}

// Class is a named node with public attributes rendered in order.
type Class struct {
	Name       string   `json:"name" bson:"name"`
	Attributes []string `json:"attributes" bson:"attributes"`
}

// Relationship links two declared classes.
type Relationship struct {
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
	Type   string `json:"type,omitempty" bson:"type,omitempty"`
}

// =============================================================================
// Flowchart
// =============================================================================

// Flowchart element kinds. Unknown kinds render as processes.
const (
	ElementStart    = "start"
	ElementEnd      = "end"
	ElementProcess  = "process"
	ElementDecision = "decision"
)

// Flowchart is the payload for [KindFlowchart].
type Flowchart struct {
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Elements    []Element    `json:"elements" bson:"elements"`
	Connections []Connection `json:"connections,omitempty" bson:"connections,omitempty"`
}

// Element is a single flowchart node.
type Element struct {
	ID   string `json:"id" bson:"id"`
	Type string `json:"type" bson:"type"`
	Text string `json:"text" bson:"text"`
}

// Connection is a directed, optionally labelled edge between two elements.
type Connection struct {
	Source      string `json:"source" bson:"source"`
	Destination string `json:"destination" bson:"destination"`
	Label       string `json:"label,omitempty" bson:"label,omitempty"`
}

// =============================================================================
// Data Flow Diagram
// =============================================================================

// DataFlowDiagram is the payload for [KindDataFlow].
// Flow endpoints need not appear in Entities.
type DataFlowDiagram struct {
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Entities    []Entity   `json:"entities" bson:"entities"`
	DataFlows   []DataFlow `json:"data_flows" bson:"data_flows"`
}

// Entity is a named external entity, process or store.
type Entity struct {
	Name string `json:"name" bson:"name"`
}

// UnmarshalJSON accepts both {"name": "User"} and the bare string "User".
func (e *Entity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Name)
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("entity: %w", err)
	}
	e.Name = obj.Name
	return nil
}

// DataFlow describes data moving from one entity to another.
type DataFlow struct {
	Source      string `json:"source" bson:"source"`
	Destination string `json:"destination" bson:"destination"`
	Data        string `json:"data" bson:"data"`
}

// =============================================================================
// Set - All Diagrams of a Project
// =============================================================================

// Set holds the diagrams generated for one project. Any member may be nil.
type Set struct {
	UML       *ClassDiagram    `json:"UML,omitempty" bson:"UML,omitempty"`
	Flowchart *Flowchart       `json:"Flowchart,omitempty" bson:"Flowchart,omitempty"`
	DFD       *DataFlowDiagram `json:"DFD,omitempty" bson:"DFD,omitempty"`
}

// Payload returns the member of s for kind k.
// ok is false when k is unsupported or the member is nil.
func (s Set) Payload(k Kind) (payload any, ok bool) {
	switch k {
	case KindClass:
		return s.UML, s.UML != nil
	case KindFlowchart:
		return s.Flowchart, s.Flowchart != nil
	case KindDataFlow:
		return s.DFD, s.DFD != nil
	}
	return nil, false
}

// Kinds returns the kinds present in s, in rendering order.
func (s Set) Kinds() []Kind {
	var out []Kind
	for _, k := range Kinds {
		if _, ok := s.Payload(k); ok {
			out = append(out, k)
		}
	}
	return out
}

// Empty reports whether s holds no diagrams.
func (s Set) Empty() bool {
	return s.UML == nil && s.Flowchart == nil && s.DFD == nil
}
