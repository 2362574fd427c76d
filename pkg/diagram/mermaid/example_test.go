package mermaid_test

import (
	"fmt"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid"
)

func ExampleClassDiagram() {
	res := mermaid.ClassDiagram(diagram.ClassDiagram{
		Classes: []diagram.Class{
			{Name: "User", Attributes: []string{"userId", "email"}},
			{Name: "Learning Path", Attributes: []string{"pathId"}},
		},
		Relationships: []diagram.Relationship{
			{Source: "Learning Path", Target: "User", Type: "aggregation"},
		},
	})
	fmt.Print(res.Code)
	// Output:
	// classDiagram
	//     class User {
	//         +userId
	//         +email
	//     }
	//     class Learning_Path {
	//         +pathId
	//     }
	//     Learning_Path o-- User : aggregation
}

func ExampleFlowchart() {
	res := mermaid.Flowchart(diagram.Flowchart{
		Elements: []diagram.Element{
			{ID: "start", Type: "start", Text: "Start"},
			{ID: "valid", Type: "decision", Text: "Valid input?"},
			{ID: "end", Type: "end", Text: "End"},
		},
		Connections: []diagram.Connection{
			{Source: "start", Destination: "valid"},
			{Source: "valid", Destination: "end", Label: "yes"},
			{Source: "valid", Destination: "retry", Label: "no"},
		},
	}, mermaid.Options{})
	fmt.Print(res.Code)
	for _, d := range res.Diagnostics {
		fmt.Println(d)
	}
	// Output:
	// flowchart TD
	//     start(Start)
	//     valid{Valid input?}
	//     end_Node(End)
	//     start -->|| valid
	//     valid -->|yes| end_Node
	// unresolved_reference: invalid connection (valid -> retry)
}

func ExampleDataFlow() {
	res := mermaid.DataFlow(diagram.DataFlowDiagram{
		Entities: []diagram.Entity{{Name: "User"}},
		DataFlows: []diagram.DataFlow{
			{Source: "User", Destination: "System", Data: "Profile"},
		},
	})
	fmt.Print(res.Code)
	// Output:
	// flowchart TD
	//     User([User])
	//     System([System])
	//     User -- "Profile" --> System
}

func ExampleGenerate_unsupported() {
	fmt.Print(mermaid.Code("Gantt", nil))
	// Output:
	// %% Unsupported diagram type: Gantt
}
