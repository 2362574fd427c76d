// Package diagram defines the structured inputs accepted by the diagram generators.
//
// Three diagram kinds are supported, each with its own payload type:
//
//   - [KindClass] ("UML"): [ClassDiagram] with classes and optional relationships
//   - [KindFlowchart] ("Flowchart"): [Flowchart] with elements and optional connections
//   - [KindDataFlow] ("DFD"): [DataFlowDiagram] with entities and data flows
//
// A project's diagrams travel together as a [Set], which is the JSON object the
// recommendation backend returns under its "diagrams" key:
//
//	{
//	  "UML":       {"classes": [{"name": "User", "attributes": ["id"]}]},
//	  "Flowchart": {"elements": [{"id": "start", "type": "start", "text": "Start"}]},
//	  "DFD":       {"entities": [{"name": "User"}], "data_flows": []}
//	}
//
// Payloads are immutable snapshots: generators never modify them, and nothing
// in this package retains them after a call returns.
//
// # Diagnostics
//
// Generators degrade gracefully on partially connected input. Every omission
// is reported as a [Diagnostic] so that callers can log it; diagnostics are
// never fatal.
package diagram
