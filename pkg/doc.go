// Package pkg provides the core libraries for pbl, which turns the diagram
// descriptions of a learning project into diagram source code.
//
// # Overview
//
// A project carries up to three diagrams, keyed by kind: a UML class
// diagram, a flowchart and a data flow diagram (DFD). Each is plain JSON.
// pbl translates them into Mermaid source for client-side rendering, or into
// Graphviz DOT and rendered SVG, PNG or PDF on the server.
//
// The typical data flow:
//
//	project JSON ({"project_title": ..., "diagrams": {...}})
//	         ↓
//	    [diagram] package (decode into typed payloads)
//	         ↓
//	    [diagram/mermaid] or [diagram/dot] (translate; diagnose dropped edges)
//	         ↓
//	    [pipeline] package (cache lookup, render, cache store)
//	         ↓
//	    Mermaid / DOT / SVG / PNG / PDF
//
// # Quick Start
//
// Generate Mermaid for a class diagram:
//
//	res := mermaid.Generate(diagram.KindClass, &diagram.ClassDiagram{
//	    Classes: []diagram.Class{{Name: "User", Attributes: []string{"id"}}},
//	}, mermaid.Options{})
//	fmt.Print(res.Code)
//	for _, d := range res.Diagnostics {
//	    log.Warn(d.Message, "code", d.Code)
//	}
//
// Render a whole project through the cached pipeline:
//
//	set, _, _ := diagram.ImportSet("project.json")
//	fc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(fc, nil, logger)
//	results, _ := runner.RenderSet(ctx, set, pipeline.FormatSVG, pipeline.Options{})
//
// # Main Packages
//
// [diagram] - Domain model: [diagram.Kind], the three payload types, the
// per-project [diagram.Set] and stored [diagram.Document], diagnostics.
//
// [diagram/mermaid] - The Mermaid generator. Pure and deterministic: the same
// input always yields byte-identical output, and edges whose endpoints are
// not declared are dropped with a diagnostic rather than rendered dangling.
//
// [diagram/dot] - The same inputs as Graphviz DOT, rendered to SVG through
// go-graphviz and to PNG or PDF through rsvg-convert.
//
// [pipeline] - (kind, payload, format) → artifact, memoized through [cache]
// and reported through [observability]. Used by both CLI and API.
//
// [cache] - Artifact cache with null, file and Redis backends.
//
// [store] - Diagram documents keyed by project title, in memory or MongoDB.
//
// [config] - TOML configuration with defaults and PBL_* overrides.
//
// [errors] - Code-based errors mapped to HTTP status codes by the API.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test -run Example ./pkg/...  # Examples only
//
// Redis and MongoDB tests run only when PBL_TEST_REDIS_ADDR or
// PBL_TEST_MONGO_URI point at a live server.
//
// [diagram]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/diagram
// [diagram/mermaid]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid
// [diagram/dot]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/diagram/dot
// [pipeline]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/cache
// [store]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/store
// [config]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/config
// [errors]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/errors
// [observability]: https://pkg.go.dev/github.com/vipuljat/ProjectBasedLearning/pkg/observability
package pkg
