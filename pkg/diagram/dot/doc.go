// Package dot translates diagram payloads into Graphviz DOT and renders them.
//
// # Overview
//
// Mermaid is rendered by the client. For consumers that cannot run a Mermaid
// engine, such as the CLI writing image files or API clients asking for
// svg, this package produces an equivalent node-link drawing with Graphviz.
//
// # Usage
//
//	src, diags, err := dot.ToDOT(diagram.KindClass, payload)
//	svg, err := dot.RenderSVG(ctx, src)
//
// For PDF or PNG output:
//
//	pdf, err := dot.RenderPDF(ctx, src)
//	png, err := dot.RenderPNG(ctx, src, 2.0) // 2x scale
//
// # Shapes
//
// Classes are record nodes listing their attributes. Flowchart start and end
// elements are ellipses, decisions are diamonds and everything else is a box.
// Data flow entities are rounded boxes. Edges whose endpoints are not declared
// are dropped and reported exactly as the Mermaid generator reports them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package dot
