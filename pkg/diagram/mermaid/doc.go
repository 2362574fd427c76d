// Package mermaid translates diagram payloads into Mermaid source text.
//
// The output is handed verbatim to a Mermaid renderer (in the browser or any
// other engine that speaks the language). Three translators are provided:
//
//	ClassDiagram:  classDiagram block, one class block per class, one line per relationship
//	Flowchart:     flowchart TD block, one shaped node per element, one labelled arrow per connection
//	DataFlow:      flowchart TD block, one stadium node per entity, one annotated arrow per flow
//
// [Generate] dispatches on a [diagram.Kind]; an unrecognized kind yields a
// Mermaid comment starting with [UnsupportedMarker] instead of an error.
//
// # Identifiers
//
// Every emitted node identifier passes through [Sanitize]: whitespace runs
// become a single underscore and the reserved words end, subgraph, class and
// style (in any case) get a "_Node" suffix. The same function is applied at
// declaration and at every reference, so a name always maps to one token.
//
// # Unresolved references
//
// Relationships and connections whose endpoints are not declared are dropped
// and reported as diagnostics in [Result]. Data flow endpoints are never
// dropped: missing entities are declared on first use.
//
// # Purity
//
// Generation performs no I/O and keeps no state between calls. Identical
// input yields byte-identical output, so callers may memoize on the payload.
package mermaid
