// Package pipeline turns diagram payloads into artifacts.
//
// A [Runner] takes one (kind, payload, format) request and produces the
// output bytes: Mermaid source, Graphviz DOT, or an SVG, PNG or PDF image
// drawn by Graphviz. Results are memoized in a [cache.Cache] keyed by the
// payload hash, so the CLI and the API server share one rendering path.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Render(ctx, pipeline.Request{
//	    Kind:    diagram.KindClass,
//	    Payload: set.UML,
//	    Format:  pipeline.FormatSVG,
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("uml.svg", res.Data, 0o644)
//
// Render every diagram of a project:
//
//	results, err := runner.RenderSet(ctx, set, pipeline.FormatMermaid, pipeline.Options{})
package pipeline

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
)

// Format constants for output formats.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// DefaultFormat is used when a request names no format.
const DefaultFormat = FormatMermaid

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// Formats lists the supported output formats.
var Formats = []string{FormatMermaid, FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatMermaid: true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatPDF:     true,
}

var extensions = map[string]string{
	FormatMermaid: "mmd",
	FormatDOT:     "dot",
	FormatSVG:     "svg",
	FormatPNG:     "png",
	FormatPDF:     "pdf",
}

var contentTypes = map[string]string{
	FormatMermaid: "text/vnd.mermaid; charset=utf-8",
	FormatDOT:     "text/vnd.graphviz; charset=utf-8",
	FormatSVG:     "image/svg+xml",
	FormatPNG:     "image/png",
	FormatPDF:     "application/pdf",
}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format %q: must be one of %s", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates. An empty string yields [DefaultFormat].
func ParseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{DefaultFormat}, nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// Ext returns the file extension for format, without the dot.
func Ext(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsBinary reports whether format produces non-text output.
func IsBinary(format string) bool {
	return format == FormatPNG || format == FormatPDF
}

// Options tunes how an artifact is produced.
type Options struct {
	// ChainSequential links consecutive flowchart elements when the
	// flowchart has no connections.
	ChainSequential bool `json:"chain_sequential,omitempty"`

	// Scale is the PNG resolution multiplier. Zero means DefaultScale.
	Scale float64 `json:"scale,omitempty"`
}

// Request describes one artifact to produce.
type Request struct {
	Kind diagram.Kind

	// Payload is the kind's payload type from package diagram, by value or
	// pointer, or its raw JSON as []byte or json.RawMessage.
	Payload any

	// Format defaults to DefaultFormat.
	Format string

	Options Options

	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool
}

// Result is a produced artifact.
type Result struct {
	Kind        diagram.Kind         `json:"kind"`
	Format      string               `json:"format"`
	Data        []byte               `json:"-"`
	Diagnostics []diagram.Diagnostic `json:"diagnostics"`
	Cached      bool                 `json:"cached"`
	Key         string               `json:"-"`
	Duration    time.Duration        `json:"-"`
}

// normalize validates r, applies defaults and decodes a raw payload.
func (r *Request) normalize() error {
	if r.Format == "" {
		r.Format = DefaultFormat
	}
	if err := ValidateFormat(r.Format); err != nil {
		return err
	}
	if r.Options.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "scale must not be negative")
	}
	if r.Format == FormatPNG && r.Options.Scale == 0 {
		r.Options.Scale = DefaultScale
	}
	if r.Format != FormatPNG {
		r.Options.Scale = 0
	}

	var raw []byte
	switch p := r.Payload.(type) {
	case json.RawMessage:
		raw = p
	case []byte:
		raw = p
	default:
		return nil
	}
	if !r.Kind.Valid() {
		// Left undecoded; the generator reports the unsupported kind.
		r.Payload = nil
		return nil
	}
	payload, err := diagram.DecodePayload(r.Kind, raw)
	if err != nil {
		return err
	}
	r.Payload = payload
	return nil
}
