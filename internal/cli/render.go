package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
	"github.com/vipuljat/ProjectBasedLearning/pkg/pipeline"
)

// defaultBase names output files when reading stdin without -o.
const defaultBase = "diagrams"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // base path for output files
	formats []string // output formats: mermaid, dot, svg, png, pdf
	kinds   []string // kinds to render; empty means all present
	noCache bool     // bypass the artifact cache
	refresh bool     // re-render and overwrite cached artifacts
	chain   bool     // link consecutive flowchart elements
	scale   float64  // PNG scale factor
}

// renderCommand creates the render command for writing diagram files.
// It writes one file per kind and format, named <base>_<kind>.<ext>.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render diagrams to Mermaid, DOT, SVG, PNG or PDF files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(formatsStr)
			if err != nil {
				return err
			}
			opts.formats = formats
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), cmd.InOrStdin(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "base path for output files (default: input name without extension)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): mermaid (default), dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringSliceVarP(&opts.kinds, "kind", "k", nil, "diagram kind(s): uml, flowchart, dfd (default: all in the file)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")
	cmd.Flags().BoolVar(&opts.chain, "chain", false, "link consecutive flowchart elements when no connections are given")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG scale factor (default from config)")

	return cmd
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input. If output ends in
// a known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return defaultBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	for _, f := range pipeline.Formats {
		if ext == "."+pipeline.Ext(f) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath builds <base>_<kind>.<ext>.
func outputPath(base string, kind diagram.Kind, format string) string {
	return fmt.Sprintf("%s_%s.%s", base, kind.Slug(), pipeline.Ext(format))
}

func (c *CLI) runRender(ctx context.Context, stdin io.Reader, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	set, _, err := readInput(stdin, input)
	if err != nil {
		return err
	}
	kinds, err := selectKinds(set, opts.kinds)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	scale := opts.scale
	if scale == 0 {
		scale = c.cfg.Render.PNGScale
	}
	popts := pipeline.Options{
		ChainSequential: opts.chain || c.cfg.Render.ChainSequential,
		Scale:           scale,
	}

	base := basePath(opts.output, input)
	if err := apperrors.ValidateOutputPath(base); err != nil {
		return err
	}
	written := 0
	for _, kind := range kinds {
		payload, _ := set.Payload(kind)
		for _, format := range opts.formats {
			req := pipeline.Request{Kind: kind, Payload: payload, Format: format, Options: popts, Refresh: opts.refresh}
			if err := c.renderAndWrite(ctx, runner, req, outputPath(base, kind, format)); err != nil {
				return fmt.Errorf("%s/%s: %w", kind, format, err)
			}
			written++
		}
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", written))
	return nil
}

// renderAndWrite renders one kind/format and writes it to path. Graphviz
// formats show a spinner while rendering.
func (c *CLI) renderAndWrite(ctx context.Context, runner *pipeline.Runner, req pipeline.Request, path string) error {
	logger := loggerFromContext(ctx)

	var spin *Spinner
	if req.Format != pipeline.FormatMermaid {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s as %s...", req.Kind, req.Format))
		spin.Start()
	}
	res, err := runner.Render(ctx, req)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s/%s: %d bytes in %s", res.Kind, res.Format, len(res.Data), res.Duration)

	if err := os.WriteFile(path, res.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	printStats(len(res.Data), len(res.Diagnostics), res.Cached)
	return nil
}
