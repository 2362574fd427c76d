package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid"
)

// separatorPrefix starts the comment line between diagrams in one output.
const separatorPrefix = "%% ---- "

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	kinds   []string // kinds to emit; empty means all present
	output  string   // output file; empty means stdout
	chain   bool     // link consecutive flowchart elements
	summary bool     // print a per-kind table to stderr
}

// generateCommand creates the generate command, which prints Mermaid source.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Print Mermaid source for the diagrams in a JSON file",
		Long: `Generate reads a project's diagrams JSON (either the bare diagrams object or
{"project_title": ..., "diagrams": {...}}) and prints Mermaid source for each
diagram. With several diagrams, each block is preceded by a "%% ---- <kind>"
comment line. Reads stdin when no file (or "-") is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runGenerate(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), input, &opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.kinds, "kind", "k", nil, "diagram kind(s): uml, flowchart, dfd (default: all in the file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.chain, "chain", false, "link consecutive flowchart elements when no connections are given")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "print a summary table to stderr")

	return cmd
}

// generated is one kind's output within a generate run.
type generated struct {
	kind   diagram.Kind
	result mermaid.Result
}

func (c *CLI) runGenerate(ctx context.Context, stdin io.Reader, stdout io.Writer, input string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	set, title, err := readInput(stdin, input)
	if err != nil {
		return err
	}
	kinds, err := selectKinds(set, opts.kinds)
	if err != nil {
		return err
	}
	if title != "" {
		logger.Debugf("Project %q", title)
	}

	mopts := mermaid.Options{ChainSequential: opts.chain || c.cfg.Render.ChainSequential}
	results := make([]generated, 0, len(kinds))
	for _, k := range kinds {
		payload, _ := set.Payload(k)
		res := mermaid.Generate(k, payload, mopts)
		for _, d := range res.Diagnostics {
			logger.Warn(d.Message, "kind", k, "code", d.Code, "source", d.Source, "target", d.Target)
		}
		results = append(results, generated{kind: k, result: res})
	}

	out, err := openOutput(opts.output, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.WriteString(out, joinGenerated(results)); err != nil {
		return err
	}
	if opts.output != "" && opts.output != "-" {
		logger.Infof("Generated %s", opts.output)
	}
	if opts.summary {
		fmt.Fprintln(os.Stderr, summaryTable(results))
	}
	return nil
}

// joinGenerated concatenates results. A single diagram is emitted bare;
// several are separated by blank lines and per-kind comment lines.
func joinGenerated(results []generated) string {
	if len(results) == 1 {
		return results[0].result.Code
	}
	var b strings.Builder
	for i, g := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(separatorPrefix + string(g.kind) + "\n")
		b.WriteString(g.result.Code)
	}
	return b.String()
}

// summaryTable lists line and diagnostic counts per kind.
func summaryTable(results []generated) string {
	rows := make([][]string, len(results))
	for i, g := range results {
		lines := strings.Count(g.result.Code, "\n")
		rows[i] = []string{string(g.kind), strconv.Itoa(lines), strconv.Itoa(len(g.result.Diagnostics))}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Lines", "Diagnostics").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row < len(results) && len(results[row].result.Diagnostics) > 0 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
