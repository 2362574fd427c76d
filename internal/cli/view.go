package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid"
)

// viewCommand creates the view command, an interactive viewer over the
// generated Mermaid source of every diagram in a file.
func (c *CLI) viewCommand() *cobra.Command {
	var chain bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse generated Mermaid source and diagnostics in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runView(cmd.Context(), cmd.InOrStdin(), input, chain)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "link consecutive flowchart elements when no connections are given")

	return cmd
}

func (c *CLI) runView(ctx context.Context, stdin io.Reader, input string, chain bool) error {
	set, title, err := readInput(stdin, input)
	if err != nil {
		return err
	}
	tabs, err := viewerTabs(set, mermaid.Options{ChainSequential: chain || c.cfg.Render.ChainSequential})
	if err != nil {
		return err
	}
	if title == "" {
		title = input
	}

	_, err = tea.NewProgram(NewViewerModel(title, tabs), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// viewerTabs generates one tab per kind present in set.
func viewerTabs(set diagram.Set, opts mermaid.Options) ([]ViewerTab, error) {
	kinds, err := selectKinds(set, nil)
	if err != nil {
		return nil, err
	}
	tabs := make([]ViewerTab, len(kinds))
	for i, k := range kinds {
		payload, _ := set.Payload(k)
		res := mermaid.Generate(k, payload, opts)
		tabs[i] = ViewerTab{Kind: k, Code: res.Code, Diagnostics: res.Diagnostics}
	}
	return tabs, nil
}
