package cli

import (
	"github.com/spf13/cobra"

	"github.com/vipuljat/ProjectBasedLearning/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root's PersistentPreRunE loads the --config file and attaches the
// logger to the command context; callers wrapping it must invoke it first.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pbl turns project diagram JSON into Mermaid and Graphviz diagrams",
		Long: `pbl converts the UML class diagrams, flowcharts and data flow diagrams of a
project description into Mermaid source, Graphviz DOT, or rendered SVG, PNG and PDF
files. It can also serve the same conversions, and a diagram store, over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/pbl/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
