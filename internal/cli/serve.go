package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vipuljat/ProjectBasedLearning/internal/server"
	"github.com/vipuljat/ProjectBasedLearning/pkg/buildinfo"
	"github.com/vipuljat/ProjectBasedLearning/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	if logger.GetLevel() <= log.DebugLevel {
		observability.NewLogHooks(logger.WithPrefix("hooks")).Register()
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Warn("close store", "err", err)
		}
	}()

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	printKeyValue("Version", buildinfo.Version)
	printKeyValue("Store", c.cfg.Store.Backend)
	printKeyValue("Cache", c.cfg.Cache.Backend)
	printKeyValue("Listening", StyleLink.Render(listenURL(c.cfg.Server.Addr)))
	printNextStep("Check it", "curl "+listenURL(c.cfg.Server.Addr)+"/healthz")

	srv := server.New(st, runner, logger, c.cfg.Server)
	return srv.Run(ctx)
}

// listenURL turns a listen address such as ":8080" into a browsable URL.
func listenURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}
