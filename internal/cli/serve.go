package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ironsheep/radial-viewer/internal/plugin"
	"github.com/ironsheep/radial-viewer/internal/results"
	"github.com/ironsheep/radial-viewer/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var notify bool
	var pluginDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin/stdout",
		Long: `Starts an interactive viewer session driven by MCP (JSON-RPC 2.0) requests,
one per line on stdin, with responses on stdout. Logs and the results feed
are written to stderr.

Filter modules in the plugin directory are loaded at startup; ones that
fail to load are skipped with a warning.`,
		Example: `  # Serve with defaults
  radial-viewer serve

  # Forward results-feed lines to the client and load extra filters
  radial-viewer serve --notify --plugin-dir ./filters`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if pluginDir != "" {
				cfg.PluginDir = pluginDir
			}

			host := plugin.NewHost()
			if cfg.PluginDir != "" {
				loaded, err := host.LoadDir(cfg.PluginDir)
				if err != nil {
					slog.Warn("failed to read plugin dir", "dir", cfg.PluginDir, "err", err)
				}
				slog.Info("filters loaded", "dir", cfg.PluginDir, "count", len(loaded))
			}

			feed := results.NewFeed(cmd.ErrOrStderr())
			srv := server.New(cfg, host, feed)
			srv.EnableNotifications(notify)
			defer func() {
				if err := srv.Close(); err != nil {
					slog.Error("failed to close server", "err", err)
				}
			}()

			// Serve returns when stdin closes
			serveErr := make(chan error, 1)
			go func() {
				slog.Debug("serving MCP on stdio", "version", server.Version)
				serveErr <- srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				return nil
			case err := <-serveErr:
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&notify, "notify", false, "Send results-feed lines as notifications/message")
	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "Directory of filter modules (overrides plugin_dir)")

	return cmd
}
