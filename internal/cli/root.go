// Package cli holds the radial-viewer command tree.
package cli

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/ironsheep/radial-viewer/internal/config"
	"github.com/ironsheep/radial-viewer/internal/imaging"
)

// options is the state shared by every subcommand once the root has run.
type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

// NewRootCmd builds the radial-viewer command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "radial-viewer",
		Short: "Image viewer and radial intensity profiler",
		Long: `Radial-viewer loads an image (PNG, JPEG, GIF, BMP, TIFF, WebP or the legacy
raw grey format), and measures circular luminance averages around a centre.

Run "serve" to drive an interactive session over MCP on stdin/stdout, or use
the batch commands to profile files directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				if _, err := config.ParseLevel(opts.logLevel); err != nil {
					return err
				}
				cfg.LogLevel = opts.logLevel
			}
			opts.cfg = cfg
			// Logs go to stderr; stdout is reserved for results and the protocol
			config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(opts),
		newInfoCmd(opts),
		newProfileCmd(opts),
		newSweepCmd(opts),
		newRingsCmd(opts),
		newHistogramCmd(opts),
	)

	return cmd
}

func (o *options) loader() *imaging.Loader {
	layout := imaging.RawLayout{
		HeaderOffset: o.cfg.Raw.HeaderOffset,
		Width:        o.cfg.Raw.Width,
		Height:       o.cfg.Raw.Height,
	}
	return imaging.NewLoader(layout, o.cfg.Raw.Extensions)
}

func (o *options) load(path string) (*image.NRGBA, error) {
	img, err := o.loader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}
