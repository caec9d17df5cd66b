package cli

import (
	"encoding/json"
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/ironsheep/radial-viewer/internal/analysis"
	"github.com/ironsheep/radial-viewer/internal/results"
)

func newInfoCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Print dimensions and format of an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := opts.loader().Info(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, info)
			}
			_, err = fmt.Fprintf(out, "%s: %dx%d %s alpha=%t %d bytes\n",
				args[0], info.Width, info.Height, info.Format, info.HasAlpha, info.FileSizeBytes)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

// centerFlags are the optional --cx/--cy overrides shared by profile and sweep.
type centerFlags struct {
	cx, cy float64
}

func (c *centerFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&c.cx, "cx", 0, "Centre X (default: image width/2)")
	cmd.Flags().Float64Var(&c.cy, "cy", 0, "Centre Y (default: image height/2)")
	cmd.MarkFlagsRequiredTogether("cx", "cy")
}

func (c *centerFlags) resolve(cmd *cobra.Command, img *image.NRGBA) analysis.Point {
	if cmd.Flags().Changed("cx") {
		return analysis.Point{X: c.cx, Y: c.cy}
	}
	return analysis.DefaultCenter(img.Bounds())
}

func newProfileCmd(opts *options) *cobra.Command {
	var radius int
	var center centerFlags

	cmd := &cobra.Command{
		Use:   "profile <file>",
		Short: "Average the luminance on one circle",
		Example: `  # Circle of radius 100 around the image centre
  radial-viewer profile sample.png --radius 100

  # Around an explicit centre
  radial-viewer profile frame.edf --radius 40 --cx 1041 --cy 1108.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := opts.load(args[0])
			if err != nil {
				return err
			}
			sample, err := analysis.CircularAverage(img, center.resolve(cmd, img), radius)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sample)
			return err
		},
	}

	cmd.Flags().IntVarP(&radius, "radius", "r", 0, "Circle radius in pixels (> 0)")
	_ = cmd.MarkFlagRequired("radius")
	center.register(cmd)

	return cmd
}

func newSweepCmd(opts *options) *cobra.Command {
	var minText, maxText, stepText, out string
	var center centerFlags

	cmd := &cobra.Command{
		Use:   "sweep <file>",
		Short: "Profile a range of radii",
		Long: `Computes the circular average for every radius from --min to --max in --step
increments. The profile is written as CSV (R,avg,samples) to stdout, or to
--out; an --out path ending in .parquet selects Parquet. A summary line is
written to stderr.`,
		Example: `  radial-viewer sweep sample.png --min 0 --max 500 --step 5 --out profile.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := analysis.ParseSweepParams(minText, maxText, stepText)
			if err != nil {
				return err
			}
			img, err := opts.load(args[0])
			if err != nil {
				return err
			}
			profile, err := analysis.Sweep(img, center.resolve(cmd, img), params)
			if err != nil {
				return err
			}

			feed := results.NewFeed(cmd.ErrOrStderr())
			results.Postf(feed, "%s", profile.Summarize())

			if out == "" {
				return analysis.WriteCSV(cmd.OutOrStdout(), profile, opts.cfg.CSVPrecision)
			}
			if err := analysis.Export(out, profile, opts.cfg.CSVPrecision); err != nil {
				return err
			}
			results.Postf(feed, "exported %d rows to %s", len(profile), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&minText, "min", "0", "Smallest radius (>= 0)")
	cmd.Flags().StringVar(&maxText, "max", "", "Largest radius (>= min)")
	cmd.Flags().StringVar(&stepText, "step", "1", "Radius increment (> 0)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Export path (.csv or .parquet)")
	_ = cmd.MarkFlagRequired("max")
	center.register(cmd)

	return cmd
}

func newRingsCmd(opts *options) *cobra.Command {
	var search analysis.RingSearch
	var limit int

	cmd := &cobra.Command{
		Use:   "rings <file>",
		Short: "Locate bright rings and their centres",
		Long: `Finds bright circles with a radius between --min-radius and --max-radius
by Hough voting and prints them best first. The first centre is a good
--cx/--cy for profile and sweep.`,
		Example: `  radial-viewer rings frame.edf --min-radius 50 --max-radius 400 --level 180`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := opts.load(args[0])
			if err != nil {
				return err
			}
			rings, err := analysis.FindRings(img, search)
			if err != nil {
				return err
			}
			if len(rings) == 0 {
				return fmt.Errorf("no ring found for R=%d..%d", search.MinRadius, search.MaxRadius)
			}
			if limit > 0 && len(rings) > limit {
				rings = rings[:limit]
			}
			for _, r := range rings {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&search.MinRadius, "min-radius", 0, "Smallest ring radius (> 0)")
	cmd.Flags().IntVar(&search.MaxRadius, "max-radius", 0, "Largest ring radius (>= min-radius)")
	cmd.Flags().Uint8Var(&search.Level, "level", 128, "Luminance at or above which a pixel belongs to a ring")
	cmd.Flags().IntVarP(&limit, "limit", "n", 5, "Print at most N rings (0 for all)")
	_ = cmd.MarkFlagRequired("min-radius")
	_ = cmd.MarkFlagRequired("max-radius")

	return cmd
}

func newHistogramCmd(opts *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "histogram <file>",
		Short: "Print the luminance histogram of an image",
		Long: `Prints "level count" for every populated luminance level, followed by the
peak level. With --json the full 256-entry histogram is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := opts.load(args[0])
			if err != nil {
				return err
			}
			h := analysis.ComputeHistogram(img)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, h)
			}

			for level, count := range h {
				if count == 0 {
					continue
				}
				if _, err := fmt.Fprintf(out, "%d %d\n", level, count); err != nil {
					return err
				}
			}
			level, count := h.Peak()
			_, err = fmt.Fprintf(out, "peak %d (%d of %d)\n", level, count, h.Total())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
