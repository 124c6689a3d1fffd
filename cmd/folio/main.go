// Command folio composes page-grid sheets and recovers pages from
// captures of them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/folio"
	"github.com/tsawler/folio/model"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root cobra command.
func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "folio composes printable page sheets and recovers pages from photos of them",
		Long: `folio lays out a page grid onto a single sheet with embedded registration
codes, and later recovers the individual pages from a photograph of that
sheet, correcting rotation, skew, and scale.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(logLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newComposeCmd())
	rootCmd.AddCommand(newExtractCmd())
	return rootCmd
}

// newLogger builds a text slog logger for the requested level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func newComposeCmd() *cobra.Command {
	var (
		settings  model.LayoutSettings
		template  string
		left      string
		right     string
		sources   []string
		scale     int
		pageW     int
		pageH     int
		startLeft bool
		output    string
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose a sheet from templates or source images",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.StartWithLeftPage = startLeft
			if len(sources) > 0 && settings.TotalPages == 0 {
				settings.TotalPages = len(sources)
			}

			c := folio.NewSheet(settings)
			switch {
			case template != "":
				c = c.Template(template)
			case left != "" || right != "":
				c = c.Templates(left, right)
			case len(sources) > 0:
				c = c.Sources(scale, sources...).PageSize(pageW, pageH)
			default:
				return fmt.Errorf("one of --template, --left/--right, or --source is required")
			}

			warnings, err := c.WriteFile(output)
			if err != nil {
				return err
			}
			if len(warnings) > 0 {
				slog.Warn("compose finished with warnings", "warnings", folio.FormatWarnings(warnings))
			}
			slog.Info("sheet written", "path", output, "pages", settings.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVarP(&settings.TotalPages, "pages", "n", 0, "total number of pages")
	cmd.Flags().IntVar(&settings.PagesPerRow, "per-row", 6, "pages per row (2, 4, 6, 8, 10, or 12)")
	cmd.Flags().BoolVar(&startLeft, "start-left", false, "start with a left page (leave the first right slot empty)")
	cmd.Flags().IntVar(&settings.PageSpacing, "page-spacing", 0, "horizontal gap between page pairs in pixels")
	cmd.Flags().IntVar(&settings.RowSpacing, "row-spacing", 0, "vertical gap between rows in pixels")
	cmd.Flags().IntVar(&settings.PaddingX, "padding-x", 0, "horizontal padding in pixels (registration border is added automatically)")
	cmd.Flags().IntVar(&settings.PaddingY, "padding-y", 0, "vertical padding in pixels")
	cmd.Flags().StringVar(&template, "template", "", "single template image (wider than tall = two-page spread)")
	cmd.Flags().StringVar(&left, "left", "", "left page template image")
	cmd.Flags().StringVar(&right, "right", "", "right page template image")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "per-page source image (repeatable, one per page)")
	cmd.Flags().IntVar(&scale, "scale", 100, "source image box as a percentage of the page slot")
	cmd.Flags().IntVar(&pageW, "page-width", 0, "page slot width in pixels (source mode)")
	cmd.Flags().IntVar(&pageH, "page-height", 0, "page slot height in pixels (source mode)")
	cmd.Flags().StringVarP(&output, "output", "o", "sheet.png", "output sheet path (.png or .jpg)")

	return cmd
}

func newExtractCmd() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "extract <capture>",
		Short: "Recover pages from a capture of a composed sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, warnings, err := folio.Scan(args[0]).Format(format).Extract(outDir)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				slog.Warn(w.Message)
			}
			slog.Info("pages extracted", "count", len(paths), "dir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "d", "pages", "destination directory (cleared before writing)")
	cmd.Flags().StringVar(&format, "format", "png", "output image format (png or jpg)")

	return cmd
}
