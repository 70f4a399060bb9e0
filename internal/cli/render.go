package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kk-code-lab/mdread/internal/config"
	fsutil "github.com/kk-code-lab/mdread/internal/fs"
	"github.com/kk-code-lab/mdread/internal/layout"
	"github.com/kk-code-lab/mdread/internal/logging"
	"github.com/kk-code-lab/mdread/internal/markdown"
	"github.com/kk-code-lab/mdread/internal/ui/ansi"
)

// stdinArg selects standard input as the document.
const stdinArg = "-"

type renderFlags struct {
	width int
	color string
}

func newRenderCommand(flags *globalFlags) *cobra.Command {
	rf := renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [FILE|-]",
		Short: "Write a document as styled text",
		Long: `Render a document once and write it to standard output.

Lines are wrapped to --width columns. Without --width the terminal width is
used, or render.width from the config when the output is not a terminal.

There is no page around the dump: rules are sized from the whole wrap width,
not from the narrower content width of the interactive page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			path := stdinArg
			if len(args) > 0 {
				path = args[0]
			}
			if !cmd.Flags().Changed("color") {
				rf.color = string(cfg.Color)
			}
			return dumpDocument(cmd, cfg, path, rf)
		},
	}

	cmd.Flags().IntVarP(&rf.width, "width", "w", 0, "wrap column; 0 uses the terminal width")
	cmd.Flags().StringVar(&rf.color, "color", "auto", "colorize output: auto, always, never")

	return cmd
}

// dumpDocument loads path and writes it through the ANSI surface.
func dumpDocument(cmd *cobra.Command, cfg *config.Config, path string, rf renderFlags) error {
	if !config.ColorMode(rf.color).IsValid() {
		return fmt.Errorf("--color: must be auto, always or never, got %q", rf.color)
	}

	out := cmd.OutOrStdout()
	logger := logging.NewWithWriter(cfg.LogLevel, cmd.ErrOrStderr())
	ctx := logging.WithLogger(cmd.Context(), logger)

	width := outputWidth(out, rf.width, cfg.Render.Width)
	pixels, _ := cfg.CellMetrics().ToPixels(width, 0)

	var src markdown.Source
	if path == stdinArg {
		src = fsutil.ReaderSource{R: cmd.InOrStdin()}
	} else {
		src = fsutil.NewFileSource(path)
	}

	surface := ansi.NewSurface(out, ansi.NewStyles(ansi.IsColorEnabled(rf.color, out)), ansi.Options{
		Width:            width,
		TabWidth:         cfg.TabWidth,
		ParagraphSpacing: cfg.ParagraphSpacing,
	})
	rc := markdown.RenderContext{
		RuleChars: layout.RuleChars(pixels),
		Bullet:    cfg.Bullet,
	}
	if _, err := markdown.Load(ctx, src, rc, surface); err != nil {
		logger.Warn("document unavailable", logging.FieldPath, path, logging.FieldError, err)
		return err
	}
	return surface.Err()
}

// outputWidth picks the wrap column: the flag, then the terminal, then the
// configured fallback.
func outputWidth(out any, flagWidth, fallback int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if f, ok := out.(*os.File); ok && isTerminal(f) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
