// Package cli provides the Cobra command structure for mdread.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kk-code-lab/mdread/internal/app"
	"github.com/kk-code-lab/mdread/internal/config"
	"github.com/kk-code-lab/mdread/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every command.
type globalFlags struct {
	configPath   string
	noUserConfig bool
	logLevel     string
	debug        bool
	tabWidth     int
	bullet       string
}

// NewRootCommand creates the root mdread command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdread [FILE|-]",
		Short: "A paged terminal reader for markdown documents",
		Long: `mdread shows a markdown document as a centered page in the terminal.

Headings, rules, list items and the bold and italic emphasis are styled;
everything else is shown as written. Resizing the terminal reflows the page
without re-reading the file. When standard output is not a terminal the
document is written out as styled text instead, like "mdread render".`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, flags, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file")
	pf.BoolVar(&flags.noUserConfig, "no-user-config", false, "ignore the per-user config file")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")
	pf.IntVar(&flags.tabWidth, "tab-width", 0, "columns between tab stops")
	pf.StringVar(&flags.bullet, "bullet", "", "glyph that replaces unordered list markers")

	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// loadConfig resolves the configuration with flags taking precedence.
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	result, err := config.Load(cmd.Context(), config.LoadOptions{
		ExplicitPath:     flags.configPath,
		IgnoreUserConfig: flags.noUserConfig,
		Overrides: func(cfg *config.Config) {
			pf := cmd.Flags()
			if pf.Changed("log-level") {
				cfg.LogLevel = flags.logLevel
			}
			if flags.debug {
				cfg.LogLevel = "debug"
			}
			if pf.Changed("tab-width") {
				cfg.TabWidth = flags.tabWidth
			}
			if pf.Changed("bullet") {
				cfg.Bullet = flags.bullet
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func runViewer(cmd *cobra.Command, flags *globalFlags, args []string) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if !isTerminal(cmd.InOrStdin()) {
		path = stdinArg
	}

	if !isTerminal(cmd.OutOrStdout()) {
		if path == "" {
			return fmt.Errorf("no document: pass a FILE or pipe one on stdin")
		}
		return dumpDocument(cmd, cfg, path, renderFlags{color: string(cfg.Color)})
	}

	logger, closeLog, err := viewerLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := logging.WithLogger(cmd.Context(), logger)
	viewer, err := app.NewApplication(ctx, app.Options{
		Config: cfg,
		Path:   path,
		Stdin:  cmd.InOrStdin(),
	})
	if err != nil {
		return err
	}
	return viewer.Run(ctx)
}

// viewerLogger logs to cfg.LogFile, appending, or discards the output. The
// viewer owns the terminal so it never logs to stderr.
func viewerLogger(cfg *config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logging.NewWithWriter(cfg.LogLevel, io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewWithWriter(cfg.LogLevel, f), func() { _ = f.Close() }, nil
}

// isTerminal reports whether the stream is an interactive terminal.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
