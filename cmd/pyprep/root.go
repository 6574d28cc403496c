package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/pyprep/internal/adapters/command"
	"github.com/felixgeelhaar/pyprep/internal/adapters/logging"
	"github.com/felixgeelhaar/pyprep/internal/app"
	"github.com/felixgeelhaar/pyprep/internal/domain/config"
	"github.com/felixgeelhaar/pyprep/internal/ports"
	"github.com/felixgeelhaar/pyprep/internal/ui"
)

var (
	// Global flags
	cfgFile     string
	profilePath string
	verbose     bool
	yesFlag     bool
	jsonLogs    bool
	noColor     bool
	logLevel    string

	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "pyprep",
	Short: "Bootstrap a Python development environment on Ubuntu",
	Long: `pyprep prepares an Ubuntu workstation for Python development.

It refreshes and upgrades OS packages, installs the interpreter build
dependencies, installs asdf with the newest Python releases, the py
launcher, pip, pipx and a set of pipx tools. Every step checks first, so
running it again only repairs what is missing.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		_, err := resolveLevel(verbose, logLevel)
		return err
	},
	RunE: runBootstrap,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML or TOML overlay for the built-in defaults (default: $PYPREP_CONFIG or ~/.config/pyprep/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "shell profile to update (default: ~/.bashrc)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and tool output")
	rootCmd.PersistentFlags().BoolVarP(&yesFlag, "yes", "y", false, "auto-confirm all prompts")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON lines")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "minimum log level: debug, info, warn, error (default info, debug with --verbose)")

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "check every step and show the plan without changing anything")

	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(pythonsCmd)
	rootCmd.AddCommand(shellenvCmd)
	rootCmd.AddCommand(versionCmd)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return newApp(cmd.OutOrStdout()).Run(ctx, runOptions().WithDryRun(dryRun))
}

func runOptions() app.RunOptions {
	return app.NewRunOptions().
		WithConfig(cfgFile).
		WithProfile(profilePath).
		WithAssumeYes(yesFlag).
		WithInteractive(isTerminal(os.Stdin) && isTerminal(os.Stdout)).
		WithVerbose(verbose)
}

// newApp builds the application with a logger configured from the global
// flags. Logs go to stderr; reports go to out.
func newApp(out io.Writer) *app.PyPrep {
	logger := newLogger(os.Stderr)

	runnerOpts := []command.RunnerOption{command.WithLogger(logger)}
	if verbose {
		runnerOpts = append(runnerOpts, command.WithStream(os.Stderr))
	}

	return app.New(out, logger).
		WithRunner(command.NewRealRunner(runnerOpts...)).
		WithStyles(ui.NewStyles(colorEnabled(os.Stdout))).
		WithConfirmer(newConfirmer(os.Stdin, os.Stderr))
}

// resolveLevel lets an explicit --log-level win over --verbose.
func resolveLevel(verbose bool, name string) (ports.Level, error) {
	if name != "" {
		return ports.ParseLevel(name)
	}
	if verbose {
		return ports.LevelDebug, nil
	}
	return ports.LevelInfo, nil
}

func newLogger(w *os.File) ports.Logger {
	level, err := resolveLevel(verbose, logLevel)
	if err != nil {
		level = ports.LevelInfo
	}

	var logger ports.Logger = logging.NewConsoleLogger(
		logging.WithOutput(w),
		logging.WithLevel(level),
		logging.WithJSONFormat(jsonLogs),
		logging.WithTimestamp(jsonLogs),
		logging.WithStyles(ui.NewStyles(!jsonLogs && colorEnabled(w))),
	)
	if jsonLogs {
		logger = logger.With(ports.F("run_id", uuid.NewString()))
	}
	return logger
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorEnabled(f *os.File) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(f)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var list *config.ErrorList
	if errors.As(err, &list) && len(list.Errors()) > 1 {
		return strings.TrimRight(list.Error(), "\n")
	}

	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
