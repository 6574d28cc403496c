package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pythonsCount int

var pythonsCmd = &cobra.Command{
	Use:   "pythons",
	Short: "Install the newest Python releases with asdf",
	Long: `Installs the latest patch of the newest Python 3 minors with asdf and
makes them the global default, newest first. asdf must already be installed;
run pyprep without a subcommand for the full bootstrap.`,
	Args: cobra.NoArgs,
	RunE: runPythons,
}

func init() {
	pythonsCmd.Flags().IntVarP(&pythonsCount, "count", "n", 0, "number of minor versions (default from config: 3)")
}

func runPythons(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	_, err := newApp(cmd.OutOrStdout()).Pythons(ctx, runOptions(), pythonsCount)
	return err
}
