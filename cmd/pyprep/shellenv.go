package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var shellenvCmd = &cobra.Command{
	Use:   "shellenv",
	Short: "Print the shell lines pyprep manages",
	Long: `Prints the profile lines pyprep maintains, so a running shell can pick
them up without a restart:

  eval "$(pyprep shellenv)"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := newApp(cmd.OutOrStdout()).ShellEnv(cmd.Context(), runOptions())
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}
