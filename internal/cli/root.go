// Package cli implements carbonctl, the operator command line for the
// carbon footprint tracker.
package cli

import (
	"github.com/spf13/cobra"
)

const rootCmdExample = `  # Estimate a 12 km car trip
  carbonctl estimate --category transportation --detail type=car --detail distance=12

  # Show the emission factor tables as YAML
  carbonctl factors -o yaml

  # Apply pending database migrations
  carbonctl migrate up

  # Purge expired refresh tokens
  carbonctl tokens cleanup

  # Make an existing user an admin
  carbonctl users promote --email admin@example.com`

// NewRootCmd creates the root carbonctl command with every subcommand
// attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Carbon footprint tracker operator CLI",
		Long:          "carbonctl estimates emissions offline and runs maintenance tasks against the tracker database.",
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "path to the YAML config (defaults to $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(
		newEstimateCmd(),
		newFactorsCmd(),
		newMigrateCmd(),
		newTokensCmd(),
		newUsersCmd(),
		newVersionCmd(),
	)

	return cmd
}
