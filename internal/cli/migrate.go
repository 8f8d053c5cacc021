package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
)

func newMigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or inspect the SQL migrations embedded in the binary.

The connection string comes from --dsn, then $DATABASE_DSN, then the config file.`,
	}
	cmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := openMigrator(cmd, dsn)
			if err != nil {
				return err
			}
			defer m.Close()

			versions, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
				return nil
			}
			for _, v := range versions {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied migration %d\n", v)
			}
			return nil
		},
	}

	var output string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show which migrations have been applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(output); err != nil {
				return err
			}
			m, err := openMigrator(cmd, dsn)
			if err != nil {
				return err
			}
			defer m.Close()

			states, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output, states, func(tw *tabwriter.Writer) {
				fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
				for _, s := range states {
					state := "pending"
					if s.Applied {
						state = "applied"
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\n", s.Version, state, s.Path)
				}
			})
		},
	}
	addOutputFlag(status, &output)

	cmd.AddCommand(up, status)
	return cmd
}

func openMigrator(cmd *cobra.Command, dsn string) (*postgres.Migrator, error) {
	if dsn == "" {
		dsn = os.Getenv("DATABASE_DSN")
	}
	if dsn == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		dsn = cfg.Database.DSN
	}
	return postgres.NewMigrator(cmd.Context(), dsn)
}
