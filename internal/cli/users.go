package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	var email string
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Grant the admin role to a user",
		Long:  "promote sets the role of the user with the given email to admin. It is used to bootstrap the first admin.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			u, err := userrepo.New(pool).SetRoleByEmail(cmd.Context(), email, domain.UserRoleAdmin)
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no user with email %q", email)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %q (%s) is now admin.\n", u.Email, u.ID)
			return nil
		},
	}
	promote.Flags().StringVar(&email, "email", "", "email of the user to promote")
	cmd.AddCommand(promote)

	return cmd
}
