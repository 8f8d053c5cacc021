package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres"
	authmethodrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/authmethod"
	tokenrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/token"
	userrepo "github.com/heartmarshall/carbontrack-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/carbontrack-backend/internal/app"
	"github.com/heartmarshall/carbontrack-backend/internal/auth"
	authsvc "github.com/heartmarshall/carbontrack-backend/internal/service/auth"
)

func newTokensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Maintain refresh tokens",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "cleanup",
		Short: "Delete expired refresh tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := app.NewLoggerTo(cmd.ErrOrStderr(), cfg.Log)

			pool, err := postgres.NewPool(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			jwtManager, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
			if err != nil {
				return err
			}

			svc := authsvc.NewService(logger,
				userrepo.New(pool), tokenrepo.New(pool), authmethodrepo.New(pool),
				postgres.NewTxManager(pool), jwtManager, cfg.Auth)

			n, err := svc.CleanupExpiredTokens(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired refresh tokens.\n", n)
			return nil
		},
	})

	return cmd
}
