package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/faktura/backend/internal/infrastructure/auth"
)

func newTokenCmd(app *cli) *cobra.Command {
	var (
		tenant string
		user   string
		name   string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a tenant",
		Example: `  fakturactl token --tenant 6f1c... --user buchhaltung@example.de
  curl -H "Authorization: Bearer $(fakturactl token --tenant 6f1c...)" localhost:8080/api/v1/invoices`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cfg.App.Env == "production" {
				return errors.New("tokens cannot be issued from the CLI in production")
			}
			if app.cfg.JWT.Secret == "" {
				return errors.New("jwt.secret is not configured")
			}
			tenantID, err := uuid.Parse(tenant)
			if err != nil {
				return fmt.Errorf("invalid tenant id %q", tenant)
			}
			issued, err := auth.NewJWTService(app.cfg.JWT).GenerateToken(tenantID, user, name, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), issued.AccessToken)
			return nil
		},
	}
	cmd.Flags().StringVar(&tenant, "tenant", "", "tenant (company) id")
	cmd.Flags().StringVar(&user, "user", "fakturactl", "subject of the token")
	cmd.Flags().StringVar(&name, "name", "", "display name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: jwt.access_token_expiration)")
	_ = cmd.MarkFlagRequired("tenant")
	return cmd
}
