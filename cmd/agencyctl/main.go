// Command agencyctl runs operator tasks against the agency database.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/atoolsera/agency-backend/config"
	authrepo "github.com/atoolsera/agency-backend/internal/auth/repository"
	authservice "github.com/atoolsera/agency-backend/internal/auth/service"
	"github.com/atoolsera/agency-backend/internal/auth/session"
	"github.com/atoolsera/agency-backend/internal/auth/token"
	"github.com/atoolsera/agency-backend/internal/bootstrap"
	devrepo "github.com/atoolsera/agency-backend/internal/developers/repository"
	intakerepo "github.com/atoolsera/agency-backend/internal/intake/repository"
	"github.com/atoolsera/agency-backend/internal/jobs"
	"github.com/atoolsera/agency-backend/internal/storage/postgres"
)

const commandTimeout = 2 * time.Minute

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "agencyctl",
		Short:         "Operator tasks for the agency backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(migrateCmd(), grantAdminCmd(), reconcileCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabases(cmd.Context(), func(ctx context.Context, _ *config.Config, dbs *bootstrap.Databases) error {
				applied, err := postgres.Migrate(ctx, dbs.SQL, postgres.Migrations)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					cmd.Println("schema is up to date")
					return nil
				}
				for _, v := range applied {
					cmd.Printf("applied %s\n", v)
				}
				return nil
			})
		},
	}
}

func grantAdminCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "grant-admin",
		Short: "Grant the admin role to an existing identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabases(cmd.Context(), func(ctx context.Context, cfg *config.Config, dbs *bootstrap.Databases) error {
				svc := authservice.NewAuthService(
					authrepo.NewUserRepository(dbs.SQL),
					authrepo.NewRoleRepository(dbs.SQL),
					session.NewStore(nil, cfg.Auth.SessionTTL),
					token.NewIssuer(cfg.Auth.JWTSecret),
				)
				user, err := svc.GrantAdmin(ctx, email)
				if err != nil {
					return fmt.Errorf("grant admin to %s: %w", email, err)
				}
				cmd.Printf("granted admin to %s (%s)\n", user.Email, user.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email of the identity to promote")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile-roles",
		Short: "Grant the developer role to approved profiles missing it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabases(cmd.Context(), func(ctx context.Context, _ *config.Config, dbs *bootstrap.Databases) error {
				report, err := jobs.NewScheduler(devrepo.NewRepo(dbs.Pool), intakerepo.NewRepo(dbs.Pool)).RunOnce(ctx)
				if err != nil {
					return err
				}
				cmd.Printf("roles granted: %d, pending developers: %d, unread inquiries: %d\n",
					report.RolesGranted, report.PendingDevelopers, report.UnreadInquiries)
				return nil
			})
		},
	}
}

func withDatabases(parent context.Context, fn func(context.Context, *config.Config, *bootstrap.Databases) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, commandTimeout)
	defer cancel()

	dbs, err := bootstrap.OpenDatabases(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer dbs.Close()

	return fn(ctx, cfg, dbs)
}
