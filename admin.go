package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codecrew/database"
	"codecrew/models"
	"codecrew/repository/postgres"
	"codecrew/services"
	"codecrew/token"
)

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Info("schema up to date")
			return database.Close(db)
		},
	}
}

func (a *app) userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "set-role EMAIL ROLE",
		Short:   "Change a user's role (TL or Member)",
		Example: "  codecrew user set-role jane@example.com TL",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := models.Role(args[1])
			if !role.Valid() {
				return fmt.Errorf("unknown role %q, want %s or %s", args[1], models.RoleTeamLeader, models.RoleMember)
			}

			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close(db)

			identity := services.NewIdentity(
				postgres.NewUserRepository(db),
				token.NewManager(a.cfg.JWTSecret, a.cfg.JWTExpiration),
				nil,
				a.cfg.BcryptCost,
				a.logger,
			)
			if err := identity.SetRole(cmd.Context(), args[0], role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], role.Label())
			return nil
		},
	})

	return cmd
}
