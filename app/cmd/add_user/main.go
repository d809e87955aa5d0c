package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"aparecida-web/app/config"
	"aparecida-web/app/database"
	"aparecida-web/app/logger"
	"aparecida-web/app/models"
	"aparecida-web/app/routes/auth"

	"github.com/spf13/cobra"
)

func main() {
	var (
		configPath string
		user       models.User
		password   string
		role       string
	)

	cmd := &cobra.Command{
		Use:          "add_user",
		Short:        "Create a back-office account",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			user.Role = models.Role(role)
			if !user.Role.Valid() {
				return fmt.Errorf("role must be %q or %q", models.RoleAdmin, models.RoleStaff)
			}
			if len(password) < 8 {
				return errors.New("password must have at least 8 characters")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if _, err := logger.Init(cfg.Log.Level, true); err != nil {
				return err
			}

			// Initialize database connection
			db, err := database.Open(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := database.RunMigrations(db); err != nil {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			user.Password = hash

			if err := database.CreateUser(context.Background(), db, &user); err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User created successfully: %s (%s, %s)\n", user.Name, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default ./aparecida.yaml)")
	cmd.Flags().StringVar(&user.Email, "email", "", "login e-mail")
	cmd.Flags().StringVar(&user.Name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password (min. 8 characters)")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "admin or staff")
	for _, f := range []string{"email", "name", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
