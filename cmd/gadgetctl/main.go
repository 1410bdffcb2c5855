package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gadgetd/internal/db"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gadgetctl",
		Short:         "Operator utility for the gadgetd fleet store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newResetCommand())
	cmd.AddCommand(newSeedAdminCommand())
	return cmd
}

func resolveDSN(dsn string) (string, error) {
	if dsn != "" {
		return dsn, nil
	}
	if env := os.Getenv("DB_DSN"); env != "" {
		return env, nil
	}
	return "", errors.New("database DSN is required (--dsn or DB_DSN)")
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newMigrateCommand() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveDSN(dsn)
			if err != nil {
				return err
			}
			return db.RunMigrations(commandContext(cmd), resolved)
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (defaults to DB_DSN)")
	return cmd
}

func newResetCommand() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every gadget, user, and audit row (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveDSN(dsn)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			database, err := db.Connect(ctx, resolved)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			if err := db.Reset(ctx, database); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "tables cleared")
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (defaults to DB_DSN)")
	return cmd
}

func newSeedAdminCommand() *cobra.Command {
	var (
		dsn      string
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create a bootstrap admin identity if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveDSN(dsn)
			if err != nil {
				return err
			}

			ctx := commandContext(cmd)
			database, err := db.Connect(ctx, resolved)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close(database) }()

			if err := db.SeedAdmin(ctx, database, name, email, password); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "admin %s seeded\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (defaults to DB_DSN)")
	cmd.Flags().StringVar(&name, "name", "", "Admin display name")
	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&password, "password", "", "Admin password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
