package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unipem/lms/internal/app/migrations"
	"github.com/unipem/lms/internal/bootstrap"
	"github.com/unipem/lms/internal/pkg/auth"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

var seedOnly bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo users and courses (migrates first unless --seed-only)",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config, ping the database and list pending migrations",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash stored for a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedOnly, "seed-only", false, "Skip migrations")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()
	return bootstrap.Migrate(ctx, cfg, pool, lgr)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if !seedOnly {
		if err := bootstrap.Migrate(ctx, cfg, pool, lgr); err != nil {
			return err
		}
	}
	if err := bootstrap.Seed(ctx, pool, lgr); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seed data ready (password %q)\n", auth.DefaultPassword)
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config ok: server :%s, session cookie %q (%s)\n", cfg.Server.Port, cfg.Session.CookieName, cfg.Session.Mode)

	pool, err := bootstrap.ConnectDatabase(cfg, lgr)
	if err != nil {
		return err
	}
	defer pool.Close()
	fmt.Fprintf(out, "database ok: %s@%s/%s\n", cfg.Database.User, cfg.Database.Host, cfg.Database.DBName)

	ctx, cancel := commandContext(cmd)
	defer cancel()

	pending, err := migrations.NewMigrator(pool, lgr).Pending(ctx, cfg.Database.MigrationsPath)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Fprintln(out, "migrations ok: none pending")
		return nil
	}
	for _, file := range pending {
		fmt.Fprintln(out, "pending migration:", file)
	}
	return fmt.Errorf("%d migration(s) pending", len(pending))
}
