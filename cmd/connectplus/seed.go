package main

import (
	"context"
	"fmt"

	"connectplus/internal/seed"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the default roles, needs and admin account",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "prune",
			Usage: "Delete roles and needs that are not in the seed files",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		repos, err := openRepositories(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer repos.Close()

		logrus.Info("Connected to database")

		logrus.Info("Seeding roles...")
		if err := seed.SeedRoles(ctx, repos.roles, c.Bool("prune")); err != nil {
			return fmt.Errorf("failed to seed roles: %w", err)
		}

		logrus.Info("Seeding needs...")
		if err := seed.SeedNeeds(ctx, repos.needs, c.Bool("prune")); err != nil {
			return fmt.Errorf("failed to seed needs: %w", err)
		}

		gate, err := repos.gate(cfg)
		if err != nil {
			return err
		}

		if _, err := seed.SeedAdmin(ctx, gate, repos.users, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to seed admin: %w", err)
		}

		logrus.Info("Seed completed successfully")

		return nil
	},
}

var resetAdminPasswordCommand = &cli.Command{
	Name:  "reset-admin-password",
	Usage: "Create the admin account or reset its password",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "email",
			Usage: "Admin email (defaults to ADMIN_EMAIL)",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "New password (defaults to ADMIN_PASSWORD)",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		email := cfg.AdminEmail
		if c.IsSet("email") {
			email = c.String("email")
		}
		password := cfg.AdminPassword
		if c.IsSet("password") {
			password = c.String("password")
		}

		ctx := context.Background()

		repos, err := openRepositories(ctx, cfg)
		if err != nil {
			return err
		}
		defer repos.Close()

		gate, err := repos.gate(cfg)
		if err != nil {
			return err
		}

		return seed.ResetAdminPassword(ctx, gate, repos.users, email, password)
	},
}
