package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var migrateCommand = &cli.Command{
	Name:  "migrate",
	Usage: "Create or upgrade the database schema",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		repos, err := openRepositories(context.Background(), cfg)
		if err != nil {
			return err
		}
		defer repos.Close()

		logrus.WithField("path", cfg.DatabasePath).Info("Database schema is up to date")
		return nil
	},
}
