package main

import (
	"context"
	"fmt"

	"connectplus/internal/seed"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var checkCommand = &cli.Command{
	Name:  "check",
	Usage: "Print table counts and the stored resources",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		ctx := context.Background()

		repos, err := openRepositories(ctx, cfg)
		if err != nil {
			return err
		}
		defer repos.Close()

		inserted, err := seed.EnsureSampleResource(ctx, repos.resources)
		if err != nil {
			return err
		}
		if inserted {
			logrus.Info("Resource table was empty, inserted a sample resource")
		}

		counts := []struct {
			name  string
			count func(context.Context) (int, error)
		}{
			{"resources", repos.resources.CountResources},
			{"roles", repos.roles.CountRoles},
			{"needs", repos.needs.CountNeeds},
			{"users", repos.users.CountUsers},
		}
		for _, table := range counts {
			n, err := table.count(ctx)
			if err != nil {
				return fmt.Errorf("failed to count %s: %w", table.name, err)
			}
			fmt.Printf("%-10s %d\n", table.name, n)
		}

		resources, err := repos.resources.Resources(ctx)
		if err != nil {
			return err
		}

		_, err = pp.Println(resources)
		return err
	},
}
