package main

import (
	"context"
	"fmt"
	"strings"

	"connectplus/internal/wizard"
	"connectplus/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var browseCommand = &cli.Command{
	Name:  "browse",
	Usage: "Walk the discovery flow from the terminal",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "role",
			Usage: "Role name, repeatable",
		},
		&cli.StringSliceFlag{
			Name:  "need",
			Usage: "Need name, repeatable",
		},
		&cli.StringFlag{
			Name:  "search",
			Usage: "Match title, description or tags",
		},
	},
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

		data := wizard.Load(ctx, &catalog{repos: repos}, logrus.StandardLogger())
		if data.Fallback {
			fmt.Println("(showing built-in sample data)")
		}

		state := wizard.NewState()
		for _, role := range c.StringSlice("role") {
			state.ToggleRole(role)
		}
		state.NextStep()

		available := wizard.AvailableNeeds(data.Needs, data.Roles, state.SelectedRoles)
		fmt.Printf("Needs for %s:\n", describe(state.SelectedRoles, "all roles"))
		for _, need := range available {
			fmt.Printf("  - %s\n", need.Name)
		}

		for _, need := range c.StringSlice("need") {
			state.ToggleNeed(need)
		}
		state.SetSearchTerm(c.String("search"))
		state.NextStep()

		resources := state.Filtered(data.Resources)
		fmt.Printf("\n%d resources:\n", len(resources))
		for _, resource := range resources {
			fmt.Printf("  [%s] %s\n      %s\n", resource.ResourceType, resource.Title, resource.URL)
		}

		return nil
	},
}

func describe(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// catalog adapts the repositories to the wizard's data source.
type catalog struct {
	repos *repositories
}

func (c *catalog) Resources(ctx context.Context) ([]*types.Resource, error) {
	return c.repos.resources.Resources(ctx)
}

func (c *catalog) Roles(ctx context.Context) ([]*types.Role, error) {
	return c.repos.roles.Roles(ctx)
}

func (c *catalog) Needs(ctx context.Context) ([]*types.Need, error) {
	return c.repos.needs.Needs(ctx)
}

var _ wizard.Source = (*catalog)(nil)
