package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"connectplus/internal/transfer"
	"connectplus/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var importCommand = &cli.Command{
	Name:  "import",
	Usage: "Load a JSON snapshot into the database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file",
			Aliases:  []string{"f"},
			Usage:    "Snapshot written by export or the admin download",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "Override the type recorded in the file",
		},
		&cli.BoolFlag{
			Name:  "overwrite",
			Usage: "Update records whose id already exists",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(c.String("file"))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.String("file"), err)
		}

		// snapshots carry the same type and data keys as an import request
		var req types.ImportRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("failed to decode %s: %w", c.String("file"), err)
		}
		if c.IsSet("type") {
			req.Type = types.TransferType(c.String("type"))
		}
		req.Overwrite = c.Bool("overwrite")

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

		importer := transfer.NewImporter(repos.resources, repos.roles, repos.needs, repos.users, gate, logrus.StandardLogger())

		results, err := importer.Import(ctx, &req)
		if err != nil {
			return err
		}

		_, err = pp.Println(results)
		return err
	},
}
