package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"connectplus/internal/archive"
	"connectplus/internal/transfer"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var exportCommand = &cli.Command{
	Name:  "export",
	Usage: "Write a JSON snapshot of the database",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "type",
			Aliases: []string{"t"},
			Usage:   "resources, roles, needs, users or full",
			Value:   "full",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file (stdout when empty)",
		},
		&cli.BoolFlag{
			Name:  "s3",
			Usage: "Also archive the snapshot to EXPORT_BUCKET",
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

		exporter := transfer.NewExporter(repos.resources, repos.roles, repos.needs, repos.users)

		snapshot, err := exporter.Export(ctx, transfer.ParseType(c.String("type")))
		if err != nil {
			return err
		}

		var out io.Writer = os.Stdout
		if path := c.String("out"); path != "" {
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer file.Close()
			out = file
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snapshot); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}

		if !c.Bool("s3") {
			return nil
		}

		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return err
		}

		archiver := archive.NewS3Archiver(s3.NewFromConfig(awsConfig), cfg.ExportBucket, cfg.ExportPrefix)
		key, err := archiver.Put(ctx, snapshot)
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{
			"bucket": cfg.ExportBucket,
			"key":    key,
		}).Info("snapshot archived")

		return nil
	},
}
