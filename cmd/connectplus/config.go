package main

import (
	"context"
	"database/sql"
	"fmt"

	"connectplus/internal/auth"
	"connectplus/internal/db"
	"connectplus/internal/store"
	"connectplus/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
	"github.com/urfave/cli/v2"
)

func loadConfig(cCtx *cli.Context) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(cCtx.String("env-prefix"), c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabasePath == "" {
		return nil, fmt.Errorf("set DATABASE_PATH")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

type repositories struct {
	conn      *sql.DB
	resources *store.ResourceRepository
	roles     *store.RoleRepository
	needs     *store.NeedRepository
	users     *store.UserRepository
}

// openRepositories opens the database, applying pending migrations, and
// wires every repository onto the one connection.
func openRepositories(ctx context.Context, cfg *types.Config) (*repositories, error) {
	conn, err := db.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	return &repositories{
		conn:      conn,
		resources: store.NewResourceRepository(conn),
		roles:     store.NewRoleRepository(conn),
		needs:     store.NewNeedRepository(conn),
		users:     store.NewUserRepository(conn),
	}, nil
}

func (r *repositories) Close() error {
	return r.conn.Close()
}

func (r *repositories) gate(cfg *types.Config) (*auth.Gate, error) {
	return auth.NewGate(r.users, cfg.BcryptCost)
}
