package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectplus/internal/auth"
	"connectplus/internal/server"
	"connectplus/internal/transfer"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig(cCtx)
	if err != nil {
		return err
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", config.LogLevel, err)
	}
	logger.SetLevel(level)

	if config.SessionSecret == "" {
		return fmt.Errorf("set SESSION_SECRET")
	}

	repos, err := openRepositories(ctx, config)
	if err != nil {
		return err
	}
	defer repos.Close()

	gate, err := repos.gate(config)
	if err != nil {
		return err
	}

	issuer, err := auth.NewIssuer([]byte(config.SessionSecret), time.Duration(config.SessionMaxAgeSec)*time.Second)
	if err != nil {
		return err
	}

	srv, err := server.New(
		config,
		logger,
		repos.conn,
		repos.resources,
		repos.roles,
		repos.needs,
		repos.users,
		gate,
		issuer,
		transfer.NewImporter(repos.resources, repos.roles, repos.needs, repos.users, gate, logger),
		transfer.NewExporter(repos.resources, repos.roles, repos.needs, repos.users),
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
