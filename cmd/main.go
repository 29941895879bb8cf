package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cloudflix/flixctl/internal/api"
	"github.com/cloudflix/flixctl/internal/services"
	"github.com/cloudflix/flixctl/internal/session"
	"github.com/cloudflix/flixctl/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	store, err := session.NewFileStore(config.Session.Path)
	if err != nil {
		logger.Fatalf("failed to initialize session store: %v", err)
	}

	client := api.NewClient(config.ResolveBaseURL(), nil, store, logger)
	auth := services.NewAuthService(client)

	sess, err := session.NewContext(store, auth, logger)
	if err != nil {
		logger.Fatalf("failed to initialize session: %v", err)
	}
	client.OnUnauthorized(sess.Invalidate)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Store:    store,
		Session:  sess,
		Guard:    session.NewGuard(sess),
		Client:   client,
		Videos:   services.NewVideoService(client),
		History:  services.NewHistoryService(client),
		Social:   services.NewSocialService(client),
		Admin:    services.NewAdminService(client),
		Payments: services.NewPaymentService(client),
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "flixctl",
		Usage:    "Browse, stream and manage CloudFlix from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
