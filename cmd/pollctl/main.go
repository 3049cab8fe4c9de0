package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/samvad-poll-client/internal/app"
	"github.com/samvad-hq/samvad-poll-client/internal/config"
	"github.com/samvad-hq/samvad-poll-client/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pollctl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pollctl, err := app.NewPollctl(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer pollctl.Close()

	return pollctl.Run(ctx, os.Args[1:])
}
