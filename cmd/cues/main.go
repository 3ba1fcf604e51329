// Package main is the entry point for the cues CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cues/internal/backend/cuesapi"
	"cues/internal/cli"
	"cues/internal/commands"
	"cues/internal/config"
	"cues/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return cuesapi.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
