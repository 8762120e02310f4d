// Command semprobe checks that a semaphore primitive behaves on this host: it
// runs one section on a fresh semaphore, then hammers a shared counter from
// many goroutines and verifies mutual exclusion.
//
// It is configured through SEMPROBE_* environment variables; see
// internal/config for the list and their defaults.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	_ "go.uber.org/automaxprocs"

	"github.com/notorious-go/sync/internal/config"
	"github.com/notorious-go/sync/internal/logger"
	"github.com/notorious-go/sync/internal/probe"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(viper.New())
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 2
	}
	l, err := logger.Init(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize logger")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := probe.Run(ctx, cfg, l); err != nil {
		l.Error().Err(err).Msg("probe failed")
		return 1
	}
	return 0
}
