package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dpm-integrator/internal/adapters/primary/cli"
	"dpm-integrator/internal/config"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.NewApp(cfg).Execute(ctx, os.Args[1:])
	stop()

	os.Exit(code)
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
