package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/examprep-admin/internal/buildinfo"
	"github.com/dmitrijs2005/examprep-admin/internal/client/cli"
	"github.com/dmitrijs2005/examprep-admin/internal/client/config"
	"github.com/dmitrijs2005/examprep-admin/internal/logging"
)

func main() {

	buildinfo.PrintBanner(os.Stdout, "examadmin")
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
