package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bloodlink/internal/buildinfo"
	"github.com/dmitrijs2005/bloodlink/internal/client/cli"
	"github.com/dmitrijs2005/bloodlink/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}

// loadConfig turns a config panic (bad flag or JSON) into a clean exit.
func loadConfig() (cfg *config.Config) {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("invalid configuration: %v", r)
		}
	}()
	return config.LoadConfig()
}
