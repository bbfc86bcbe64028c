package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/vaultview/internal/buildinfo"
	"github.com/dmitrijs2005/vaultview/internal/client/cli"
	"github.com/dmitrijs2005/vaultview/internal/client/config"
	"github.com/dmitrijs2005/vaultview/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	lg := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, lg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
