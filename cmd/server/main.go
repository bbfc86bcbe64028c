package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultview/internal/buildinfo"
	"github.com/dmitrijs2005/vaultview/internal/server"
	"github.com/dmitrijs2005/vaultview/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("config error: %v", err)
		return
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
