package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/nehruadmin/internal/buildinfo"
	"github.com/dmitrijs2005/nehruadmin/internal/client/cli"
	"github.com/dmitrijs2005/nehruadmin/internal/client/config"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout, "Nehru admin panel")

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
