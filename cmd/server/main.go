package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/nehruadmin/internal/buildinfo"
	"github.com/dmitrijs2005/nehruadmin/internal/server"
	"github.com/dmitrijs2005/nehruadmin/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout, "Nehru development backend")

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
