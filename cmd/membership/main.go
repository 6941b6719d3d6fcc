package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/nehruadmin/internal/buildinfo"
	"github.com/dmitrijs2005/nehruadmin/internal/client/client"
	"github.com/dmitrijs2005/nehruadmin/internal/client/config"
	"github.com/dmitrijs2005/nehruadmin/internal/client/models"
	"github.com/dmitrijs2005/nehruadmin/internal/client/notify"
	"github.com/dmitrijs2005/nehruadmin/internal/client/services"
	"github.com/dmitrijs2005/nehruadmin/internal/client/tui"
	"github.com/dmitrijs2005/nehruadmin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout, "Nehru membership form")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	// the form owns the terminal; logs go to a file when one is wanted
	logger, err := logging.NewTextLogger(logOutput(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	catalog := models.DefaultCatalog().WithPaths(cfg.Resources)
	res, ok := catalog.Lookup(models.ResourceLicenses)
	if !ok {
		log.Fatalf("no %s resource configured", models.ResourceLicenses)
	}

	c := client.NewHTTPClient(cfg.ServerBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithHeaders(cfg.Headers),
		client.WithLogger(logger),
	)
	queue := notify.NewQueue(0)
	form := services.NewMembershipForm(ctx, res, c, queue, logger)

	if err := tui.Run(ctx, form, queue); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logOutput() *os.File {
	p := os.Getenv("NEHRU_LOG_FILE")
	if p == "" {
		devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return os.Stderr
		}
		return devnull
	}
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}
