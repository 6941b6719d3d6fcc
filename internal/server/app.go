// Package server initializes and runs the development backend: it seeds the
// admin account, serves the REST API and shuts down gracefully on a signal.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/nehruadmin/internal/logging"
	"github.com/dmitrijs2005/nehruadmin/internal/server/config"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/documents"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/media"
	"github.com/dmitrijs2005/nehruadmin/internal/server/repositories/users"
	"github.com/dmitrijs2005/nehruadmin/internal/server/rest"
	"github.com/dmitrijs2005/nehruadmin/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *rest.RESTServer
}

func NewApp(c *config.Config) (*App, error) {
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
	return newApp(context.Background(), c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	us := services.NewUserService(users.NewMemoryRepository(), c)
	if _, err := us.CreateAdmin(ctx, c.AdminEmail, c.AdminPassword); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	store := media.NewMemoryStore()
	content := make(map[string]*services.ContentService)
	for name, col := range services.DefaultCollections() {
		ids := documents.ObjectIDs()
		if col.IDField == "id" {
			ids = documents.Sequence()
		}
		content[name] = services.NewContentService(col, documents.NewMemoryRepository(col.IDField, ids), store)
	}

	var licenseOpts []services.LicenseOption
	if c.CertificateFont != "" {
		ttf, err := os.ReadFile(c.CertificateFont)
		if err != nil {
			return nil, fmt.Errorf("certificate font: %w", err)
		}
		licenseOpts = append(licenseOpts, services.WithCertificateFont(ttf))
	}

	srv := rest.NewRESTServer(logger, rest.Services{
		Users:    us,
		Content:  content,
		Licenses: services.NewLicenseService(content[services.Licenses], licenseOpts...),
		Media:    store,
	}, c.PublicURL)

	return &App{config: c, logger: logger, server: srv}, nil
}

// Run serves until SIGINT/SIGTERM or ctx cancellation.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.Addr, err)
	}
	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:     app.server.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info(ctx, "Starting server", "addr", ln.Addr().String(), "admin", app.config.AdminEmail)
		if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(ctx, "Shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()
		return hs.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	app.logger.Info(ctx, "Server stopped")
	return nil
}
