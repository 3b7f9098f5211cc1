package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jacs_portal_backend/internal/address"
	"jacs_portal_backend/internal/geocode"
	apphttp "jacs_portal_backend/internal/http"
	"jacs_portal_backend/internal/http/router"
	"jacs_portal_backend/internal/listings"
	"jacs_portal_backend/internal/maps"
	"jacs_portal_backend/internal/properties"
	"jacs_portal_backend/internal/session"
	"jacs_portal_backend/platform/config"
	"jacs_portal_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	geocoder := geocode.NewClient(cfg, log)
	defaults := address.Defaults{
		City:     cfg.GetDefaultCity(),
		Province: cfg.GetDefaultProvince(),
	}

	// API requests carry per-user bearer tokens; the store only backs CLI
	// tools, so the server wires an empty one.
	sessions := session.NewMemoryStore()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	mapsModule := maps.NewModule(geocoder)
	listingsModule := listings.NewModule(cfg.GetListingAPIBaseURL(), log)
	propertiesModule := properties.NewModule(cfg.GetPropertyAPIBaseURL(), geocoder, defaults, sessions, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config: cfg,
		Logger: log,
		Modules: []apphttp.Module{
			mapsModule,
			listingsModule,
			propertiesModule,
		},
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}
