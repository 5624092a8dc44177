package app

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"modboard/pkg/assets"
	"modboard/pkg/banner"
	"modboard/pkg/config"
	"modboard/pkg/credstore"
	"modboard/pkg/fetch"
	"modboard/pkg/httpx"
	"modboard/pkg/sweep"
)

// App encapsulates the server components and lifecycle.
type App struct {
	eff     config.EffectiveConfigResult
	version string

	registry    *assets.Registry
	srv         *httpx.Server
	sweepCancel context.CancelFunc
}

// New initializes resources that do not require a running context: config
// validation, the credential store and the handle registry. Call Run to
// start the HTTP server and block until shutdown.
func New(eff config.EffectiveConfigResult, version string) (*App, error) {
	_ = godotenv.Load(".env")

	if err := validateConfig(eff); err != nil {
		return nil, err
	}

	if err := credstore.Open(eff.StorePath); err != nil {
		return nil, fmt.Errorf("failed to open credential store at %s: %w", eff.StorePath, err)
	}

	cfg := eff.Config
	fetcher := fetch.New(
		credstore.Provider{},
		cfg.FetchTimeoutDuration(),
		fetch.WithMaxBodyBytes(cfg.Media.MaxBodyBytes),
	)
	registry := assets.NewRegistry(fetcher, cfg.Media.ProtectedMarkers, cfg.Media.AssetBasePath)

	return &App{eff: eff, version: version, registry: registry}, nil
}

// Run starts the sweeper and the HTTP server and blocks until ctx is
// canceled or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	cancel, err := sweep.Start(ctx, a.eff.Config, a.registry)
	if err != nil {
		return err
	}
	a.sweepCancel = cancel

	banner.Print(a.eff, a.version)

	errCh := a.startHTTP(ctx)

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown tears down the HTTP server, sweeper and credential store.
func (a *App) Shutdown(ctx context.Context) error {
	if a.sweepCancel != nil {
		a.sweepCancel()
	}
	if a.srv != nil {
		_ = a.srv.Shutdown(ctx)
	}
	return credstore.Close()
}
