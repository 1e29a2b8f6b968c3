// Package app initializes and holds long-lived application services, acting as a dependency injection container.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/urinfo/internal/api"
	"github.com/JakeFAU/urinfo/internal/cache"
	"github.com/JakeFAU/urinfo/internal/config"
	collyfetcher "github.com/JakeFAU/urinfo/internal/fetcher/colly"
	"github.com/JakeFAU/urinfo/internal/id/uuid"
	"github.com/JakeFAU/urinfo/internal/logging"
	"github.com/JakeFAU/urinfo/internal/urinfo"
)

// App holds the shared, long-lived services for the application.
type App struct {
	cfg      config.Config
	logger   *zap.Logger
	resolver urinfo.MetadataResolver
}

// GetConfig returns the loaded configuration.
func (a *App) GetConfig() config.Config {
	return a.cfg
}

// GetLogger returns the shared zap logger.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetResolver returns the resolver, wrapped in the result cache when enabled.
func (a *App) GetResolver() urinfo.MetadataResolver {
	return a.resolver
}

// NewServer builds the HTTP API around the app's resolver.
func (a *App) NewServer() *api.Server {
	return api.NewServer(a.resolver, uuid.New(), a.cfg, a.logger.Named("api"))
}

// NewApp builds the logger, transport and resolver from cfg.
func NewApp(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return newApp(cfg, logger), nil
}

func newApp(cfg config.Config, logger *zap.Logger) *App {
	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:    cfg.Resolver.UserAgent,
		Timeout:      cfg.Resolver.Timeout,
		MaxRedirects: cfg.Resolver.MaxRedirects,
		MaxBodySize:  cfg.Resolver.MaxBodyBytes,
	})
	var resolver urinfo.MetadataResolver = urinfo.NewResolver(fetcher, logger.Named("resolver"))
	if cfg.Cache.Enabled {
		logger.Info("result cache enabled",
			zap.Int("size", cfg.Cache.Size),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
		resolver = cache.New(resolver, cfg.Cache.Size, cfg.Cache.TTL)
	}
	return &App{
		cfg:      cfg,
		logger:   logger,
		resolver: resolver,
	}
}

// Close flushes the logger. It is called by a Cobra hook after the command finishes.
func (a *App) Close() {
	// Sync commonly fails on stdout/stderr; there is nothing useful to do about it.
	_ = a.logger.Sync()
}
