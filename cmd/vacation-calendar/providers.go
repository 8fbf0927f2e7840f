package main

import (
	"fmt"

	"github.com/username/vacation-calendar/internal/config"
	"github.com/username/vacation-calendar/internal/upstream"
	"go.uber.org/zap"
)

// initializeProvider builds the configured holiday source, adds the file
// fallback when one is configured, and puts the LRU cache in front.
func initializeProvider(cfg *config.Config) (upstream.Provider, error) {
	var primary upstream.Provider

	switch cfg.Upstream.Type {
	case config.UpstreamCalendarific:
		if cfg.Upstream.APIKey == "" {
			logger.Warn("Calendarific API key is not set; requests will fail with 'API key not configured'")
		}
		primary = upstream.NewCalendarificProvider(
			cfg.Upstream.APIURL,
			cfg.Upstream.APIKey,
			cfg.Upstream.GetTimeout(),
			logger,
		)
	case config.UpstreamBuiltin:
		primary = upstream.NewBuiltinProvider(logger)
	case config.UpstreamFile:
		fp := upstream.NewFileProvider(cfg.Upstream.FallbackFile, logger)
		if err := fp.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holiday file: %w", err)
		}
		primary = fp
	default:
		return nil, fmt.Errorf("unknown upstream type: %s", cfg.Upstream.Type)
	}

	provider := primary
	if cfg.Upstream.FallbackFile != "" && cfg.Upstream.Type != config.UpstreamFile {
		composite := upstream.NewCompositeProvider(primary, upstream.NewFileProvider(cfg.Upstream.FallbackFile, logger), logger)
		if err := composite.LoadFallback(); err != nil {
			return nil, err
		}
		provider = composite
	}

	logger.Info("Holiday provider initialized",
		zap.String("type", cfg.Upstream.Type),
		zap.String("fallback_file", cfg.Upstream.FallbackFile),
		zap.Int("cache_size", cfg.Upstream.CacheSize),
		zap.Duration("cache_ttl", cfg.Upstream.GetCacheTTL()))

	return upstream.NewCachedProvider(provider, cfg.Upstream.CacheSize, cfg.Upstream.GetCacheTTL(), logger), nil
}
