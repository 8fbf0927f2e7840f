package upstream

import (
	"context"
	"fmt"

	"github.com/username/vacation-calendar/internal/holidays"
	"go.uber.org/zap"
)

// CompositeProvider implements Provider with fallback strategy
// Primary: usually CalendarificProvider (API)
// Fallback: BuiltinProvider or FileProvider
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays tries the primary provider first. If the fallback fails too,
// the primary error is returned since it describes the configured source.
func (cp *CompositeProvider) Holidays(ctx context.Context, country string, year int) (*holidays.Response, error) {
	resp, err := cp.primary.Holidays(ctx, country, year)
	if err == nil {
		return resp, nil
	}

	cp.logger.Warn("Primary provider failed, trying fallback",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Error(err))

	resp, fallbackErr := cp.fallback.Holidays(ctx, country, year)
	if fallbackErr != nil {
		cp.logger.Warn("Fallback provider failed",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Error(fallbackErr))
		return nil, err
	}

	return resp, nil
}

// LoadFallback loads the fallback provider (if FileProvider)
func (cp *CompositeProvider) LoadFallback() error {
	if fp, ok := cp.fallback.(*FileProvider); ok {
		if err := fp.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holidays: %w", err)
		}
		cp.logger.Info("Fallback holidays loaded successfully")
	}
	return nil
}
