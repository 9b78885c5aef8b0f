package repository

import (
	"context"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/logger"
)

// AirportInfoChain asks each provider in order and returns the first hit.
// A failing provider is logged and skipped; its error is returned only when no later provider answers.
type AirportInfoChain struct {
	providers []repository.AirportInfoProvider
	logger    logger.Logger
}

var _ repository.AirportInfoProvider = (*AirportInfoChain)(nil)

// NewAirportInfoChain creates a chain over providers. Nil providers are ignored.
func NewAirportInfoChain(log logger.Logger, providers ...repository.AirportInfoProvider) *AirportInfoChain {
	chain := &AirportInfoChain{logger: log}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// LookupAirport implements repository.AirportInfoProvider.
func (c *AirportInfoChain) LookupAirport(ctx context.Context, code string) (*entity.AirportInfo, error) {
	var lastErr error
	for i, p := range c.providers {
		info, err := p.LookupAirport(ctx, code)
		if err != nil {
			c.logger.Warn("Airport info provider failed", "code", code, "provider", i, "error", err)
			lastErr = err
			continue
		}
		if info != nil {
			return info, nil
		}
	}
	return nil, lastErr
}
