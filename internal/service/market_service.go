package service

import (
	"context"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// MarketFetcher is the upstream surface MarketService needs; satisfied by
// polymarket.GammaClient.
type MarketFetcher interface {
	FetchMarkets(ctx context.Context, filter model.MarketFilter) ([]model.Market, error)
}

// MarketService exposes market discovery to the API layer.
type MarketService struct {
	gamma MarketFetcher
}

// NewMarketService creates a MarketService.
func NewMarketService(gamma MarketFetcher) *MarketService {
	return &MarketService{gamma: gamma}
}

// Markets fetches markets matching the filter. The filter is passed through
// unchanged; endpoint-level defaults are the handler's concern.
func (s *MarketService) Markets(ctx context.Context, filter model.MarketFilter) ([]model.Market, error) {
	markets, err := s.gamma.FetchMarkets(ctx, filter)
	if err != nil {
		return nil, err
	}
	if markets == nil {
		markets = []model.Market{}
	}
	return markets, nil
}
