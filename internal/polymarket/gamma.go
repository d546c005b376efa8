// Package polymarket wraps the three public data sources this dashboard
// consumes: the Gamma market-discovery REST API, the data API leaderboard,
// and the activity/positions GraphQL subgraphs. The clients translate wire
// shapes into internal models and contain all network and upstream-error
// concerns; they retain no state between calls.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polycopy/Copy-Trading-Backend/internal/apperrors"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// GammaClient fetches market metadata from the Gamma discovery API.
type GammaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGammaClient creates a Gamma client against the given base URL.
func NewGammaClient(baseURL string, timeout time.Duration) *GammaClient {
	return &GammaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchMarkets queries /markets with the given filter. Absent filter fields
// are omitted from the outbound query rather than defaulted. A non-2xx
// response yields an UpstreamError carrying the status text.
func (c *GammaClient) FetchMarkets(ctx context.Context, filter model.MarketFilter) (markets []model.Market, err error) {
	defer func() { metrics.ObserveUpstream("gamma", err) }()

	q := url.Values{}
	if filter.Active != nil {
		q.Set("active", strconv.FormatBool(*filter.Active))
	}
	if filter.Closed != nil {
		q.Set("closed", strconv.FormatBool(*filter.Closed))
	}
	if filter.Archived != nil {
		q.Set("archived", strconv.FormatBool(*filter.Archived))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		q.Set("offset", strconv.Itoa(filter.Offset))
	}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}

	endpoint := fmt.Sprintf("%s/markets?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("gamma", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("gamma", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstreamStatusError("gamma", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("gamma", err)
	}

	return parseMarketsBody(data)
}

// parseMarketsBody accepts both response envelopes the API is known to use:
// a bare array and a {"results": [...]} wrapper.
func parseMarketsBody(data []byte) ([]model.Market, error) {
	var wrapped struct {
		Results []model.Market `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Results != nil {
		return wrapped.Results, nil
	}

	var markets []model.Market
	if err := json.Unmarshal(data, &markets); err != nil {
		return nil, apperrors.NewUpstreamTransportError("gamma", fmt.Errorf("unexpected response shape: %w", err))
	}
	if markets == nil {
		markets = []model.Market{}
	}
	return markets, nil
}
