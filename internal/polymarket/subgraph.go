package polymarket

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/machinebox/graphql"

	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

const fillsQuery = `
query GetUserTrades($user: String!, $limit: Int!) {
  fills(
    where: { user: $user }
    orderBy: timestamp
    orderDirection: desc
    first: $limit
  ) {
    id
    user
    market
    outcome
    price
    amount
    timestamp
  }
}`

const positionsQuery = `
query GetUserPositions($user: String!) {
  positions(where: { user: $user }) {
    user
    market
    outcome
    size
    averagePrice
  }
}`

// subgraphFill mirrors the activity subgraph's fill shape; all numeric
// fields arrive as strings.
type subgraphFill struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Market    string `json:"market"`
	Outcome   string `json:"outcome"`
	Price     string `json:"price"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}

// subgraphPosition mirrors the positions subgraph's position shape.
type subgraphPosition struct {
	User         string `json:"user"`
	Market       string `json:"market"`
	Outcome      string `json:"outcome"`
	Size         string `json:"size"`
	AveragePrice string `json:"averagePrice"`
}

// SubgraphClient queries the activity and positions subgraphs. Both sources
// are best-effort enrichment: every fetch degrades to an empty result on
// failure instead of propagating an error.
type SubgraphClient struct {
	activity  *graphql.Client
	positions *graphql.Client
}

// NewSubgraphClient creates a client against the two subgraph endpoints.
func NewSubgraphClient(activityURL, positionsURL string, timeout time.Duration) *SubgraphClient {
	httpClient := &http.Client{Timeout: timeout}
	return &SubgraphClient{
		activity:  graphql.NewClient(activityURL, graphql.WithHTTPClient(httpClient)),
		positions: graphql.NewClient(positionsURL, graphql.WithHTTPClient(httpClient)),
	}
}

// FetchUserFills returns up to limit fills for one account, newest first.
// Returns an empty slice on upstream failure.
func (c *SubgraphClient) FetchUserFills(ctx context.Context, address string, limit int) []model.Fill {
	req := graphql.NewRequest(fillsQuery)
	req.Var("user", strings.ToLower(address))
	req.Var("limit", limit)

	var resp struct {
		Fills []subgraphFill `json:"fills"`
	}
	err := c.activity.Run(ctx, req, &resp)
	metrics.ObserveUpstream("activity-subgraph", err)
	if err != nil {
		log.Printf("activity subgraph query failed for %s: %v", address, err)
		return []model.Fill{}
	}

	fills := make([]model.Fill, len(resp.Fills))
	for i, f := range resp.Fills {
		fills[i] = model.Fill{
			ID:        f.ID,
			User:      f.User,
			Market:    f.Market,
			Outcome:   f.Outcome,
			Price:     derive.ParseNumeric(f.Price),
			Amount:    derive.ParseNumeric(f.Amount),
			Timestamp: int64(derive.ParseNumeric(f.Timestamp)),
		}
	}
	return fills
}

// FetchUserPositions returns the account's open positions.
// Returns an empty slice on upstream failure.
func (c *SubgraphClient) FetchUserPositions(ctx context.Context, address string) []model.Position {
	req := graphql.NewRequest(positionsQuery)
	req.Var("user", strings.ToLower(address))

	var resp struct {
		Positions []subgraphPosition `json:"positions"`
	}
	err := c.positions.Run(ctx, req, &resp)
	metrics.ObserveUpstream("positions-subgraph", err)
	if err != nil {
		log.Printf("positions subgraph query failed for %s: %v", address, err)
		return []model.Position{}
	}

	positions := make([]model.Position, len(resp.Positions))
	for i, p := range resp.Positions {
		positions[i] = model.Position{
			User:         p.User,
			Market:       p.Market,
			Outcome:      p.Outcome,
			Size:         derive.ParseNumeric(p.Size),
			AveragePrice: derive.ParseNumeric(p.AveragePrice),
		}
	}
	return positions
}
