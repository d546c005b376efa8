package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/polycopy/Copy-Trading-Backend/internal/apperrors"
	"github.com/polycopy/Copy-Trading-Backend/internal/metrics"
)

// DataAPIClient fetches the trader leaderboard from the data API. The
// upstream caps each request at a fixed page size, so larger limits are
// satisfied by fetching pages concurrently and concatenating them in
// request order.
type DataAPIClient struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

// NewDataAPIClient creates a leaderboard client. pageSize is the per-request
// maximum imposed by the provider (50 at the time of writing).
func NewDataAPIClient(baseURL string, pageSize int, timeout time.Duration) *DataAPIClient {
	if pageSize <= 0 {
		pageSize = 50
	}
	return &DataAPIClient{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchLeaderboard returns at least limit raw leaderboard rows (the final
// page may overshoot; callers truncate after ranking). Pages are fetched
// concurrently. A first-page failure fails the whole call; a failure on any
// secondary page degrades to an empty contribution from that page.
func (c *DataAPIClient) FetchLeaderboard(ctx context.Context, limit int) (rows []LeaderboardRow, err error) {
	defer func() { metrics.ObserveUpstream("data-api", err) }()

	if limit <= 0 {
		limit = c.pageSize
	}
	pages := (limit + c.pageSize - 1) / c.pageSize

	results := make([][]LeaderboardRow, pages)
	g, gctx := errgroup.WithContext(ctx)

	for page := 0; page < pages; page++ {
		page := page
		g.Go(func() error {
			rows, err := c.fetchPage(gctx, page*c.pageSize)
			if err != nil {
				if page == 0 {
					return err
				}
				// Secondary pages are best-effort.
				log.Printf("leaderboard page %d failed, dropping its contribution: %v", page, err)
				return nil
			}
			results[page] = rows
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined []LeaderboardRow
	for _, rows := range results {
		combined = append(combined, rows...)
	}
	return combined, nil
}

// fetchPage issues one leaderboard request at the given offset.
func (c *DataAPIClient) fetchPage(ctx context.Context, offset int) ([]LeaderboardRow, error) {
	q := url.Values{}
	q.Set("category", "OVERALL")
	q.Set("timePeriod", "MONTH")
	q.Set("orderBy", "PNL")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("offset", strconv.Itoa(offset))

	endpoint := fmt.Sprintf("%s/v1/leaderboard?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("data-api", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("data-api", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstreamStatusError("data-api", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewUpstreamTransportError("data-api", err)
	}

	var rows []LeaderboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, apperrors.NewUpstreamTransportError("data-api", fmt.Errorf("unexpected response shape: %w", err))
	}
	return rows, nil
}
