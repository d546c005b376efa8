package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/polycopy/Copy-Trading-Backend/internal/apperrors"
	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
	"github.com/polycopy/Copy-Trading-Backend/internal/polymarket"
	"github.com/polycopy/Copy-Trading-Backend/internal/store"
)

// fetcherFunc adapts a function to the LeaderboardFetcher interface.
type fetcherFunc func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error)

func (f fetcherFunc) FetchLeaderboard(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
	return f(ctx, limit)
}

func leaderboardRows(n int) []polymarket.LeaderboardRow {
	rows := make([]polymarket.LeaderboardRow, n)
	for i := range rows {
		rows[i] = polymarket.LeaderboardRow{
			ProxyWallet: walletAddr(i),
			PnL:         polymarket.FlexFloat(1000 - 10*float64(i)),
			Vol:         5000,
		}
	}
	return rows
}

func walletAddr(i int) string {
	return "0x00000000000000000000000000000000000000" + string(rune('a'+i%26)) + string(rune('a'+i/26))
}

// TestTraderService_TopTraders tests derivation, ranking, and copy stamping.
//
// WHY: This is the full leaderboard pipeline: raw rows in, ranked TopTraders
// out, with dense ranks after truncation and isCopied reflecting the store.
func TestTraderService_TopTraders(t *testing.T) {
	t.Run("derives, ranks densely, and truncates to limit", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
			return leaderboardRows(10), nil
		})
		svc := NewTraderService(fetcher, store.NewCopyStore(), derive.NewEstimator())

		traders, fallback, err := svc.TopTraders(context.Background(), 5)
		if err != nil {
			t.Fatalf("TopTraders() returned unexpected error: %v", err)
		}
		if fallback {
			t.Error("fresh fetch should not be marked as fallback")
		}
		if len(traders) != 5 {
			t.Fatalf("got %d traders, want 5", len(traders))
		}
		for i, tr := range traders {
			if tr.Rank != i+1 {
				t.Errorf("rank at position %d = %d, want %d (dense after truncation)", i, tr.Rank, i+1)
			}
		}
		for i := 1; i < len(traders); i++ {
			if traders[i].WinRate > traders[i-1].WinRate {
				t.Errorf("win rate at position %d exceeds position %d; list must be sorted descending", i, i-1)
			}
		}
	})

	t.Run("stamps isCopied from the copy store", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
			return leaderboardRows(3), nil
		})
		cs := store.NewCopyStore()
		svc := NewTraderService(fetcher, cs, derive.NewEstimator())

		first, _, err := svc.TopTraders(context.Background(), 3)
		if err != nil {
			t.Fatalf("TopTraders() returned unexpected error: %v", err)
		}
		cs.AddCopiedTrader(model.CopyConfig{
			TraderID:   first[0].ID,
			Allocation: model.FixedAllocation{Amount: 100},
		}, first[0].Trader)

		traders, _, err := svc.TopTraders(context.Background(), 3)
		if err != nil {
			t.Fatalf("TopTraders() returned unexpected error: %v", err)
		}
		if !traders[0].IsCopied {
			t.Error("expected the copied trader to be stamped isCopied")
		}
		if traders[1].IsCopied || traders[2].IsCopied {
			t.Error("uncopied traders must not be stamped")
		}
	})

	t.Run("upstream failure with no cache returns the error", func(t *testing.T) {
		fetcher := fetcherFunc(func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
			return nil, apperrors.NewUpstreamStatusError("data-api", 502, "Bad Gateway")
		})
		svc := NewTraderService(fetcher, store.NewCopyStore(), derive.NewEstimator())

		_, _, err := svc.TopTraders(context.Background(), 10)
		if err == nil {
			t.Fatal("expected error when upstream fails with an empty cache")
		}
		if !apperrors.IsUpstream(err) {
			t.Errorf("error = %v, want UpstreamError", err)
		}
	})

	t.Run("upstream failure serves the last-good cache as fallback", func(t *testing.T) {
		failing := false
		fetcher := fetcherFunc(func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
			if failing {
				return nil, errors.New("connection refused")
			}
			return leaderboardRows(4), nil
		})
		svc := NewTraderService(fetcher, store.NewCopyStore(), derive.NewEstimator())

		warm, _, err := svc.TopTraders(context.Background(), 4)
		if err != nil {
			t.Fatalf("warm-up fetch failed: %v", err)
		}

		failing = true
		traders, fallback, err := svc.TopTraders(context.Background(), 4)
		if err != nil {
			t.Fatalf("expected fallback, got error: %v", err)
		}
		if !fallback {
			t.Error("expected result to be marked as fallback")
		}
		if len(traders) != len(warm) {
			t.Errorf("fallback has %d traders, want %d", len(traders), len(warm))
		}
		for i := range traders {
			if traders[i].ID != warm[i].ID {
				t.Errorf("fallback position %d = %q, want cached %q", i, traders[i].ID, warm[i].ID)
			}
		}
	})
}

// TestTraderService_SupersededFetch verifies last-write-wins by issuance
// order: a fetch that started earlier but finished later must not overwrite
// the cache written by a newer fetch.
func TestTraderService_SupersededFetch(t *testing.T) {
	oldRows := leaderboardRows(2)
	newRows := leaderboardRows(6)

	started := make(chan struct{})
	release := make(chan struct{})
	var call int
	var mu sync.Mutex

	fetcher := fetcherFunc(func(ctx context.Context, limit int) ([]polymarket.LeaderboardRow, error) {
		mu.Lock()
		call++
		n := call
		mu.Unlock()

		switch n {
		case 1: // stale fetch, completes last
			close(started)
			<-release
			return oldRows, nil
		case 2: // newer fetch, completes first
			return newRows, nil
		default: // probe: force fallback from cache
			return nil, errors.New("down")
		}
	})
	svc := NewTraderService(fetcher, store.NewCopyStore(), derive.NewEstimator())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		staleResult, _, err := svc.TopTraders(context.Background(), 10)
		if err != nil {
			t.Errorf("stale fetch returned error: %v", err)
			return
		}
		// The superseded call still answers its own caller.
		if len(staleResult) != len(oldRows) {
			t.Errorf("stale fetch returned %d traders, want %d", len(staleResult), len(oldRows))
		}
	}()

	<-started
	fresh, _, err := svc.TopTraders(context.Background(), 10)
	if err != nil {
		t.Fatalf("newer fetch returned error: %v", err)
	}
	if len(fresh) != len(newRows) {
		t.Fatalf("newer fetch returned %d traders, want %d", len(fresh), len(newRows))
	}

	close(release)
	wg.Wait()

	// The cache must still hold the newer result, not the stale one.
	cached, fallback, err := svc.TopTraders(context.Background(), 10)
	if err != nil {
		t.Fatalf("probe fetch returned error: %v", err)
	}
	if !fallback {
		t.Fatal("probe fetch should serve the cache")
	}
	if len(cached) != len(newRows) {
		t.Errorf("cache holds %d traders, want %d; stale fetch must not regress the cache", len(cached), len(newRows))
	}
}
