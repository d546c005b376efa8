// Package store owns the copied-trader set, the selected-trader pointer, and
// the derived portfolio metrics. All mutations pass through the CopyStore and
// are serialized, so the metrics can never be observed stale relative to the
// copied set.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polycopy/Copy-Trading-Backend/internal/apperrors"
	"github.com/polycopy/Copy-Trading-Backend/internal/derive"
	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// sparklineLen is the number of samples kept in a copied trader's inline chart.
const sparklineLen = 11

// Snapshot is an immutable view of the store's state at one point in time.
type Snapshot struct {
	CopiedTraders    []model.CopiedTrader   `json:"copiedTraders"`
	SelectedTraderID string                 `json:"selectedTraderId"`
	Metrics          model.PortfolioMetrics `json:"metrics"`
}

// Subscriber receives a snapshot after every completed mutation.
type Subscriber func(Snapshot)

// CopyStore is the single owner of copy-trading state.
type CopyStore struct {
	mu          sync.Mutex
	copied      []model.CopiedTrader
	selectedID  string
	metrics     model.PortfolioMetrics
	subscribers map[int]Subscriber
	nextSubID   int

	now   func() time.Time
	newID func() string
}

// Option configures a CopyStore.
type Option func(*CopyStore)

// WithClock replaces the wall clock, used by tests for stable CopiedAt values.
func WithClock(now func() time.Time) Option {
	return func(s *CopyStore) { s.now = now }
}

// WithIDGenerator replaces the copy-record id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *CopyStore) { s.newID = newID }
}

// NewCopyStore creates an empty store.
func NewCopyStore(opts ...Option) *CopyStore {
	s := &CopyStore{
		subscribers: make(map[int]Subscriber),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = derive.CalculatePortfolioMetrics(nil)
	return s
}

// AddCopiedTrader executes a copy command. Adding a trader already in the
// copied set is a no-op that returns the existing entry. The capital
// allocation comes from the config's variant: a fixed amount, or a
// percentage of the current total portfolio value. The new entry starts
// mark-to-market neutral (current value equals allocated capital).
func (s *CopyStore) AddCopiedTrader(cfg model.CopyConfig, trader model.Trader) (model.CopiedTrader, bool) {
	s.mu.Lock()

	for _, existing := range s.copied {
		if existing.ID == trader.ID {
			s.mu.Unlock()
			return existing, false
		}
	}

	var capital float64
	switch a := cfg.Allocation.(type) {
	case model.FixedAllocation:
		capital = a.Amount
	case model.PercentAllocation:
		capital = s.metrics.TotalPortfolioValue * a.Percent / 100
	}

	chart := make([]model.SparklinePoint, sparklineLen)
	for i := range chart {
		chart[i] = model.SparklinePoint{Value: 100}
	}

	entry := model.CopiedTrader{
		Trader:           trader,
		CopyID:           s.newID(),
		CapitalAllocated: capital,
		CurrentValue:     capital,
		Trend:            model.TrendUp,
		ChartData:        chart,
		CopiedAt:         s.now(),
		IsActive:         !cfg.StopCopying,
		MaxDrawdown:      cfg.MaxDrawdown,
	}

	s.copied = append(s.copied, entry)
	s.recompute()
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(snap, subs)
	return entry, true
}

// RemoveCopiedTrader removes the matching entry. Removing an absent id is a
// no-op; removing the selected trader clears the selection.
func (s *CopyStore) RemoveCopiedTrader(traderID string) bool {
	s.mu.Lock()

	idx := -1
	for i, t := range s.copied {
		if t.ID == traderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	s.copied = append(s.copied[:idx], s.copied[idx+1:]...)
	if s.selectedID == traderID {
		s.selectedID = ""
	}
	s.recompute()
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(snap, subs)
	return true
}

// SetSelectedTrader updates the selection pointer. An empty id clears it.
// Selection does not affect metrics.
func (s *CopyStore) SetSelectedTrader(traderID string) {
	s.mu.Lock()
	s.selectedID = traderID
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(snap, subs)
}

// MarkToMarket is the only mutation of a copied trader's current value. It
// recomputes the entry's returns and trend, appends a sparkline sample, and
// applies the stop-copy rule: when the drawdown limit is set and returns
// fall to or below its negative, copying is deactivated.
func (s *CopyStore) MarkToMarket(traderID string, currentValue float64) error {
	if currentValue < 0 {
		currentValue = 0
	}

	s.mu.Lock()

	idx := -1
	for i, t := range s.copied {
		if t.ID == traderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return apperrors.ErrTraderNotCopied
	}

	entry := &s.copied[idx]
	entry.CurrentValue = currentValue
	entry.Returns, entry.ReturnsPercent = derive.Returns(entry.CapitalAllocated, currentValue)
	entry.Trend = derive.TrendFor(entry.ReturnsPercent)

	sample := model.SparklinePoint{Value: 100}
	if entry.CapitalAllocated > 0 {
		sample.Value = 100 * currentValue / entry.CapitalAllocated
	}
	entry.ChartData = append(entry.ChartData, sample)
	if len(entry.ChartData) > sparklineLen {
		entry.ChartData = entry.ChartData[len(entry.ChartData)-sparklineLen:]
	}

	if entry.MaxDrawdown > 0 && entry.ReturnsPercent <= -entry.MaxDrawdown {
		entry.IsActive = false
	}

	s.recompute()
	snap, subs := s.snapshotLocked()
	s.mu.Unlock()

	publish(snap, subs)
	return nil
}

// Subscribe registers fn to be invoked with a snapshot after every mutation.
// The returned function cancels the subscription.
func (s *CopyStore) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Snapshot returns a consistent copy of the full store state.
func (s *CopyStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, _ := s.snapshotLocked()
	return snap
}

// Metrics returns the current portfolio metrics.
func (s *CopyStore) Metrics() model.PortfolioMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// CopiedTraders returns a copy of the copied set.
func (s *CopyStore) CopiedTraders() []model.CopiedTrader {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CopiedTrader(nil), s.copied...)
}

// SelectedTraderID returns the current selection, "" for none.
func (s *CopyStore) SelectedTraderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedID
}

// IsCopied reports whether the trader id is in the copied set.
func (s *CopyStore) IsCopied(traderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.copied {
		if t.ID == traderID {
			return true
		}
	}
	return false
}

// recompute refreshes the derived metrics. Caller must hold the lock; every
// mutation recomputes inside its own critical section so readers can never
// observe metrics that lag the copied set.
func (s *CopyStore) recompute() {
	s.metrics = derive.CalculatePortfolioMetrics(s.copied)
}

// snapshotLocked builds a snapshot and copies the subscriber list.
// Caller must hold the lock.
func (s *CopyStore) snapshotLocked() (Snapshot, []Subscriber) {
	snap := Snapshot{
		CopiedTraders:    append([]model.CopiedTrader(nil), s.copied...),
		SelectedTraderID: s.selectedID,
		Metrics:          s.metrics,
	}
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return snap, subs
}

// publish invokes subscribers outside the critical section so a subscriber
// may read the store without deadlocking. Snapshots are value copies, so a
// late invocation can never expose interleaved state.
func publish(snap Snapshot, subs []Subscriber) {
	for _, fn := range subs {
		fn(snap)
	}
}
