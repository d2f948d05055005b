package cache

import (
	"context"
	"time"

	"budget/internal/core"
	"budget/internal/store"
)

// SummaryCache memoizes computed balance summaries per user. It
// implements store.ChangeSink so that any transaction write drops the
// affected user's entry; registered alongside the live query hub it
// stays coherent without explicit wiring in the write path.
type SummaryCache struct {
	lru *LRU[core.Summary]
}

func NewSummaryCache(maxUsers int, ttl time.Duration) *SummaryCache {
	return &SummaryCache{lru: NewLRU[core.Summary](maxUsers, ttl)}
}

func (s *SummaryCache) Get(userID string) (core.Summary, bool) {
	return s.lru.Get(userID)
}

func (s *SummaryCache) Put(userID string, summary core.Summary) {
	s.lru.Set(userID, summary)
}

// Publish invalidates the user's summary on transaction changes.
// Category changes do not affect balances and are ignored.
func (s *SummaryCache) Publish(_ context.Context, ch store.Change) error {
	if ch.Collection == store.CollectionTransactions {
		s.lru.Delete(ch.UserID)
	}
	return nil
}

func (s *SummaryCache) StartSweeper(ctx context.Context, interval time.Duration) {
	s.lru.StartSweeper(ctx, interval)
}
