// Package livequery maintains standing, push-updated views over the
// document store. Each subscription delivers complete replacement
// snapshots: the initial result set on open, then a fresh full result
// set after every change to the matching documents. Consumers never
// merge incrementally; the newest snapshot is always authoritative.
package livequery

import (
	"context"
	"errors"
	"sync"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/store"
)

var (
	ErrEmptyIdentity = errors.New("subscription requires a user identity")
	ErrHubClosed     = errors.New("live query hub is closed")
)

// Subscription is one standing view for one user. Snapshots arrive on
// Snapshots(); the channel is closed when the subscription ends. After
// the channel closes, Err() reports the terminal error, if any.
//
// Errors are terminal: a failed re-query is reported once and the
// subscription never self-heals. The consumer re-subscribes instead.
// Delivery is latest-wins: if a consumer lags, the undelivered snapshot
// is replaced by the newer one rather than queued behind it.
type Subscription[T any] struct {
	userID string
	snaps  chan []T

	mu      sync.Mutex
	err     error
	done    bool
	onClose func()
}

func newSubscription[T any](userID string) *Subscription[T] {
	return &Subscription[T]{
		userID: userID,
		snaps:  make(chan []T, 1),
	}
}

// Snapshots returns the snapshot channel. Every receive replaces all
// prior state for this view.
func (s *Subscription[T]) Snapshots() <-chan []T {
	return s.snaps
}

// Err returns the terminal error, or nil if the subscription was closed
// deliberately. Only meaningful after Snapshots() is closed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.terminate(nil)
}

// push delivers a snapshot, dropping the stale undelivered one if the
// consumer has not caught up. Callers serialize through the hub's
// query lock, so the dropped snapshot is always the older one.
func (s *Subscription[T]) push(snap []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	select {
	case s.snaps <- snap:
	default:
		select {
		case <-s.snaps:
		default:
		}
		s.snaps <- snap
	}
}

func (s *Subscription[T]) terminate(err error) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	s.done = true
	s.err = err
	close(s.snaps)
	onClose := s.onClose
	s.mu.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Hub owns all live subscriptions of this process. Local writes reach it
// directly through its ChangeSink side; writes from other processes
// arrive through the AMQP consumer. Either way the reaction is the same:
// re-query the store and push full snapshots to the affected user's
// subscriptions.
type Hub struct {
	transactions store.TransactionStore
	categories   store.CategoryStore
	logger       *log.Logger

	// queryMu serializes every "query the store, then push" sequence,
	// both the initial one in Subscribe* and the re-query in Notify.
	// Held across the pair, it guarantees a change arriving while a
	// subscription opens is either visible in the initial snapshot or
	// re-delivered after registration, and that an initial snapshot
	// never replaces a newer one.
	queryMu sync.Mutex

	mu      sync.Mutex
	txSubs  map[string]map[*Subscription[core.Transaction]]struct{}
	catSubs map[string]map[*Subscription[core.Category]]struct{}
	closed  bool
}

func NewHub(transactions store.TransactionStore, categories store.CategoryStore, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentLiveQuery)
	}
	return &Hub{
		transactions: transactions,
		categories:   categories,
		logger:       logger,
		txSubs:       make(map[string]map[*Subscription[core.Transaction]]struct{}),
		catSubs:      make(map[string]map[*Subscription[core.Category]]struct{}),
	}
}

// SubscribeTransactions opens a standing view of "all transactions where
// userID = identity, ordered by date descending". The initial snapshot
// is delivered before SubscribeTransactions returns; an initial query
// failure fails the open instead of producing a dead subscription.
func (h *Hub) SubscribeTransactions(ctx context.Context, userID string) (*Subscription[core.Transaction], error) {
	if userID == "" {
		return nil, ErrEmptyIdentity
	}

	h.queryMu.Lock()
	defer h.queryMu.Unlock()

	snap, err := h.transactions.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	sub := newSubscription[core.Transaction](userID)
	sub.onClose = func() { h.dropTransactionSub(userID, sub) }
	if h.txSubs[userID] == nil {
		h.txSubs[userID] = make(map[*Subscription[core.Transaction]]struct{})
	}
	h.txSubs[userID][sub] = struct{}{}
	h.mu.Unlock()

	sub.push(snap)
	h.logger.DebugContext(ctx, "Opened transaction subscription",
		log.FieldUserID, userID, log.FieldSnapshotSize, len(snap))
	return sub, nil
}

// SubscribeCategories opens a standing view of the user's categories.
func (h *Hub) SubscribeCategories(ctx context.Context, userID string) (*Subscription[core.Category], error) {
	if userID == "" {
		return nil, ErrEmptyIdentity
	}

	h.queryMu.Lock()
	defer h.queryMu.Unlock()

	snap, err := h.categories.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil, ErrHubClosed
	}
	sub := newSubscription[core.Category](userID)
	sub.onClose = func() { h.dropCategorySub(userID, sub) }
	if h.catSubs[userID] == nil {
		h.catSubs[userID] = make(map[*Subscription[core.Category]]struct{})
	}
	h.catSubs[userID][sub] = struct{}{}
	h.mu.Unlock()

	sub.push(snap)
	h.logger.DebugContext(ctx, "Opened category subscription",
		log.FieldUserID, userID, log.FieldSnapshotSize, len(snap))
	return sub, nil
}

// Notify reacts to a change event by re-querying the affected collection
// and pushing full snapshots to that user's subscriptions. A re-query
// failure terminates those subscriptions with the error.
func (h *Hub) Notify(ctx context.Context, ch store.Change) {
	h.queryMu.Lock()
	defer h.queryMu.Unlock()

	switch ch.Collection {
	case store.CollectionTransactions:
		subs := h.transactionSubs(ch.UserID)
		if len(subs) == 0 {
			return
		}
		snap, err := h.transactions.ListTransactions(ctx, ch.UserID)
		if err != nil {
			h.logger.ErrorContext(ctx, "Transaction re-query failed, terminating subscriptions",
				log.FieldUserID, ch.UserID,
				log.FieldSubscribers, len(subs),
				log.FieldError, err.Error())
			for _, sub := range subs {
				sub.terminate(err)
			}
			return
		}
		for _, sub := range subs {
			sub.push(snap)
		}
	case store.CollectionCategories:
		subs := h.categorySubs(ch.UserID)
		if len(subs) == 0 {
			return
		}
		snap, err := h.categories.ListCategories(ctx, ch.UserID)
		if err != nil {
			h.logger.ErrorContext(ctx, "Category re-query failed, terminating subscriptions",
				log.FieldUserID, ch.UserID,
				log.FieldSubscribers, len(subs),
				log.FieldError, err.Error())
			for _, sub := range subs {
				sub.terminate(err)
			}
			return
		}
		for _, sub := range subs {
			sub.push(snap)
		}
	}
}

// Publish implements store.ChangeSink for local writes.
func (h *Hub) Publish(ctx context.Context, ch store.Change) error {
	h.Notify(ctx, ch)
	return nil
}

// Close terminates every subscription. New subscriptions are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	var txSubs []*Subscription[core.Transaction]
	for _, set := range h.txSubs {
		for sub := range set {
			txSubs = append(txSubs, sub)
		}
	}
	var catSubs []*Subscription[core.Category]
	for _, set := range h.catSubs {
		for sub := range set {
			catSubs = append(catSubs, sub)
		}
	}
	h.mu.Unlock()

	for _, sub := range txSubs {
		sub.terminate(nil)
	}
	for _, sub := range catSubs {
		sub.terminate(nil)
	}
}

func (h *Hub) transactionSubs(userID string) []*Subscription[core.Transaction] {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.txSubs[userID]
	out := make([]*Subscription[core.Transaction], 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	return out
}

func (h *Hub) categorySubs(userID string) []*Subscription[core.Category] {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.catSubs[userID]
	out := make([]*Subscription[core.Category], 0, len(set))
	for sub := range set {
		out = append(out, sub)
	}
	return out
}

func (h *Hub) dropTransactionSub(userID string, sub *Subscription[core.Transaction]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.txSubs[userID]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.txSubs, userID)
		}
	}
}

func (h *Hub) dropCategorySub(userID string, sub *Subscription[core.Category]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.catSubs[userID]; set != nil {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.catSubs, userID)
		}
	}
}
