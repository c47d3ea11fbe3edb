package store

import (
	"context"
	"sync"
	"time"

	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/models"
)

// MemoryRegistry is the in-process [Registry] implementation: a
// mutex-guarded map of live tickets keyed by namespaced code.
//
// Expiry on read is authoritative: Get and TakeOnce treat a ticket past its
// deadline as absent and drop it. CleanupExpired exists only so abandoned
// tickets do not accumulate between reads; correctness never depends on the
// sweep running.
type MemoryRegistry struct {
	mu      sync.Mutex
	tickets map[string]models.SyncTicket

	now    func() time.Time
	logger *logger.Logger
}

// MemoryOption configures a [MemoryRegistry].
type MemoryOption func(*MemoryRegistry)

// WithClock replaces the registry's time source. Tests use it to cross the
// expiry deadline without real-time waits.
func WithClock(now func() time.Time) MemoryOption {
	return func(r *MemoryRegistry) {
		r.now = now
	}
}

// NewMemoryRegistry constructs an empty in-process registry.
func NewMemoryRegistry(log *logger.Logger, opts ...MemoryOption) *MemoryRegistry {
	log.Debug().Msg("creating memory registry")
	r := &MemoryRegistry{
		tickets: make(map[string]models.SyncTicket),
		now:     time.Now,
		logger:  log,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Put implements [Registry].
func (r *MemoryRegistry) Put(_ context.Context, code string, snapshot models.Snapshot, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key(code)
	if existing, ok := r.tickets[key]; ok && !existing.Expired(r.now()) {
		return false, nil
	}

	r.tickets[key] = models.SyncTicket{
		Code:      code,
		Snapshot:  snapshot,
		ExpiresAt: r.now().Add(ttl),
	}

	return true, nil
}

// PutForce implements [Registry].
func (r *MemoryRegistry) PutForce(_ context.Context, code string, snapshot models.Snapshot, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tickets[Key(code)] = models.SyncTicket{
		Code:      code,
		Snapshot:  snapshot,
		ExpiresAt: r.now().Add(ttl),
	}

	return nil
}

// Get implements [Registry].
func (r *MemoryRegistry) Get(_ context.Context, code string) (models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key(code)
	ticket, ok := r.tickets[key]
	if !ok {
		return models.Snapshot{}, ErrTicketNotFound
	}

	if ticket.Expired(r.now()) {
		delete(r.tickets, key)
		return models.Snapshot{}, ErrTicketNotFound
	}

	return ticket.Snapshot, nil
}

// TakeOnce implements [Registry]. The mutex makes the lookup and delete one
// indivisible step, so concurrent redeemers of the same code see exactly
// one winner.
func (r *MemoryRegistry) TakeOnce(_ context.Context, code string) (models.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Key(code)
	ticket, ok := r.tickets[key]
	if !ok {
		return models.Snapshot{}, ErrTicketNotFound
	}

	delete(r.tickets, key)

	if ticket.Expired(r.now()) {
		return models.Snapshot{}, ErrTicketNotFound
	}

	return ticket.Snapshot, nil
}

// CleanupExpired removes every ticket past its deadline and returns how
// many were dropped. Called periodically by the sweeper worker.
func (r *MemoryRegistry) CleanupExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for key, ticket := range r.tickets {
		if ticket.Expired(now) {
			delete(r.tickets, key)
			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug().Int("removed", removed).Msg("swept expired tickets")
	}

	return removed
}

// Count returns the number of tickets currently held, live or expired.
func (r *MemoryRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.tickets)
}
