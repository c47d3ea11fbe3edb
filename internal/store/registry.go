package store

import (
	"context"
	"time"

	"github.com/scanmark/rostersync/models"
)

// KeyPrefix namespaces every ticket key so a registry sharing its backing
// store with other features never collides with their keys.
const KeyPrefix = "sync:"

// Key returns the namespaced registry key for a redemption code.
func Key(code string) string {
	return KeyPrefix + code
}

// Registry is the code registry: a key-value store of sync tickets with
// per-key expiry. It is the only shared mutable state in the relay, and all
// mutation is single-key, so key-level atomicity is the only concurrency
// primitive callers may rely on.
//
// Expiry is enforced by the store itself. A ticket past its deadline is
// indistinguishable from one that never existed.
type Registry interface {
	// Put stores a ticket under code only if no live ticket already holds
	// that code. It reports true when the ticket was stored and false when
	// a live ticket was in the way. An expired ticket does not block the
	// slot.
	Put(ctx context.Context, code string, snapshot models.Snapshot, ttl time.Duration) (bool, error)

	// PutForce stores a ticket unconditionally, displacing any live ticket
	// under the same code. Used only when the collision-probe budget is
	// exhausted.
	PutForce(ctx context.Context, code string, snapshot models.Snapshot, ttl time.Duration) error

	// Get returns the ticket's snapshot without consuming it, or
	// [ErrTicketNotFound] when the code is absent or expired.
	Get(ctx context.Context, code string) (models.Snapshot, error)

	// TakeOnce atomically returns the snapshot and deletes the ticket in
	// one indivisible step. Under concurrent redemption of the same code
	// exactly one caller observes the snapshot; every other caller, and
	// every later caller, gets [ErrTicketNotFound].
	TakeOnce(ctx context.Context, code string) (models.Snapshot, error)
}
