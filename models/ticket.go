package models

import "time"

// SyncTicket is the server-side pairing of a one-time code with the
// snapshot it unlocks. A ticket is immutable once created and is owned by
// the code registry for its whole lifetime: it disappears on the first
// successful redeem or when its deadline passes, whichever comes first.
type SyncTicket struct {
	Code      string
	Snapshot  Snapshot
	ExpiresAt time.Time
}

// Expired reports whether the ticket's deadline has passed at the given
// instant.
func (t SyncTicket) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
