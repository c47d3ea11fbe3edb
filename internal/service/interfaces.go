package service

import (
	"context"

	"github.com/scanmark/rostersync/models"
)

// SyncService is the code sync core: it turns a snapshot into a one-time
// redemption code and a code back into its snapshot.
type SyncService interface {
	// CreateTicket validates and normalizes the snapshot, assigns a
	// collision-checked 6-digit code, and stores the ticket with the
	// configured TTL. Returns [ErrRecordsMissing] without touching the
	// registry when the snapshot has no records array.
	CreateTicket(ctx context.Context, snapshot models.Snapshot) (models.CreateSyncResponse, error)

	// RedeemTicket consumes the ticket under code, exactly once. Returns
	// [ErrMalformedCode] without a registry lookup unless code is exactly
	// six digits, and [store.ErrTicketNotFound] when the code is unknown,
	// already redeemed, or expired.
	RedeemTicket(ctx context.Context, code string) (models.Snapshot, error)
}
