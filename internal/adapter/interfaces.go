package adapter

import (
	"context"

	"github.com/scanmark/rostersync/models"
)

// ServerAdapter is the client-side view of the sync service. It hides the
// HTTP surface behind the two domain operations and maps transport-level
// failures to the package's sentinel errors.
type ServerAdapter interface {
	// PushSnapshot uploads a roster snapshot and returns the assigned
	// 6-digit code together with its expiry window.
	PushSnapshot(ctx context.Context, snapshot models.Snapshot) (models.CreateSyncResponse, error)

	// PullSnapshot redeems a code for its snapshot. The ticket is consumed
	// on the server: a second pull of the same code returns
	// [ErrCodeNotFound].
	PullSnapshot(ctx context.Context, code string) (models.Snapshot, error)
}
