package workers

import (
	"context"
	"time"
)

// SweepJob drops expired tickets from the registry on a ticker. The memory
// backend only reclaims a slot when the code is touched again, so without the
// sweep an abandoned ticket's snapshot would sit in memory until process
// exit.
type SweepJob interface {
	// Start launches the background sweep loop. It stops any previously
	// running loop first. The loop exits when ctx is cancelled or Stop is
	// called.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the sweep loop and blocks until it has fully exited.
	// Safe to call when the job is not running.
	Stop()
}

// Sweepable is the slice of the registry the sweeper needs.
type Sweepable interface {
	// CleanupExpired drops every expired ticket and reports how many were
	// removed.
	CleanupExpired() int
}
