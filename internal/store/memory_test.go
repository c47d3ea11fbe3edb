package store

import (
	"context"
	"testing"
	"time"

	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		Records: []models.RosterEntry{
			{StudentID: "0123456", Name: "Ada", Scanned: false},
		},
		Scope:      models.ScopeAll,
		ExportedAt: 1700000000000,
	}
}

// fakeClock is a manually advanced time source for expiry tests.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time { return c.current }

func (c *fakeClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestRegistry(t *testing.T) (*MemoryRegistry, *fakeClock) {
	t.Helper()
	clk := &fakeClock{current: time.Unix(1700000000, 0)}
	return NewMemoryRegistry(logger.Nop(), WithClock(clk.now)), clk
}

func TestMemoryRegistry_PutAndGet(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	stored, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	assert.True(t, stored)

	got, err := reg.Get(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)

	// Get does not consume the ticket
	got, err = reg.Get(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)
}

func TestMemoryRegistry_PutRefusesLiveCode(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	stored, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	require.True(t, stored)

	stored, err = reg.Put(ctx, "123456", models.Snapshot{Records: []models.RosterEntry{}}, 600*time.Second)
	require.NoError(t, err)
	assert.False(t, stored, "second Put under a live code must not overwrite")

	// original snapshot still intact
	got, err := reg.Get(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)
}

func TestMemoryRegistry_PutReclaimsExpiredSlot(t *testing.T) {
	reg, clk := newTestRegistry(t)
	ctx := context.Background()

	stored, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	require.True(t, stored)

	clk.advance(601 * time.Second)

	replacement := models.Snapshot{Records: []models.RosterEntry{{StudentID: "7654321", Name: "Grace"}}}
	stored, err = reg.Put(ctx, "123456", replacement, 600*time.Second)
	require.NoError(t, err)
	assert.True(t, stored, "an expired ticket must not block the slot")

	got, err := reg.Get(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestMemoryRegistry_PutForceOverwrites(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	stored, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)
	require.True(t, stored)

	replacement := models.Snapshot{Records: []models.RosterEntry{}}
	require.NoError(t, reg.PutForce(ctx, "123456", replacement, 600*time.Second))

	got, err := reg.Get(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestMemoryRegistry_TakeOnce(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)

	got, err := reg.TakeOnce(ctx, "123456")
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)

	// one-time semantics: every later call misses
	_, err = reg.TakeOnce(ctx, "123456")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = reg.Get(ctx, "123456")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestMemoryRegistry_TakeOnce_UnknownCode(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.TakeOnce(context.Background(), "999999")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestMemoryRegistry_TakeOnce_Expired(t *testing.T) {
	reg, clk := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)

	clk.advance(601 * time.Second)

	_, err = reg.TakeOnce(ctx, "123456")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestMemoryRegistry_TakeOnce_ExactlyOneWinner(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)

	const redeemers = 32
	wins := make(chan struct{}, redeemers)
	done := make(chan struct{})

	for i := 0; i < redeemers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			if _, err := reg.TakeOnce(ctx, "123456"); err == nil {
				wins <- struct{}{}
			}
		}()
	}

	for i := 0; i < redeemers; i++ {
		<-done
	}
	close(wins)

	winners := 0
	for range wins {
		winners++
	}
	assert.Equal(t, 1, winners, "exactly one concurrent redeemer must win")
}

func TestMemoryRegistry_GetDropsExpired(t *testing.T) {
	reg, clk := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Put(ctx, "123456", testSnapshot(), 600*time.Second)
	require.NoError(t, err)

	clk.advance(10 * time.Minute)

	_, err = reg.Get(ctx, "123456")
	assert.ErrorIs(t, err, ErrTicketNotFound)
	assert.Zero(t, reg.Count(), "lazy expiry should have dropped the ticket")
}

func TestMemoryRegistry_CleanupExpired(t *testing.T) {
	reg, clk := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Put(ctx, "111111", testSnapshot(), 60*time.Second)
	require.NoError(t, err)
	_, err = reg.Put(ctx, "222222", testSnapshot(), 600*time.Second)
	require.NoError(t, err)

	clk.advance(61 * time.Second)

	removed := reg.CleanupExpired()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, reg.Count())

	// the surviving ticket is still redeemable
	_, err = reg.TakeOnce(ctx, "222222")
	assert.NoError(t, err)
}

func TestMemoryRegistry_KeysAreNamespaced(t *testing.T) {
	assert.Equal(t, "sync:123456", Key("123456"))
}
