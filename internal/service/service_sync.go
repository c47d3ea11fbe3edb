package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/internal/store"
	"github.com/scanmark/rostersync/models"
)

// maxCodeAttempts bounds the collision probe in CreateTicket. After this
// many occupied draws the last candidate is stored unconditionally: with a
// 900000-code space and 600-second tickets, reaching the bound at all means
// the draws collided six times in a row, and the overwrite it risks is
// accepted rather than failing the user's request.
const maxCodeAttempts = 6

// codePattern accepts exactly six digits: no shorter prefixes, no
// surrounding characters, no whitespace.
var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// syncService is the concrete implementation of [SyncService]. It owns no
// state of its own; every mutation goes through the registry, keyed by
// code, so concurrent requests only contend inside the store.
type syncService struct {
	registry store.Registry
	ttl      time.Duration

	// now and drawCode are injectable for tests.
	now      func() time.Time
	drawCode func() (string, error)

	logger *logger.Logger
}

// NewSyncService constructs a [SyncService] over the given registry. The
// ticket TTL comes from cfg; the config layer guarantees it is positive.
func NewSyncService(registry store.Registry, cfg config.Registry, log *logger.Logger) SyncService {
	log.Debug().Dur("ticket_ttl", cfg.TicketTTL).Msg("creating sync service")
	return &syncService{
		registry: registry,
		ttl:      cfg.TicketTTL,
		now:      time.Now,
		drawCode: drawSixDigitCode,
		logger:   log,
	}
}

// CreateTicket implements [SyncService].
func (s *syncService) CreateTicket(ctx context.Context, snapshot models.Snapshot) (models.CreateSyncResponse, error) {
	log := logger.FromContext(ctx)

	if !snapshot.HasRecords() {
		return models.CreateSyncResponse{}, ErrRecordsMissing
	}

	if snapshot.Scope == "" {
		snapshot.Scope = models.ScopeAll
	}
	if snapshot.ExportedAt == 0 {
		snapshot.ExportedAt = s.now().UnixMilli()
	}

	var code string
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate, err := s.drawCode()
		if err != nil {
			return models.CreateSyncResponse{}, fmt.Errorf("%w: %w", ErrGeneratingCode, err)
		}

		stored, err := s.registry.Put(ctx, candidate, snapshot, s.ttl)
		if err != nil {
			return models.CreateSyncResponse{}, err
		}
		if stored {
			return s.created(candidate), nil
		}

		log.Debug().Str("func", "*syncService.CreateTicket").Int("attempt", attempt+1).Msg("code collision, regenerating")
		code = candidate
	}

	// Probe budget exhausted: store the last candidate anyway, displacing
	// whatever live ticket holds it.
	log.Warn().Str("func", "*syncService.CreateTicket").Msg("collision probe exhausted, storing last candidate")
	if err := s.registry.PutForce(ctx, code, snapshot, s.ttl); err != nil {
		return models.CreateSyncResponse{}, err
	}

	return s.created(code), nil
}

// RedeemTicket implements [SyncService].
func (s *syncService) RedeemTicket(ctx context.Context, code string) (models.Snapshot, error) {
	if !codePattern.MatchString(code) {
		return models.Snapshot{}, ErrMalformedCode
	}

	return s.registry.TakeOnce(ctx, code)
}

func (s *syncService) created(code string) models.CreateSyncResponse {
	return models.CreateSyncResponse{
		Code:         code,
		ExpiresInSec: int(s.ttl.Seconds()),
	}
}

// drawSixDigitCode draws uniformly from [100000, 999999], so the code is
// always six digits with no leading zero to lose in transit.
func drawSixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
