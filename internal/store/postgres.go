package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/scanmark/rostersync/internal/config"
	"github.com/scanmark/rostersync/internal/logger"
	"github.com/scanmark/rostersync/models"
)

// DB wraps the shared *sql.DB handle for the postgres registry backend.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectPostgres opens and pings a postgres connection using the DSN
// from cfg. The handle is constructed once at process startup and passed
// into the registry; nothing lazily connects on first use.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// postgresRegistry is the PostgreSQL-backed implementation of [Registry].
// Tickets live in the sync_tickets table; the database clock owns expiry,
// so every query filters or computes against now() server-side and no
// application clock is consulted.
type postgresRegistry struct {
	db     *DB
	logger *logger.Logger
}

// NewPostgresRegistry constructs a [Registry] backed by the provided
// database connection and logger.
func NewPostgresRegistry(db *DB, log *logger.Logger) Registry {
	log.Debug().Msg("creating postgres registry")
	return &postgresRegistry{
		db:     db,
		logger: log,
	}
}

// Put implements [Registry]. The insert claims the key only when it is free
// or occupied by an expired row, in one statement, so two concurrent
// creates drawing the same code cannot both win.
func (r *postgresRegistry) Put(ctx context.Context, code string, snapshot models.Snapshot, ttl time.Duration) (bool, error) {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Err(err).Str("func", "*postgresRegistry.Put").Msg("error encoding snapshot")
		return false, fmt.Errorf("%w: %w", ErrEncodingSnapshot, err)
	}

	res, err := r.db.ExecContext(ctx, putTicket, Key(code), payload, ttl.Seconds())
	if err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			// A concurrent create inserted the same key first; the caller
			// just draws another code.
			return false, nil
		default:
			log.Err(err).Str("func", "*postgresRegistry.Put").Str("pg_code", postgresError(err)).Msg("error storing ticket")
			return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected == 1, nil
}

// PutForce implements [Registry].
func (r *postgresRegistry) PutForce(ctx context.Context, code string, snapshot models.Snapshot, ttl time.Duration) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(snapshot)
	if err != nil {
		log.Err(err).Str("func", "*postgresRegistry.PutForce").Msg("error encoding snapshot")
		return fmt.Errorf("%w: %w", ErrEncodingSnapshot, err)
	}

	if _, err = r.db.ExecContext(ctx, putTicketForce, Key(code), payload, ttl.Seconds()); err != nil {
		log.Err(err).Str("func", "*postgresRegistry.PutForce").Str("pg_code", postgresError(err)).Msg("error storing ticket")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Get implements [Registry].
func (r *postgresRegistry) Get(ctx context.Context, code string) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	var payload []byte
	err := r.db.QueryRowContext(ctx, getTicket, Key(code)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, ErrTicketNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*postgresRegistry.Get").Msg("error reading ticket")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return decodeSnapshot(payload)
}

// TakeOnce implements [Registry]. DELETE ... RETURNING makes the read and
// the removal indivisible; a second caller finds no row and gets
// [ErrTicketNotFound].
func (r *postgresRegistry) TakeOnce(ctx context.Context, code string) (models.Snapshot, error) {
	log := logger.FromContext(ctx)

	var payload []byte
	err := r.db.QueryRowContext(ctx, takeTicket, Key(code)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Snapshot{}, ErrTicketNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*postgresRegistry.TakeOnce").Msg("error taking ticket")
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return decodeSnapshot(payload)
}

// CleanupExpired drops expired rows. The sweeper worker calls it on the
// memory backend; for postgres it is exposed for operational use but reads
// never depend on it.
func (r *postgresRegistry) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, sweepTickets)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res.RowsAffected()
}

func decodeSnapshot(payload []byte) (models.Snapshot, error) {
	var snapshot models.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return models.Snapshot{}, fmt.Errorf("%w: %w", ErrDecodingSnapshot, err)
	}

	return snapshot, nil
}
