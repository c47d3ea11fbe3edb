package store

const (
	// putTicket claims the key only when it is free or held by an expired
	// ticket. Zero rows affected means a live ticket already owns the code.
	putTicket = `INSERT INTO sync_tickets (code, snapshot, expires_at)
    VALUES ($1, $2, now() + make_interval(secs => $3))
    ON CONFLICT (code) DO UPDATE
        SET snapshot = EXCLUDED.snapshot, expires_at = EXCLUDED.expires_at
        WHERE sync_tickets.expires_at <= now();`

	// putTicketForce claims the key unconditionally.
	putTicketForce = `INSERT INTO sync_tickets (code, snapshot, expires_at)
    VALUES ($1, $2, now() + make_interval(secs => $3))
    ON CONFLICT (code) DO UPDATE
        SET snapshot = EXCLUDED.snapshot, expires_at = EXCLUDED.expires_at;`

	getTicket = `SELECT snapshot FROM sync_tickets
    WHERE code = $1 AND expires_at > now();`

	// takeTicket is the one-time redemption: a single DELETE ... RETURNING
	// so the read and the removal are one statement. Row-level locking in
	// postgres guarantees at most one concurrent caller gets the row back.
	takeTicket = `DELETE FROM sync_tickets
    WHERE code = $1 AND expires_at > now()
    RETURNING snapshot;`

	// sweepTickets drops rows whose deadline has passed. Housekeeping only:
	// every read already filters on expires_at.
	sweepTickets = `DELETE FROM sync_tickets WHERE expires_at <= now();`
)
