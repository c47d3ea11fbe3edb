package models

import "encoding/json"

// ScopeAll is the reserved scope value meaning "every roster the device
// holds", as opposed to a single named roster subset.
const ScopeAll = "all"

// Snapshot is the transport unit exchanged between two devices during a
// code sync. The relay moves it as a whole: records are never inspected,
// merged, or reordered on the server side.
type Snapshot struct {
	// Records is the full exported roster. It must be present in the
	// request body as a JSON array; an empty array is a valid export,
	// a missing or non-array value is not.
	Records []RosterEntry `json:"records"`

	// Scope identifies which subset of local data was exported.
	// Defaults to [ScopeAll] when the producer omits it.
	Scope string `json:"scope,omitempty"`

	// ExportedAt is the producer's export timestamp in Unix milliseconds.
	// Defaults to the relay's clock when the producer omits it.
	ExportedAt int64 `json:"exportedAt,omitempty"`
}

// RosterEntry is one tracked person or item. Field values are owned by the
// scanning clients; the relay treats the entry as opaque payload.
type RosterEntry struct {
	// Mode tags which roster the entry belongs to (check-in vs. distribution).
	Mode string `json:"mode,omitempty"`

	// StudentID is the external identifier matched against scanned barcodes.
	StudentID string `json:"studentId"`

	// Name is the display name shown on a successful match.
	Name string `json:"name"`

	// Type is a free-form category used by the distribution flow.
	Type string `json:"type,omitempty"`

	// Scanned marks check-in completion.
	Scanned bool `json:"scanned"`

	// Received marks distribution completion.
	Received bool `json:"received,omitempty"`

	// LastAction is the client-formatted timestamp of the last state change.
	// Kept as a string to avoid overflow and locale round-trip issues.
	LastAction string `json:"lastAction,omitempty"`
}

// UnmarshalSnapshotBody decodes a request body that carries a Snapshot
// either directly as a JSON object or double-encoded as a JSON string
// containing the object. Some client runtimes serialize the body twice;
// both deliveries must validate identically.
func UnmarshalSnapshotBody(body []byte) (Snapshot, error) {
	var snapshot Snapshot

	var inner string
	if err := json.Unmarshal(body, &inner); err == nil {
		body = []byte(inner)
	}

	if err := json.Unmarshal(body, &snapshot); err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// HasRecords reports whether the records field was present as an array in
// the decoded payload. A nil slice means the field was missing or not a
// sequence, which is a validation failure, not an empty sync.
func (s Snapshot) HasRecords() bool {
	return s.Records != nil
}
