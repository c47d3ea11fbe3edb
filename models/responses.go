package models

// CreateSyncResponse is the create endpoint's success body. The code is
// returned as a string so leading digits survive any client-side handling,
// and the expiry window is stated in whole seconds — seconds are the only
// TTL unit used anywhere in this service.
type CreateSyncResponse struct {
	// Code is the assigned 6-digit redemption code.
	Code string `json:"code"`

	// ExpiresInSec is the ticket's time-to-live in seconds.
	ExpiresInSec int `json:"expiresInSec"`
}

// ErrorResponse is the uniform error body for all non-2xx responses.
type ErrorResponse struct {
	// Error is the short operator-facing description of what went wrong.
	Error string `json:"error"`

	// Detail optionally carries the underlying failure message for
	// diagnosis of 5xx responses. Never populated for client errors.
	Detail string `json:"detail,omitempty"`
}
