// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrTicketNotFound covers every registry miss: a code that never
	// existed, one already redeemed, and one past its deadline. The store
	// cannot tell these apart and neither can callers.
	ErrTicketNotFound = errors.New("ticket not found")

	ErrEncodingSnapshot = errors.New("error encoding snapshot")
	ErrDecodingSnapshot = errors.New("error decoding snapshot")
	ErrExecutingQuery   = errors.New("error executing query")
	ErrScanningRow      = errors.New("error scanning row")
)
