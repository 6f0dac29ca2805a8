// Package core defines the address types, protocol constants and sentinel
// errors shared by every layer of the stack.
package core

import "errors"

// Sentinel errors. Every public stack operation fails with exactly one of
// these; callers test with errors.Is.
var (
	// ErrInvalidParam reports a caller-side validation failure. It is always
	// checked before any state is touched and is not retryable until the
	// caller fixes the input.
	ErrInvalidParam = errors.New("rtnet: invalid parameter")

	// ErrNoBuffer reports buffer-pool or connection-slot exhaustion.
	ErrNoBuffer = errors.New("rtnet: no buffer available")

	// ErrNoRoute reports a failed routing-table lookup.
	ErrNoRoute = errors.New("rtnet: no route to destination")

	// ErrChecksum reports an upper-layer checksum mismatch on receive.
	ErrChecksum = errors.New("rtnet: checksum mismatch")

	// ErrTimeout reports an operation that found no answer in time, e.g. an
	// mDNS query with no cached record.
	ErrTimeout = errors.New("rtnet: timed out")

	// ErrConnection reports an operation against a stale or unknown
	// connection id.
	ErrConnection = errors.New("rtnet: no such connection")

	// ErrOverflow reports a full fixed-capacity table.
	ErrOverflow = errors.New("rtnet: table full")

	// ErrNotInitialized reports use of the stack before Initialize.
	ErrNotInitialized = errors.New("rtnet: stack not initialized")
)
