package analysis

import "errors"

// Sentinel errors for input validation. Decode failures are reported
// via transcode.DecodeError; everything here maps to a client error at
// the transport layer.
var (
	// ErrEmptyPayload means no audio bytes were supplied
	ErrEmptyPayload = errors.New("audio payload is empty")

	// ErrPayloadTooLarge means the encoded payload exceeds the caller's cap
	ErrPayloadTooLarge = errors.New("audio payload too large")

	// ErrTooShort means the decoded clip is below the minimum usable duration
	ErrTooShort = errors.New("audio too short")
)
