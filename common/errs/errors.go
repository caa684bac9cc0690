// Package errs defines the error taxonomy shared by the click-stats pipeline.
//
// Only ErrUnresolvedLink is terminal for an event; every other processing
// error must surface to the broker so the message is redelivered.
package errs

import "errors"

var (
	// ErrDeliveryFailure marks a producer-side send failure. Callers on the
	// redirect path treat it as non-fatal: the click is lost, the redirect
	// is not.
	ErrDeliveryFailure = errors.New("stats message delivery failure")

	// ErrDuplicateInFlight is returned when a message is redelivered while an
	// earlier delivery of the same correlation key is still being processed.
	// Retryable: the broker should back off and redeliver.
	ErrDuplicateInFlight = errors.New("duplicate message in flight, retry later")

	// ErrUnresolvedLink means the full short URL has no owning group mapping.
	// Fatal per event: logged and dropped, never retried.
	ErrUnresolvedLink = errors.New("short link has no group mapping")

	// ErrLockTimeout is returned when the gid-update coordination lock could
	// not be acquired within the configured deadline. Retryable.
	ErrLockTimeout = errors.New("coordination lock acquire timeout")
)
