package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Login-flow errors. The OTP service returns these so handlers can
// distinguish outcomes without parsing message text.
var (
	// ErrUnknownIdentity means the email is not in the user directory.
	// Handlers surface it with the same generic message regardless of
	// cause so account existence cannot be probed.
	ErrUnknownIdentity = errors.New("unknown identity")

	// ErrNoChallenge means no outstanding code exists for the identity.
	ErrNoChallenge = errors.New("no active code")

	// ErrChallengeExpired means the stored code's TTL has elapsed.
	ErrChallengeExpired = errors.New("code expired")

	// ErrCodeMismatch means the submitted code did not match the stored one.
	ErrCodeMismatch = errors.New("code mismatch")

	// ErrDeliveryDegraded means the code was stored but could not be
	// delivered through the configured channel.
	ErrDeliveryDegraded = errors.New("delivery degraded")

	// ErrProviderUnavailable means an external provider (session signer,
	// insight runner) could not be reached or is not configured.
	ErrProviderUnavailable = errors.New("provider unavailable")
)
