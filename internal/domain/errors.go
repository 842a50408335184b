package domain

import "errors"

// Sentinel errors for the request path - use with errors.Is().
// Handlers map these to HTTP status codes; everything unrecognized
// is rendered as a 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Token verification failures. The authorizer converts every one of
// these to a deny decision; none of them escapes the auth boundary as
// a hard error.
var (
	// ErrMalformedToken indicates the bearer token is missing or is not
	// a structurally valid three-part JWT.
	ErrMalformedToken = errors.New("malformed token")

	// ErrUnknownSigningKey indicates the key set has no key matching the
	// token's kid header.
	ErrUnknownSigningKey = errors.New("unknown signing key")

	// ErrKeySetUnavailable indicates the key set endpoint could not be
	// reached or returned a non-success response.
	ErrKeySetUnavailable = errors.New("key set unavailable")

	// ErrKeySetEmpty indicates the key set document contained no keys.
	ErrKeySetEmpty = errors.New("key set empty")

	// ErrInvalidSignature indicates signature or claim verification
	// failed (bad signature, expired, wrong issuer, missing subject).
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnauthorized is the generic authentication failure surfaced to
	// HTTP callers of the local server.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrStorageUnavailable wraps any failure of the underlying table or
// object store.
var ErrStorageUnavailable = errors.New("storage unavailable")
