package model

import "errors"

// Access token verification failures, surfaced by the TokenCodec.
var (
	ErrTokenExpired        = errors.New("access token expired")
	ErrTokenMalformed      = errors.New("access token malformed")
	ErrBadSignature        = errors.New("access token signature invalid")
	ErrBadIssuerOrAudience = errors.New("access token issuer or audience mismatch")
)
