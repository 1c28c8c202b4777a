package shortener

import "errors"

// Error kinds surfaced by the lifecycle engine. Handlers map these to rendered
// pages; anything else is an internal store failure.
var (
	ErrInvalidURL          = errors.New("invalid url")
	ErrInvalidUseCount     = errors.New("invalid use count")
	ErrInvalidExpiration   = errors.New("invalid expiration input")
	ErrPastExpiration      = errors.New("expiration is in the past")
	ErrAliasConflict       = errors.New("alias already taken")
	ErrNotFound            = errors.New("short url not found")
	ErrExpired             = errors.New("short url expired")
	ErrGenerationExhausted = errors.New("could not generate a unique code")
)
