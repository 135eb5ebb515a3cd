package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes with errors.Is; anything else is treated as internal.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrInvalidSelection = errors.New("invalid category or region")
	ErrNotFound         = errors.New("not found")
	ErrEmailMismatch    = errors.New("email does not match registration")
	ErrUnsupportedMedia = errors.New("unsupported file type")
	ErrPayloadTooLarge  = errors.New("file too large")
)
