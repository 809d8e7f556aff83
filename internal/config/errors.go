package config

import "errors"

// Validation errors returned by [ServerConfig.Validate].
var (
	// ErrMissingAppKeys indicates that no signing keys are configured or
	// that one of them is empty.
	ErrMissingAppKeys = errors.New("missing app keys")
	// ErrInvalidPort indicates a port outside 1..65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrInvalidPublicURL indicates a public URL that is not an absolute
	// http(s) URL.
	ErrInvalidPublicURL = errors.New("invalid public url")
)
