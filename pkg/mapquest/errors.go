package mapquest

import "errors"

var (
	// ErrMissingAPIKey is returned when the client is built without a key
	ErrMissingAPIKey = errors.New("mapquest: API key is required")
)
