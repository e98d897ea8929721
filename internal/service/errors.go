package service

import "errors"

// Error taxonomy shared by the services. Handlers map these to HTTP status
// codes with errors.Is; services wrap them with field-level detail via
// fmt.Errorf("%w: ...").
var (
	// ErrValidation covers bad input: missing or malformed required fields,
	// invalid document type or size, missing required documents. Always
	// rejected at the boundary before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound covers unknown ids and acknowledgement numbers.
	ErrNotFound = errors.New("not found")

	// ErrAuth covers bad credentials and missing/expired tokens. The message
	// never reveals whether the username exists.
	ErrAuth = errors.New("authentication failed")

	// ErrStorage covers upstream object storage failures.
	ErrStorage = errors.New("storage backend failure")

	// ErrPersistence covers record store failures.
	ErrPersistence = errors.New("record store failure")
)
