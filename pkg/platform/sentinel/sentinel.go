package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches and remote clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: key does not exist or has expired
// - ErrUnavailable: dependency temporarily unavailable (breaker open, outage)
// - ErrInvalidState: a dependency answered with data that cannot be used
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("unavailable")
	ErrInvalidState = errors.New("invalid state")
)
