package services

import "errors"

// Resolution failures the HTTP layer maps onto status codes.
// Catalog errors are 500s, the rest are 404s; cache failures are
// never surfaced here, they degrade to misses.
var (
	ErrUpstreamUnavailable = errors.New("token catalog upstream unavailable")
	ErrUpstreamEmpty       = errors.New("token catalog upstream returned no tokens")
	ErrTokenNotFound       = errors.New("token image not found")
	ErrDetailFetchFailed   = errors.New("token detail fetch failed")
	ErrImageFetchFailed    = errors.New("token image fetch failed")
)
