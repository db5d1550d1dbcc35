package geocode

import "errors"

// Sentinel kinds for geocoding errors. Both mean the address could not be
// resolved to a coordinate; ErrProvider carries the upstream cause.
var (
	ErrNoMatch  = errors.New("no match for address")
	ErrProvider = errors.New("geocode provider failed")
)
