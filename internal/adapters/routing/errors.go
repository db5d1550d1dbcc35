package routing

import "errors"

// Sentinel kinds for routing errors. The engine absorbs all of them; they
// exist so logs can tell an auth failure from a missing route.
var (
	ErrProvider = errors.New("routing provider failed")
	ErrNoRoute  = errors.New("no route found")
)
