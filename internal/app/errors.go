package service

import "errors"

// Typed failures of the resolve pipeline. Geocode misses and empty regions
// are recoverable by the user; an invalid query is a caller bug.
var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNoCandidates     = errors.New("no facilities in region")
	ErrInvalidQuery     = errors.New("invalid query")
	ErrNotStarted       = errors.New("service not started")
)
