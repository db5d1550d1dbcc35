package repository

import "errors"

// Sentinel kinds for facility store errors.
var (
	ErrEmptyRegion = errors.New("no facilities in region")
	ErrLoadDataset = errors.New("load facility dataset failed")
)
