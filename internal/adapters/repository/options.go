package repository

import "github.com/naijacare/proximity/pkg/logger"

// Option applies a configuration option to the FacilityStore.
type Option func(*FacilityStore)

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *FacilityStore) {
		if l != nil {
			s.logger = l
		}
	}
}
