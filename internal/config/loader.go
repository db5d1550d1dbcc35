package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if PROXIMITY_CONFIG is set
//  3. env (prefix PROXIMITY_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("PROXIMITY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROXIMITY_ADDR, PROXIMITY_DATASET_PATH, ...
	// Keys keep their underscores to match koanf tags on the struct.
	envProvider := env.Provider("PROXIMITY_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "proximity_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DatasetPath == "":
		return nil, fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	case cfg.DefaultResultCount <= 0:
		return nil, fmt.Errorf("%w: default_result_count must be positive", ErrInvalidConfig)
	case cfg.MaxResultCount < cfg.DefaultResultCount:
		return nil, fmt.Errorf("%w: max_result_count must be >= default_result_count", ErrInvalidConfig)
	case cfg.RefineConcurrency <= 0:
		return nil, fmt.Errorf("%w: refine_concurrency must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
