package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/naijacare/proximity/internal/config"
)

func clearConfigEnvVars() {
	for _, key := range []string{
		"PROXIMITY_CONFIG",
		"PROXIMITY_ADDR",
		"PROXIMITY_LOG_LEVEL",
		"PROXIMITY_DATASET_PATH",
		"PROXIMITY_COUNTRY",
		"PROXIMITY_DEFAULT_RESULT_COUNT",
		"PROXIMITY_MAX_RESULT_COUNT",
		"PROXIMITY_REFINE_CONCURRENCY",
		"PROXIMITY_ROUTING_API_KEY",
	} {
		_ = os.Unsetenv(key)
	}
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "nigeria_health_facilities.csv")
				convey.So(cfg.Country, convey.ShouldEqual, "Nigeria")
				convey.So(cfg.DefaultResultCount, convey.ShouldEqual, 5)
				convey.So(cfg.MaxResultCount, convey.ShouldEqual, 20)
				convey.So(cfg.RefineConcurrency, convey.ShouldEqual, 5)
				convey.So(cfg.SanityDistanceKm, convey.ShouldEqual, 250)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PROXIMITY_ADDR", ":8080")
			_ = os.Setenv("PROXIMITY_DATASET_PATH", "/data/facilities.csv")
			_ = os.Setenv("PROXIMITY_DEFAULT_RESULT_COUNT", "3")
			_ = os.Setenv("PROXIMITY_REFINE_CONCURRENCY", "2")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/facilities.csv")
				convey.So(cfg.DefaultResultCount, convey.ShouldEqual, 3)
				convey.So(cfg.RefineConcurrency, convey.ShouldEqual, 2)
				convey.So(cfg.Country, convey.ShouldEqual, "Nigeria")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
dataset_path: "facilities-test.csv"
default_result_count: 4
max_result_count: 10
refine_concurrency: 3
sanity_distance_km: 100
`
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)

			_ = os.Setenv("PROXIMITY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "facilities-test.csv")
				convey.So(cfg.DefaultResultCount, convey.ShouldEqual, 4)
				convey.So(cfg.MaxResultCount, convey.ShouldEqual, 10)
				convey.So(cfg.RefineConcurrency, convey.ShouldEqual, 3)
				convey.So(cfg.SanityDistanceKm, convey.ShouldEqual, 100)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			yamlContent := "addr: \":9090\"\n"
			tmpFile := filepath.Join(t.TempDir(), "config.yaml")
			convey.So(os.WriteFile(tmpFile, []byte(yamlContent), 0o600), convey.ShouldBeNil)

			_ = os.Setenv("PROXIMITY_CONFIG", tmpFile)
			_ = os.Setenv("PROXIMITY_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the env var wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("PROXIMITY_DEFAULT_RESULT_COUNT", "0")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it fails with ErrInvalidConfig", func() {
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
