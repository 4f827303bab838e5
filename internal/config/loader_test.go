package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/headcount/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"HEADCOUNT_CONFIG",
	"HEADCOUNT_ADDR",
	"HEADCOUNT_RENDER_WORKERS",
	"HEADCOUNT_BASELINE_ALIASES",
	"HEADCOUNT_SOURCES__MATH",
	"HEADCOUNT_POVERTY_THRESHOLD",
	"HEADCOUNT_INCOME_BAND_UPPER",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "headcount.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		convey.Reset(clearConfigEnvVars)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.BaselineName, convey.ShouldEqual, "COLORADO")
				convey.So(cfg.Sources, convey.ShouldResemble, config.DefaultSources())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HEADCOUNT_ADDR", ":8080")
			_ = os.Setenv("HEADCOUNT_RENDER_WORKERS", "3")
			_ = os.Setenv("HEADCOUNT_BASELINE_ALIASES", "STATEWIDE, STATE TOTAL")
			_ = os.Setenv("HEADCOUNT_SOURCES__MATH", "math.csv")
			_ = os.Setenv("HEADCOUNT_POVERTY_THRESHOLD", "1.25")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.RenderWorkers, convey.ShouldEqual, 3)
				convey.So(cfg.BaselineAliases, convey.ShouldResemble, []string{"STATEWIDE", "STATE TOTAL"})
				convey.So(cfg.PovertyThreshold, convey.ShouldEqual, 1.25)
			})

			convey.Convey("Then nested source keys merge with the defaults", func() {
				convey.So(cfg.Sources[config.SourceMath], convey.ShouldEqual, "math.csv")
				convey.So(cfg.Sources[config.SourceReading], convey.ShouldEqual, config.DefaultSources()[config.SourceReading])
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
data_dir: /srv/headcount/data
render_workers: 4
graduation_band_lower: 0.7
sources:
  kindergarten: k.csv
`)
			_ = os.Setenv("HEADCOUNT_CONFIG", path)
			_ = os.Setenv("HEADCOUNT_RENDER_WORKERS", "8")

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env wins over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/headcount/data")
				convey.So(cfg.GraduationBandLower, convey.ShouldEqual, 0.7)
				convey.So(cfg.RenderWorkers, convey.ShouldEqual, 8)
				convey.So(cfg.Sources[config.SourceKindergarten], convey.ShouldEqual, "k.csv")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When env produces an invalid value", func() {
			_ = os.Setenv("HEADCOUNT_INCOME_BAND_UPPER", "0.1")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
