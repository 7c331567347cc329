package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"tattletale/internal/constants"
)

const defaultBaseURL = "https://api.smitegame.com/smiteapi.svc"

type Config struct {
	DevID   string
	AuthKey string
	BaseURL string

	// PaceInterval is the minimum spacing between API calls. Zero disables pacing.
	PaceInterval time.Duration

	// TLSVerify controls certificate verification of the API endpoint.
	// Earlier revisions of this tool disabled it; verification stays on
	// unless explicitly switched off.
	TLSVerify bool

	DBPath string

	// SkippedNames are lobby names that are never queried.
	SkippedNames []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DevID:        getEnv("SMITE_DEV_ID", ""),
		AuthKey:      getEnv("SMITE_AUTH_KEY", ""),
		BaseURL:      getEnv("SMITE_API_URL", defaultBaseURL),
		PaceInterval: constants.DefaultPaceInterval,
		TLSVerify:    true,
		DBPath:       getEnv("TT_DB_PATH", "tattletale.db"),
	}

	if cfg.DevID == "" || cfg.AuthKey == "" {
		return nil, fmt.Errorf("SMITE_DEV_ID and SMITE_AUTH_KEY are required")
	}

	if v := os.Getenv("SMITE_PACE_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("invalid SMITE_PACE_MS %q", v)
		}
		cfg.PaceInterval = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("SMITE_TLS_VERIFY"); v != "" {
		verify, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SMITE_TLS_VERIFY %q", v)
		}
		cfg.TLSVerify = verify
	}

	if v := os.Getenv("TT_SKIPPED_NAMES"); v != "" {
		for _, name := range strings.Split(v, ";") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.SkippedNames = append(cfg.SkippedNames, name)
			}
		}
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("db_path", cfg.DBPath).
		Dur("pace_interval", cfg.PaceInterval).
		Bool("tls_verify", cfg.TLSVerify).
		Int("skipped_names", len(cfg.SkippedNames)).
		Msg("configuration loaded")

	return cfg, nil
}

// IsSkipped reports whether name is on the configured skip list.
func (c *Config) IsSkipped(name string) bool {
	for _, skipped := range c.SkippedNames {
		if name == skipped {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
