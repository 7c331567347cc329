package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tattletale/internal/constants"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("SMITE_DEV_ID", "1004")
	t.Setenv("SMITE_AUTH_KEY", "23DF3C7E9BD14D84BF892AD206B6755C")
}

func TestLoad_RequiresCredentials(t *testing.T) {
	t.Setenv("SMITE_DEV_ID", "")
	t.Setenv("SMITE_AUTH_KEY", "")

	_, err := Load(zerolog.Nop())
	assert.ErrorContains(t, err, "SMITE_DEV_ID and SMITE_AUTH_KEY are required")
}

func TestLoad_Defaults(t *testing.T) {
	setCredentials(t)

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "1004", cfg.DevID)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Equal(t, constants.DefaultPaceInterval, cfg.PaceInterval)
	assert.True(t, cfg.TLSVerify)
	assert.Equal(t, "tattletale.db", cfg.DBPath)
	assert.Empty(t, cfg.SkippedNames)
}

func TestLoad_Overrides(t *testing.T) {
	setCredentials(t)
	t.Setenv("SMITE_API_URL", "https://example.test/smiteapi.svc")
	t.Setenv("SMITE_PACE_MS", "250")
	t.Setenv("SMITE_TLS_VERIFY", "false")
	t.Setenv("TT_DB_PATH", "/tmp/history.db")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://example.test/smiteapi.svc", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.PaceInterval)
	assert.False(t, cfg.TLSVerify)
	assert.Equal(t, "/tmp/history.db", cfg.DBPath)
}

func TestLoad_InvalidPace(t *testing.T) {
	setCredentials(t)

	for _, v := range []string{"abc", "-5"} {
		t.Setenv("SMITE_PACE_MS", v)
		_, err := Load(zerolog.Nop())
		assert.ErrorContains(t, err, "invalid SMITE_PACE_MS", "value %q", v)
	}
}

func TestLoad_InvalidTLSVerify(t *testing.T) {
	setCredentials(t)
	t.Setenv("SMITE_TLS_VERIFY", "maybe")

	_, err := Load(zerolog.Nop())
	assert.ErrorContains(t, err, "invalid SMITE_TLS_VERIFY")
}

func TestLoad_SkippedNames(t *testing.T) {
	setCredentials(t)
	t.Setenv("TT_SKIPPED_NAMES", "Scout; Ymir Main ;;")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"Scout", "Ymir Main"}, cfg.SkippedNames)
	assert.True(t, cfg.IsSkipped("Scout"))
	assert.True(t, cfg.IsSkipped("Ymir Main"))
	assert.False(t, cfg.IsSkipped("Nobody"))
}
