package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadNormalizesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("product_name: Proton Mail\nweek_start: Monday\nlog_level: LOUD\nnewline: LF\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Proton Mail", cfg.ProductName)
	assert.Equal(t, "1.0.0", cfg.ProductVersion)
	assert.Equal(t, "2.0", cfg.ICalVersion)
	assert.Equal(t, "GREGORIAN", cfg.Calscale)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "\n", cfg.LineEnding())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("product_name: [unterminated"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Timezone = "Europe/Zurich"
	cfg.WeekStart = "sunday"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, Save("", cfg))
	assert.Error(t, Save(path, nil))
}

func TestAccessors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.WeekStartDay())
	assert.Equal(t, "\r\n", cfg.LineEnding())
	assert.Equal(t, slog.LevelInfo, cfg.Level())

	cfg.WeekStart = "sunday"
	cfg.LogLevel = "debug"
	if assert.NotNil(t, cfg.WeekStartDay()) {
		assert.Equal(t, time.Sunday, *cfg.WeekStartDay())
	}
	assert.Equal(t, slog.LevelDebug, cfg.Level())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	cfg.Timezone = "Mars/Olympus_Mons"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("ICSWRITER_PRODUCT_NAME", "Proton Mail")
	t.Setenv("ICSWRITER_WEEK_START", "MONDAY")
	t.Setenv("ICSWRITER_NEWLINE", "lf")
	t.Setenv("ICSWRITER_NO_COLOR", "true")
	t.Setenv("ICSWRITER_LOG_LEVEL", "")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	assert.Equal(t, "Proton Mail", cfg.ProductName)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, "lf", cfg.NewLine)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "GREGORIAN", cfg.Calscale)

	t.Setenv("ICSWRITER_NO_COLOR", "0")
	cfg.ApplyEnv()
	assert.False(t, cfg.NoColor)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.env")
	assert.NoError(t, LoadDotEnv(missing))

	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("ICSWRITER_CALSCALE=JULIAN\n"), 0o600))
	t.Setenv("ICSWRITER_CALSCALE", "")
	os.Unsetenv("ICSWRITER_CALSCALE")

	require.NoError(t, LoadDotEnv(missing, path))
	assert.Equal(t, "JULIAN", os.Getenv("ICSWRITER_CALSCALE"))

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	assert.Equal(t, "JULIAN", cfg.Calscale)
}
