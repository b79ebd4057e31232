package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BVSTSirop/pokeguess/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "DB_PATH", "APP_SECRET", "HINT_LETTER_AFTER"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg := config.Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "./data/pokeguess.db", cfg.DBPath)
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, [4]int{3, 5, 7, 10}, cfg.Thresholds())
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("HINT_LETTER_AFTER", "2")
	t.Setenv("HINT_COLOR_AFTER", "not-a-number")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 2, cfg.HintLetter)
	assert.Equal(t, 5, cfg.HintColor, "invalid value falls back to default")
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := config.Config{
		LogLevel:   "loud",
		HintLetter: 5,
		HintColor:  3,
		HintGen:    7,
		HintSil:    10,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
	assert.Contains(t, err.Error(), "APP_SECRET cannot be empty")
	assert.Contains(t, err.Error(), "LOG_LEVEL")
	assert.Contains(t, err.Error(), "HINT_*")
}
