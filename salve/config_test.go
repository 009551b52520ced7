package salve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caelo/caelum/salve"
)

func TestLoadConfig_defaults(t *testing.T) {
	cfg, err := salve.LoadConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, salve.DefaultAddr, cfg.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Format)
}

func TestLoadConfig_envOverrides(t *testing.T) {
	t.Setenv("SALVE_ADDR", ":8085")
	t.Setenv("SALVE_LOG__LEVEL", "debug")

	cfg, err := salve.LoadConfig(nil)

	require.NoError(t, err)
	assert.Equal(t, ":8085", cfg.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "production", cfg.Log.Format, "untouched keys keep their defaults")
}
