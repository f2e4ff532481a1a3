package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearServerEnv(t *testing.T) {
	for _, key := range []string{"PORT", "TAXVIEW_ENV", "TAXVIEW_FACTS", "TAXVIEW_WATCH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	clearServerEnv(t)

	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err, "A missing env file is not an error")
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Watch)
	assert.Empty(t, cfg.AllowedOrigins)
}

func TestLoadServerConfig_FromEnv(t *testing.T) {
	clearServerEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TAXVIEW_ENV", "release")
	t.Setenv("TAXVIEW_FACTS", "/etc/taxview/facts.yaml")
	t.Setenv("TAXVIEW_WATCH", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")

	cfg, err := LoadServerConfig("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "/etc/taxview/facts.yaml", cfg.FactsFile)
	assert.True(t, cfg.Watch)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
}

func TestLoadServerConfig_DotEnv(t *testing.T) {
	clearServerEnv(t)
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("TAXVIEW_FACTS"))
	path := writeFile(t, ".env", "TAXVIEW_FACTS=facts/2024.yaml\n")

	cfg, err := LoadServerConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "facts/2024.yaml", cfg.FactsFile)
}

func TestLoadServerConfig_Invalid(t *testing.T) {
	clearServerEnv(t)

	t.Setenv("PORT", "eighty")
	_, err := LoadServerConfig("")
	assert.ErrorContains(t, err, "invalid PORT")

	t.Setenv("PORT", "")
	t.Setenv("TAXVIEW_ENV", "staging")
	_, err = LoadServerConfig("")
	assert.ErrorContains(t, err, "TAXVIEW_ENV")

	t.Setenv("TAXVIEW_ENV", "")
	t.Setenv("TAXVIEW_WATCH", "sometimes")
	_, err = LoadServerConfig("")
	assert.ErrorContains(t, err, "TAXVIEW_WATCH")
}
