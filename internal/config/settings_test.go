package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears key for the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

// chdir changes the working directory for the test and restores it
// afterwards (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("DEFAULT_VAT_RATE", "not-a-number")
	s := LoadSettings()
	assert.Equal(t, "20", s.DefaultVATRate.String())
	assert.Equal(t, "crown", s.InvoiceSuffix)
}

func TestLoadSettingsOverrides(t *testing.T) {
	t.Setenv("DEFAULT_VAT_RATE", "17.5")
	t.Setenv("INVOICE_SUFFIX", "acme")
	t.Setenv("SERVER_ADDR", ":9000")
	s := LoadSettings()
	assert.Equal(t, "17.5", s.DefaultVATRate.String())
	assert.Equal(t, "acme", s.InvoiceSuffix)
	assert.Equal(t, ":9000", s.ServerAddr)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("LOG_MAX_SIZE", "25")
	assert.Equal(t, 25, getEnvInt("LOG_MAX_SIZE", 10))
	t.Setenv("LOG_MAX_SIZE", "x")
	assert.Equal(t, 10, getEnvInt("LOG_MAX_SIZE", 10))
}

func TestLoadSettingsReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "JWT_SECRET=prod-secret\nINVOICE_SUFFIX=acme\nDEFAULT_VAT_RATE=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	chdir(t, dir)

	unsetenv(t, "JWT_SECRET")
	unsetenv(t, "INVOICE_SUFFIX")
	unsetenv(t, "DEFAULT_VAT_RATE")
	t.Setenv("SERVER_ADDR", ":7000")

	s := LoadSettings()
	assert.Equal(t, "prod-secret", s.JWTSecret)
	assert.Equal(t, "acme", s.InvoiceSuffix)
	assert.Equal(t, "5", s.DefaultVATRate.String())
	assert.Equal(t, ":7000", s.ServerAddr)
}

func TestLoadSettingsEnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("INVOICE_SUFFIX=acme\n"), 0o600))
	chdir(t, dir)

	t.Setenv("INVOICE_SUFFIX", "north")
	assert.Equal(t, "north", LoadSettings().InvoiceSuffix)
}
