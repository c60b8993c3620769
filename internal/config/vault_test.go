package config

import (
	"os"
	"path/filepath"
	"testing"

	"skillmatch/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *errors.Logger {
	logger, _ := errors.New("debug")
	return logger
}

func TestNewVaultClientDisabled(t *testing.T) {
	client, err := NewVaultClient(VaultConfig{Enabled: false}, newTestLogger())
	require.NoError(t, err)
	assert.Nil(t, client, "disabled vault should yield a nil client, not an error")
}

func TestNewVaultClientRequiresToken(t *testing.T) {
	cfg := VaultConfig{
		Enabled: true,
		Address: "http://127.0.0.1:8200",
	}

	_, err := NewVaultClient(cfg, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNewVaultClientTokenFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("  s.sometoken\n"), 0o600))

	cfg := VaultConfig{
		Enabled:   true,
		Address:   "http://127.0.0.1:1", // unreachable, health check must fail
		TokenFile: tokenFile,
	}

	_, err := NewVaultClient(cfg, newTestLogger())
	// The token file was read successfully; the failure comes from the
	// connection attempt, not from token resolution.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to vault")
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	config := &Config{
		Vault: VaultConfig{Enabled: false},
	}

	err := ApplyVaultSecrets(config, newTestLogger())
	assert.NoError(t, err)
	assert.Empty(t, config.Server.APIKeys)
	assert.Empty(t, config.AI.APIKey)
}

func TestGetStringSecretNilClient(t *testing.T) {
	var vc *VaultClient
	_, err := vc.GetStringSecret("secret/data/skillmatch/api", "keys")
	assert.Error(t, err)
}
