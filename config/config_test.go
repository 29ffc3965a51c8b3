package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
env:
  serviceName: authapp
  log:
    level: info
http:
  port: 8080
storage:
  driver: memory
secretKey:
  access: yaml-secret
auth:
  tokenTTL: 15m
`

func writeConfig(t *testing.T, body string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	t.Chdir(dir)
}

func TestNew_LoadsYAMLAndAppliesDefaults(t *testing.T) {
	writeConfig(t, testConfigYAML)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "authapp", cfg.Env.ServiceName)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "yaml-secret", cfg.SecretKey.Access)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultBasePath, cfg.HTTP.BasePath)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
}

func TestNew_EnvironmentOverridesYAML(t *testing.T) {
	writeConfig(t, testConfigYAML)
	t.Setenv("SECRETKEY_ACCESS", "env-secret")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.SecretKey.Access)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestNew_PlaceholderSecretNeedsOverrideOutsideLocal(t *testing.T) {
	writeConfig(t, `
env:
  env: local
storage:
  driver: memory
secretKey:
  access: change-me-in-production
`)

	_, err := New()
	require.NoError(t, err)

	t.Setenv("ENV_ENV", "production")
	_, err = New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRETKEY_ACCESS")

	t.Setenv("SECRETKEY_ACCESS", "a-real-production-secret")
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env.Env)
	assert.Equal(t, "a-real-production-secret", cfg.SecretKey.Access)
}

func TestNew_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file config.yaml not found")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "memory driver",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "empty secret",
			mutate:  func(cfg *Config) { cfg.SecretKey.Access = "  " },
			wantErr: "secretKey.access must be provided",
		},
		{
			name: "placeholder secret in local env",
			mutate: func(cfg *Config) {
				cfg.Env.Env = EnvLocal
				cfg.SecretKey.Access = PlaceholderAccessSecret
			},
		},
		{
			name: "placeholder secret in production",
			mutate: func(cfg *Config) {
				cfg.Env.Env = "production"
				cfg.SecretKey.Access = PlaceholderAccessSecret
			},
			wantErr: "secretKey.access is the committed placeholder",
		},
		{
			name:    "placeholder secret without env",
			mutate:  func(cfg *Config) { cfg.SecretKey.Access = PlaceholderAccessSecret },
			wantErr: "secretKey.access is the committed placeholder",
		},
		{
			name:    "postgres without connection",
			mutate:  func(cfg *Config) { cfg.Storage.Driver = StorageDriverPostgres },
			wantErr: "postgres configuration is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *Config) { cfg.Storage.Driver = "mongo" },
			wantErr: "unknown storage driver: mongo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SecretKey.Access = "secret"
			cfg.Storage.Driver = StorageDriverMemory
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
