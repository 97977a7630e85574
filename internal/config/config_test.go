package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load_CreatesDefaultIfMissing(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	// Check defaults
	assert.Equal(t, "nyc3", cfg.Provider.Region)
	assert.Equal(t, "s-2vcpu-4gb", cfg.Provider.Size)
	assert.Equal(t, "warden", cfg.Provider.NamePrefix)
	assert.Equal(t, "root", cfg.SSH.User)
	assert.Equal(t, 22, cfg.SSH.Port)
	assert.Equal(t, "127.0.0.1:7654", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.Server.BootTimeout)
	assert.Contains(t, cfg.Storage.Logs, "warden")

	// Verify file was created
	_, err = os.Stat(loader.Path())
	assert.NoError(t, err)
}

func TestLoader_Load_ReadsExistingConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	// Create config manually
	configDir := filepath.Join(tmpHome, ".config", "warden")
	require.NoError(t, os.MkdirAll(configDir, 0755))

	configContent := `
provider:
  region: fra1
  size: s-4vcpu-8gb
  image: ubuntu-24-04-x64
  ssh_key_fingerprint: "aa:bb:cc"
  name_prefix: gameserver
ssh:
  user: warden
  key_path: ~/keys/droplet
  port: 2222
server:
  listen: 0.0.0.0:9000
  poll_interval: 2s
  boot_timeout: 5m
storage:
  logs: ~/custom/logs
`
	require.NoError(t, os.WriteFile(
		filepath.Join(configDir, "config.yaml"),
		[]byte(configContent),
		0644,
	))

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "fra1", cfg.Provider.Region)
	assert.Equal(t, "s-4vcpu-8gb", cfg.Provider.Size)
	assert.Equal(t, "gameserver", cfg.Provider.NamePrefix)
	assert.Equal(t, "warden", cfg.SSH.User)
	assert.Equal(t, 2222, cfg.SSH.Port)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.Equal(t, 2*time.Second, cfg.Server.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.Server.BootTimeout)
	assert.Equal(t, filepath.Join(tmpHome, "keys", "droplet"), cfg.SSH.KeyPath)
	assert.Equal(t, filepath.Join(tmpHome, "custom", "logs"), cfg.Storage.Logs)
}

func TestLoader_Load_EnvVarOverride(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)
	t.Setenv("WARDEN_REGION", "sfo3")
	t.Setenv("WARDEN_LISTEN", "127.0.0.1:8100")

	loader, err := NewLoader()
	require.NoError(t, err)

	cfg, err := loader.Load()
	require.NoError(t, err)

	// Env vars should override file defaults
	assert.Equal(t, "sfo3", cfg.Provider.Region)
	assert.Equal(t, "127.0.0.1:8100", cfg.Server.Listen)
}

func TestLoader_Path(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	expected := filepath.Join(tmpHome, ".config", "warden", "config.yaml")
	assert.Equal(t, expected, loader.Path())
}

func TestLoader_Get(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	_, err = loader.Load()
	require.NoError(t, err)

	t.Run("valid key returns value", func(t *testing.T) {
		val, err := loader.Get("provider.region")
		require.NoError(t, err)
		assert.Equal(t, "nyc3", val)
	})

	t.Run("invalid key returns error", func(t *testing.T) {
		_, err := loader.Get("invalid.key")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestLoader_Set(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	loader, err := NewLoader()
	require.NoError(t, err)

	_, err = loader.Load()
	require.NoError(t, err)

	t.Run("sets valid key", func(t *testing.T) {
		err := loader.Set("provider.size", "s-8vcpu-16gb")
		require.NoError(t, err)

		val, err := loader.Get("provider.size")
		require.NoError(t, err)
		assert.Equal(t, "s-8vcpu-16gb", val)
	})

	t.Run("rejects invalid key", func(t *testing.T) {
		err := loader.Set("invalid.key", "value")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("rejects malformed duration", func(t *testing.T) {
		err := loader.Set("server.poll_interval", "fast")
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("accepts well-formed duration", func(t *testing.T) {
		err := loader.Set("server.boot_timeout", "15m")
		assert.NoError(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Provider: ProviderConfig{
				Region:            "nyc3",
				Size:              "s-2vcpu-4gb",
				Image:             "ubuntu-24-04-x64",
				SSHKeyFingerprint: "aa:bb:cc",
				NamePrefix:        "warden",
			},
			SSH:     SSHConfig{User: "root", KeyPath: "/tmp/key", Port: 22},
			Server:  ServerConfig{Listen: "127.0.0.1:7654", PollInterval: 5 * time.Second},
			Storage: StorageConfig{Logs: "/tmp/logs"},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing region", func(t *testing.T) {
		cfg := valid()
		cfg.Provider.Region = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Region")
	})

	t.Run("name prefix must be hostname safe", func(t *testing.T) {
		cfg := valid()
		cfg.Provider.NamePrefix = "not_a_hostname"
		assert.Error(t, cfg.Validate())
	})

	t.Run("ssh port out of range", func(t *testing.T) {
		cfg := valid()
		cfg.SSH.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("listen must be host:port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Listen = "localhost"
		assert.Error(t, cfg.Validate())
	})

	t.Run("poll interval below minimum", func(t *testing.T) {
		cfg := valid()
		cfg.Server.PollInterval = 100 * time.Millisecond
		assert.Error(t, cfg.Validate())
	})
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"provider.region is valid", "provider.region", nil},
		{"provider.size is valid", "provider.size", nil},
		{"ssh.key_path is valid", "ssh.key_path", nil},
		{"server.listen is valid", "server.listen", nil},
		{"server.stop_command is valid", "server.stop_command", nil},
		{"events.url is valid", "events.url", nil},
		{"storage.logs is valid", "storage.logs", nil},
		{"provider is valid", "provider", nil},
		{"server is valid", "server", nil},
		{"unknown.key returns error", "unknown.key", ErrInvalidKey},
		{"empty key returns error", "", ErrInvalidKey},
		{"random key returns error", "foo", ErrInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
