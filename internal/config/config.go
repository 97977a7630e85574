// Package config provides configuration management for Warden.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultConfigDir  = ".config/warden"
	DefaultConfigFile = "config.yaml"
	DefaultDataDir    = ".local/share/warden"
)

// Sentinel errors for configuration operations.
var (
	ErrInvalidKey      = errors.New("invalid configuration key")
	ErrInvalidDuration = errors.New("invalid duration value")
)

// durationKeys are the keys that must parse as a Go duration when set
// (unexported).
var durationKeys = map[string]bool{
	"server.poll_interval": true,
	"server.boot_timeout":  true,
	"ssh.connect_timeout":  true,
}

// validKeys is built once from Config struct reflection.
var validKeys = buildValidKeys()

// validate is the shared validator instance.
var validate = validator.New()

// Config represents the full Warden configuration.
type Config struct {
	Provider  ProviderConfig  `mapstructure:"provider" validate:"required"`
	SSH       SSHConfig       `mapstructure:"ssh" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Provision ProvisionConfig `mapstructure:"provision"`
	Events    EventsConfig    `mapstructure:"events"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
}

// ProviderConfig describes the droplet to create.
type ProviderConfig struct {
	Region            string   `mapstructure:"region" validate:"required"`
	Size              string   `mapstructure:"size" validate:"required"`
	Image             string   `mapstructure:"image" validate:"required"`
	SSHKeyFingerprint string   `mapstructure:"ssh_key_fingerprint" validate:"required"`
	NamePrefix        string   `mapstructure:"name_prefix" validate:"required,hostname_rfc1123"`
	Tags              []string `mapstructure:"tags"`
}

// SSHConfig holds the credentials for remote command execution.
type SSHConfig struct {
	User           string        `mapstructure:"user" validate:"required"`
	KeyPath        string        `mapstructure:"key_path" validate:"required"`
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// ServerConfig holds daemon behavior settings.
type ServerConfig struct {
	Listen       string        `mapstructure:"listen" validate:"required,hostname_port"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"min=1s"`
	BootTimeout  time.Duration `mapstructure:"boot_timeout"`
	StopCommand  string        `mapstructure:"stop_command"`
}

// ProvisionConfig holds the provisioning script. An empty script means the
// built-in game server script is used.
type ProvisionConfig struct {
	Script []string `mapstructure:"script"`
}

// EventsConfig holds the optional NATS event publishing settings. An empty
// URL disables publishing.
type EventsConfig struct {
	URL     string `mapstructure:"url" validate:"omitempty,url"`
	Subject string `mapstructure:"subject"`
}

// StorageConfig holds storage location configuration.
type StorageConfig struct {
	Logs string `mapstructure:"logs" validate:"required"`
}

// Validate checks the configuration for errors using struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Loader provides configuration loading and saving.
type Loader struct {
	v       *viper.Viper
	path    string
	homeDir string
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}

	configPath := filepath.Join(home, DefaultConfigDir, DefaultConfigFile)

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Environment variable binding
	v.SetEnvPrefix("WARDEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Bind specific env vars to config keys.
	// We intentionally ignore errors here as BindEnv only fails if called with zero arguments.
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("provider.region", "WARDEN_REGION")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("provider.size", "WARDEN_SIZE")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("server.listen", "WARDEN_LISTEN")
	//nolint:errcheck // BindEnv only fails with zero arguments
	v.BindEnv("events.url", "WARDEN_EVENTS_URL")

	l := &Loader{
		v:       v,
		path:    configPath,
		homeDir: home,
	}

	// Set defaults before any config reading
	l.setDefaults()

	return l, nil
}

// setDefaults sets all default configuration values using Viper.
func (l *Loader) setDefaults() {
	l.v.SetDefault("provider.region", "nyc3")
	l.v.SetDefault("provider.size", "s-2vcpu-4gb")
	l.v.SetDefault("provider.image", "ubuntu-24-04-x64")
	l.v.SetDefault("provider.ssh_key_fingerprint", "")
	l.v.SetDefault("provider.name_prefix", "warden")
	l.v.SetDefault("provider.tags", []string{"warden"})
	l.v.SetDefault("ssh.user", "root")
	l.v.SetDefault("ssh.key_path", "~/.ssh/id_ed25519")
	l.v.SetDefault("ssh.port", 22)
	l.v.SetDefault("ssh.connect_timeout", "15s")
	l.v.SetDefault("server.listen", "127.0.0.1:7654")
	l.v.SetDefault("server.poll_interval", "5s")
	l.v.SetDefault("server.boot_timeout", "10m")
	l.v.SetDefault("server.stop_command", "sudo docker stop --time 60 gameserver")
	l.v.SetDefault("provision.script", []string{})
	l.v.SetDefault("events.url", "")
	l.v.SetDefault("events.subject", "warden.lifecycle")
	l.v.SetDefault("storage.logs", "~/.local/share/warden/logs")
}

// Load reads the configuration file, creating defaults if it doesn't exist.
func (l *Loader) Load() (*Config, error) {
	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		if err := l.createDefault(); err != nil {
			return nil, fmt.Errorf("create default config: %w", err)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Expand paths
	cfg.SSH.KeyPath = l.expandPath(cfg.SSH.KeyPath)
	cfg.Storage.Logs = l.expandPath(cfg.Storage.Logs)

	return &cfg, nil
}

// Path returns the configuration file path.
func (l *Loader) Path() string {
	return l.path
}

// Get returns a configuration value by dot-notation key.
func (l *Loader) Get(key string) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return l.v.Get(key), nil
}

// Set sets a configuration value by dot-notation key.
func (l *Loader) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	if durationKeys[key] {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("%w: %s=%s", ErrInvalidDuration, key, value)
		}
	}

	l.v.Set(key, value)
	return l.v.WriteConfig()
}

// createDefault writes the default configuration file using Viper.
func (l *Loader) createDefault() error {
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return l.v.SafeWriteConfigAs(l.path)
}

// expandPath replaces ~ with the home directory.
func (l *Loader) expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(l.homeDir, path[2:])
	}
	if path == "~" {
		return l.homeDir
	}
	return path
}

// ValidateKey checks if a key is a valid configuration key.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	if validKeys[key] {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

// buildValidKeys builds the set of valid keys from Config struct using reflection.
func buildValidKeys() map[string]bool {
	keys := make(map[string]bool)
	addKeysFromType(reflect.TypeOf(Config{}), "", keys)
	return keys
}

// addKeysFromType recursively adds keys from a struct type.
func addKeysFromType(t reflect.Type, prefix string, keys map[string]bool) {
	for i := range t.NumField() {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		keys[key] = true

		// Recurse into nested structs (but not maps)
		if field.Type.Kind() == reflect.Struct {
			addKeysFromType(field.Type, key, keys)
		}
	}
}
