package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/notify"
	"github.com/ariel-frischer/tasknotify/internal/relay"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "TASKNOTIFY_"

// Configuration represents the tasknotify configuration
type Configuration struct {
	LogLevel      string                   `koanf:"log_level" yaml:"log_level" json:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat     string                   `koanf:"log_format" yaml:"log_format" json:"log_format" validate:"oneof=text json"`
	Notifications notify.ChannelConfig     `koanf:"notifications" yaml:"notifications" json:"notifications"`
	Projects      map[string]relay.Project `koanf:"projects" yaml:"projects,omitempty" json:"projects,omitempty" validate:"dive"`
	Server        ServerConfig             `koanf:"server" yaml:"server" json:"server"`
	NATS          NATSConfig               `koanf:"nats" yaml:"nats" json:"nats"`
}

// ServerConfig configures the `serve` HTTP endpoint.
type ServerConfig struct {
	Addr string `koanf:"addr" yaml:"addr" json:"addr" validate:"required,hostname_port"`
}

// NATSConfig configures the optional NATS bridge for browser events.
type NATSConfig struct {
	// URL of an external server; empty disables the bridge unless Embedded is set
	URL      string `koanf:"url" yaml:"url" json:"url" validate:"omitempty,url"`
	Subject  string `koanf:"subject" yaml:"subject" json:"subject" validate:"required"`
	Embedded bool   `koanf:"embedded" yaml:"embedded" json:"embedded"`
	Port     int    `koanf:"port" yaml:"port" json:"port" validate:"min=-1,max=65535"`
}

// Options selects the sources Load reads.
type Options struct {
	// ConfigPath is the local (project) config file, .json, .yml or .yaml
	ConfigPath string
	// GlobalPath overrides the user config path; empty uses UserConfigPath
	GlobalPath string
	// EnvFile is a dotenv file loaded into the process environment first
	EnvFile string
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(opts Options) (*Configuration, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	globalPath := opts.GlobalPath
	if globalPath == "" {
		if p, err := UserConfigPath(); err == nil {
			globalPath = p
		}
	}
	if err := loadFile(k, globalPath); err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}

	if err := loadFile(k, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for name, p := range cfg.Projects {
		p.Name = name
		cfg.Projects[name] = p
	}
	cfg.Notifications.SoundFile = expandHomePath(cfg.Notifications.SoundFile)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints on cfg.
func Validate(cfg *Configuration) error {
	if err := newValidator().Struct(cfg); err != nil {
		if fields := FieldErrors(err, ""); len(fields) > 0 {
			return fmt.Errorf("config validation failed: %w", fields[0])
		}
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// loadFile merges path into k when it exists. The parser follows the file
// extension; anything other than .json is read as YAML.
func loadFile(k *koanf.Koanf, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return k.Load(file.Provider(path), json.Parser())
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), YAMLParser())
}

// UserConfigPath returns the global config file, ~/.tasknotify/config.yml.
func UserConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tasknotify", "config.yml"), nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nesting levels.
// Example: TASKNOTIFY_NOTIFICATIONS__SOUND_ENABLED -> notifications.sound_enabled
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
