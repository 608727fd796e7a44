package shared

import (
	"github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/ariel-frischer/tasknotify/internal/logging"
	"github.com/spf13/cobra"
)

// DefaultLocalConfig is the project-level config file read by every command.
const DefaultLocalConfig = ".tasknotify/config.yml"

// ConfigOptions reads the persistent --config and --env-file flags.
func ConfigOptions(cmd *cobra.Command) config.Options {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path = DefaultLocalConfig
	}
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Options{ConfigPath: path, EnvFile: envFile}
}

// LoadConfig loads the configuration and configures logging from it.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.Load(ConfigOptions(cmd))
	if err != nil {
		return nil, err
	}
	InitLogging(cmd, cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// InitLogging applies level and format; --debug overrides the level.
func InitLogging(cmd *cobra.Command, level, format string) {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}
	logging.Init(logging.Options{Level: level, Format: format})
}
