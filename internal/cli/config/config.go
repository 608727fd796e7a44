package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/tasknotify/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/tasknotify/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit configuration",
	Long: `Show and edit tasknotify configuration.

Configuration is merged from, lowest to highest priority:
  built-in defaults
  ~/.tasknotify/config.yml (user)
  .tasknotify/config.yml or --config (project)
  TASKNOTIFY_* environment variables, "__" separating nesting levels`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  "Show the configuration after defaults, files and environment variables have been merged.",
	Example: `  # YAML output
  tasknotify config show

  # JSON output
  tasknotify config show --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in user or project config.

By default, sets the value in the user-level config (~/.tasknotify/config.yml).
Use --project to set it in the project-level config (--config).

The value is validated against the key's type before the file is touched.
Comments and key order in the file are preserved.`,
	Example: `  # Turn off the sound channel for every project
  tasknotify config set notifications.sound_enabled false

  # Run a script on every notification in this project
  tasknotify config set notifications.script_enabled true --project
  tasknotify config set notifications.script_command 'say {{title}}' --project

  # Relay a project's notifications to ntfy
  tasknotify config set projects.web.ntfy_enabled true
  tasknotify config set projects.web.ntfy_topic web-builds`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all available configuration keys",
	Long:  `Display all valid configuration keys with their types and descriptions.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)

	configShowCmd.Flags().Bool("json", false, "Output as JSON")
	configSetCmd.Flags().Bool("project", false, "Set in project-level config")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := cfgpkg.Load(shared.ConfigOptions(cmd))
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	return writeConfig(cmd.OutOrStdout(), cfg, asJSON)
}

func writeConfig(out io.Writer, cfg *cfgpkg.Configuration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		var unknown cfgpkg.ErrUnknownKey
		if errors.As(err, &unknown) {
			return shared.WithExitCode(formatUnknownKeyError(key), shared.ExitInvalidArguments)
		}
		return fmt.Errorf("setting config value: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		printKey(out, key, cfgpkg.KnownKeys[key])
	}
	for _, field := range []string{"ntfy_enabled", "ntfy_topic", "ntfy_url"} {
		key := "projects.<name>." + field
		schema, _ := cfgpkg.GetKeySchema("projects._." + field)
		printKey(out, key, schema)
	}
	return nil
}

func printKey(out io.Writer, key string, schema cfgpkg.ConfigKeySchema) {
	typeInfo := schema.Type.String()
	if schema.Type == cfgpkg.TypeEnum {
		typeInfo = fmt.Sprintf("enum (%s)", strings.Join(schema.AllowedValues, ", "))
	}
	fmt.Fprintf(out, "  %-40s %s\n", key, typeInfo)
	fmt.Fprintf(out, "    %s\n", schema.Description)
	fmt.Fprintln(out)
}

func resolveConfigPath(cmd *cobra.Command) (filePath, scope string, err error) {
	useProject, _ := cmd.Flags().GetBool("project")
	if useProject {
		return shared.ConfigOptions(cmd).ConfigPath, "project", nil
	}

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("getting user config path: %w", err)
	}
	return userPath, "user", nil
}

func formatUnknownKeyError(key string) error {
	return fmt.Errorf("unknown configuration key: %q\n\nValid keys:\n  %s\n  projects.<name>.ntfy_enabled|ntfy_topic|ntfy_url",
		key, strings.Join(cfgpkg.SortedKeys(), "\n  "))
}
