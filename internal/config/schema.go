package config

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
	TypeURL
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeURL:
		return "url"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "notifications.sound_enabled")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
}

// KnownKeys is the registry of fixed configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum log level",
	},
	"log_format": {
		Path:          "log_format",
		Type:          TypeEnum,
		AllowedValues: []string{"text", "json"},
		Description:   "Log output format",
	},
	"notifications.sound_enabled": {
		Path:        "notifications.sound_enabled",
		Type:        TypeBool,
		Description: "Play a sound on every notification",
	},
	"notifications.sound_file": {
		Path:        "notifications.sound_file",
		Type:        TypeString,
		Description: "Custom sound file; empty uses the platform default",
	},
	"notifications.push_enabled": {
		Path:        "notifications.push_enabled",
		Type:        TypeBool,
		Description: "Show a native OS notification",
	},
	"notifications.script_enabled": {
		Path:        "notifications.script_enabled",
		Type:        TypeBool,
		Description: "Run script_command on every notification",
	},
	"notifications.script_command": {
		Path:        "notifications.script_command",
		Type:        TypeString,
		Description: "Shell command template with {{title}}, {{message}}, {{event}} and task placeholders",
	},
	"notifications.browser_enabled": {
		Path:        "notifications.browser_enabled",
		Type:        TypeBool,
		Description: "Publish notifications to connected browsers",
	},
	"server.addr": {
		Path:        "server.addr",
		Type:        TypeString,
		Description: "Listen address for tasknotify serve",
	},
	"nats.url": {
		Path:        "nats.url",
		Type:        TypeURL,
		Description: "NATS server to bridge browser events to",
	},
	"nats.subject": {
		Path:        "nats.subject",
		Type:        TypeString,
		Description: "NATS subject for browser events",
	},
	"nats.embedded": {
		Path:        "nats.embedded",
		Type:        TypeBool,
		Description: "Run an embedded NATS server inside tasknotify serve",
	},
	"nats.port": {
		Path:        "nats.port",
		Type:        TypeInt,
		Description: "Port of the embedded NATS server (-1 picks a free port)",
	},
}

// projectKeys are valid under projects.<name>.
var projectKeys = map[string]ConfigKeySchema{
	"ntfy_enabled": {Type: TypeBool, Description: "Send this project's notifications to the ntfy relay"},
	"ntfy_topic":   {Type: TypeString, Description: "ntfy topic for this project"},
	"ntfy_url":     {Type: TypeURL, Description: "ntfy server; empty uses https://ntfy.sh"},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a configuration key, including the
// per-project keys projects.<name>.ntfy_*.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	if schema, ok := KnownKeys[path]; ok {
		return schema, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 3 && parts[0] == "projects" && parts[1] != "" {
		if schema, ok := projectKeys[parts[2]]; ok {
			schema.Path = path
			return schema, nil
		}
	}
	return ConfigKeySchema{}, ErrUnknownKey{Key: path}
}

// SortedKeys returns the fixed keys in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}

	switch schema.Type {
	case TypeBool:
		switch strings.ToLower(value) {
		case "true":
			return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
		case "false":
			return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
		}
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
		}
		return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if value == allowed {
				return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
			}
		}
		return ParsedValue{}, fmt.Errorf("invalid value: %q (valid options: %s)",
			value, strings.Join(schema.AllowedValues, ", "))
	case TypeURL:
		if value != "" {
			if u, err := url.Parse(value); err != nil || u.Scheme == "" || u.Host == "" {
				return ParsedValue{}, fmt.Errorf("invalid URL: %q", value)
			}
		}
		return ParsedValue{Raw: value, Parsed: value, Type: TypeURL}, nil
	default:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	}
}
