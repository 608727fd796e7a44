package config

import "github.com/ariel-frischer/tasknotify/internal/natsbus"

// DefaultServerAddr is where `tasknotify serve` listens unless configured.
const DefaultServerAddr = "127.0.0.1:7878"

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"log_level":                     "info",
		"log_format":                    "text",
		"notifications.sound_enabled":   true,
		"notifications.sound_file":      "",
		"notifications.push_enabled":    true,
		"notifications.script_enabled":  false,
		"notifications.script_command":  "",
		"notifications.browser_enabled": false,
		"server.addr":                   DefaultServerAddr,
		"nats.url":                      "",
		"nats.subject":                  natsbus.DefaultSubject,
		"nats.embedded":                 false,
		"nats.port":                     natsbus.DefaultPort,
	}
}
