package update

import (
	"os"
	"strings"
)

type RuntimeConfig struct {
	APIBaseURL           string
	RequireTaskProject   bool
	DesktopNotifications bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		APIBaseURL:           "http://127.0.0.1:8080/api",
		RequireTaskProject:   false,
		DesktopNotifications: false,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TASKDECK_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := getEnvBool("TASKDECK_REQUIRE_PROJECT"); ok {
		cfg.RequireTaskProject = v
	}
	if v, ok := getEnvBool("TASKDECK_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
