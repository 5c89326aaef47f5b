package update

import "testing"

func TestDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.APIBaseURL != "http://127.0.0.1:8080/api" {
		t.Fatalf("unexpected default API base URL: %q", cfg.APIBaseURL)
	}
	if cfg.RequireTaskProject || cfg.DesktopNotifications {
		t.Fatalf("boolean options must default to off: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("TASKDECK_API_URL", "http://example.test/api")
	t.Setenv("TASKDECK_REQUIRE_PROJECT", "true")
	t.Setenv("TASKDECK_DESKTOP_NOTIFICATIONS", "1")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.APIBaseURL != "http://example.test/api" {
		t.Fatalf("API base URL not overridden: %q", cfg.APIBaseURL)
	}
	if !cfg.RequireTaskProject {
		t.Fatal("TASKDECK_REQUIRE_PROJECT=true not applied")
	}
	if !cfg.DesktopNotifications {
		t.Fatal("TASKDECK_DESKTOP_NOTIFICATIONS=1 not applied")
	}
}

func TestRuntimeConfigIgnoresInvalidBooleans(t *testing.T) {
	t.Setenv("TASKDECK_REQUIRE_PROJECT", "sometimes")
	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.RequireTaskProject {
		t.Fatal("unparseable boolean must keep the default")
	}
}
