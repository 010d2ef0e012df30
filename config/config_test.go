package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func decodeUser(t *testing.T, doc string) (*Config, toml.MetaData) {
	t.Helper()
	var cfg Config
	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		t.Fatalf("decoding test TOML: %v", err)
	}
	return &cfg, md
}

func TestMergeOverridesNonZero(t *testing.T) {
	user, md := decodeUser(t, `
[server]
port = 9100

[search]
template = "https://duckduckgo.com/?q=%s"
`)

	got := Merge(Default(), user, md)

	if got.Server.Port != 9100 {
		t.Errorf("Port = %d, want 9100", got.Server.Port)
	}
	if got.Search.Template != "https://duckduckgo.com/?q=%s" {
		t.Errorf("Template = %q", got.Search.Template)
	}
	// Untouched fields keep defaults.
	if got.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want default", got.Server.Host)
	}
	if got.Probe.TimeoutSeconds != 10 {
		t.Errorf("TimeoutSeconds = %d, want default", got.Probe.TimeoutSeconds)
	}
	if !got.Viewer.RestoreLast {
		t.Error("RestoreLast flipped without being set")
	}
}

// An explicit false in the user TOML must win over a true default.
func TestMergeHonorsExplicitFalse(t *testing.T) {
	user, md := decodeUser(t, `
[viewer]
restoreLast = false

[launch]
openBrowser = false
`)

	got := Merge(Default(), user, md)

	if got.Viewer.RestoreLast {
		t.Error("restoreLast = false ignored")
	}
	if got.Launch.OpenBrowser {
		t.Error("openBrowser = false ignored")
	}
	// Booleans absent from the TOML keep their defaults.
	if got.Launch.AppWindow {
		t.Error("AppWindow flipped without being set")
	}
}

func TestDefaultTOMLRoundTrips(t *testing.T) {
	var cfg Config
	if _, err := toml.Decode(DefaultTOML(), &cfg); err != nil {
		t.Fatalf("decoding DefaultTOML: %v", err)
	}

	def := Default()
	if cfg.Server.Port != def.Server.Port {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, def.Server.Port)
	}
	if cfg.Search.Template != def.Search.Template {
		t.Errorf("Template = %q, want %q", cfg.Search.Template, def.Search.Template)
	}
	if cfg.Viewer.HomeURL != def.Viewer.HomeURL {
		t.Errorf("HomeURL = %q, want %q", cfg.Viewer.HomeURL, def.Viewer.HomeURL)
	}
}
