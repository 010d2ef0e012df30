// Package config provides configuration loading for the ink browser shell
// using TOML, with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Server holds loopback listener settings.
type Server struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	MaxConns int    `toml:"maxConns"` // Concurrent connection cap on the listener
}

// Search holds search provider settings.
type Search struct {
	Name     string `toml:"name"`     // Display name used in status messages
	Template string `toml:"template"` // URL with %s for the escaped query
}

// Probe holds reachability probe settings.
type Probe struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

// Viewer holds viewing surface settings.
type Viewer struct {
	HomeURL     string `toml:"homeUrl"`
	RestoreLast bool   `toml:"restoreLast"` // Restore the previously viewed URL on startup
}

// Launch holds browser launch settings.
type Launch struct {
	OpenBrowser bool   `toml:"openBrowser"` // Open the shell in the system browser on start
	AppWindow   bool   `toml:"appWindow"`   // Use a chromeless Chrome app window instead
	ChromePath  string `toml:"chromePath"`  // Chrome binary for app windows (empty = auto-detect)
}

// Config is the main configuration struct.
type Config struct {
	Server Server `toml:"server"`
	Search Search `toml:"search"`
	Probe  Probe  `toml:"probe"`
	Viewer Viewer `toml:"viewer"`
	Launch Launch `toml:"launch"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: Server{
			Host:     "127.0.0.1",
			Port:     8000,
			MaxConns: 32,
		},
		Search: Search{
			Name:     "Bing",
			Template: "https://www.bing.com/search?q=%s",
		},
		Probe: Probe{
			UserAgent:      "InkBrowser/1.0 (reachability probe)",
			TimeoutSeconds: 10,
		},
		Viewer: Viewer{
			HomeURL:     "http://spaceaero.space/ink.html",
			RestoreLast: true,
		},
		Launch: Launch{
			OpenBrowser: true,
			AppWindow:   false,
			ChromePath:  "",
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkbrowser"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads configuration: user TOML layered on top of defaults, then
// INKBROWSER_* environment variables on top of both.
func Load() (*Config, error) {
	cfg := Default()

	configPath, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			userCfg, md, loadErr := loadFromTOML(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config from %s: %w", configPath, loadErr)
			}
			cfg = Merge(cfg, userCfg, md)
		}
	}

	if err := envconfig.Process("inkbrowser", cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	return cfg, nil
}

// loadFromTOML loads a TOML config file and returns the config plus the
// decode metadata, which records which keys the user actually set.
func loadFromTOML(path string) (*Config, toml.MetaData, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, md, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, md, nil
}

// Merge layers user config on top of defaults. Strings and ints override
// when non-zero; booleans override when the metadata shows the key was
// present, so an explicit false is honored.
func Merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults

	if user.Server.Host != "" {
		result.Server.Host = user.Server.Host
	}
	if user.Server.Port != 0 {
		result.Server.Port = user.Server.Port
	}
	if user.Server.MaxConns != 0 {
		result.Server.MaxConns = user.Server.MaxConns
	}

	if user.Search.Name != "" {
		result.Search.Name = user.Search.Name
	}
	if user.Search.Template != "" {
		result.Search.Template = user.Search.Template
	}

	if user.Probe.UserAgent != "" {
		result.Probe.UserAgent = user.Probe.UserAgent
	}
	if user.Probe.TimeoutSeconds != 0 {
		result.Probe.TimeoutSeconds = user.Probe.TimeoutSeconds
	}

	if user.Viewer.HomeURL != "" {
		result.Viewer.HomeURL = user.Viewer.HomeURL
	}
	if md.IsDefined("viewer", "restoreLast") {
		result.Viewer.RestoreLast = user.Viewer.RestoreLast
	}

	if user.Launch.ChromePath != "" {
		result.Launch.ChromePath = user.Launch.ChromePath
	}
	if md.IsDefined("launch", "openBrowser") {
		result.Launch.OpenBrowser = user.Launch.OpenBrowser
	}
	if md.IsDefined("launch", "appWindow") {
		result.Launch.AppWindow = user.Launch.AppWindow
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# Ink browser configuration
# Save to ~/.config/inkbrowser/config.toml and customize
# Only include settings you want to change from defaults

# Loopback listener
[server]
host = "127.0.0.1"
port = 8000
maxConns = 32                 # Concurrent connection cap

# Search provider used for non-address input
[search]
name = "Bing"
template = "https://www.bing.com/search?q=%s"

# Reachability probing (https-first with http fallback)
[probe]
userAgent = "InkBrowser/1.0 (reachability probe)"
timeoutSeconds = 10

# Viewing surface
[viewer]
homeUrl = "http://spaceaero.space/ink.html"
restoreLast = true            # Restore the previously viewed URL on startup

# Browser launch
[launch]
openBrowser = true            # Open the shell in the system browser on start
appWindow = false             # Chromeless Chrome app window instead
chromePath = ""               # Chrome binary for app windows (empty = auto-detect)
`
}
