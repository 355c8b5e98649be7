// Package config provides configuration loading for wrd using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Editor settings
type Editor struct {
	TabStop       int `toml:"tabStop"`       // spaces per tab on load and on Tab
	ReadTimeoutMs int `toml:"readTimeoutMs"` // raw-mode read timeout
}

// Display settings
type Display struct {
	Filler         string `toml:"filler"`       // glyph for rows past the end of the buffer
	BannerOffset   int    `toml:"bannerOffset"` // banner row is rows/3 + offset
	MessageSeconds int    `toml:"messageSeconds"`
}

// Keybindings holds single-byte bindings for the control commands.
type Keybindings struct {
	Quit      string `toml:"quit"`
	Save      string `toml:"save"`
	ClearLine string `toml:"clearLine"`
}

// Log settings
type Log struct {
	Enabled bool   `toml:"enabled"`
	File    string `toml:"file"` // empty means wrd.log in the config directory
}

// Config is the main configuration struct
type Config struct {
	Editor      Editor      `toml:"editor"`
	Display     Display     `toml:"display"`
	Keybindings Keybindings `toml:"keybindings"`
	Log         Log         `toml:"log"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Editor: Editor{
			TabStop:       4,
			ReadTimeoutMs: 100,
		},
		Display: Display{
			Filler:         ".",
			BannerOffset:   10,
			MessageSeconds: 5,
		},
		Keybindings: Keybindings{
			Quit:      "\x11", // Ctrl-q
			Save:      "\x13", // Ctrl-s
			ClearLine: "\x15", // Ctrl-u
		},
	}
}

// ReadTimeout returns the raw-mode read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Editor.ReadTimeoutMs) * time.Millisecond
}

// MessageTTL returns how long status messages stay on screen.
func (c *Config) MessageTTL() time.Duration {
	return time.Duration(c.Display.MessageSeconds) * time.Second
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wrd"), nil
}

// Path returns the path to the user's config file.
func Path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the log file to use, or "" if logging is off.
func (c *Config) LogPath() string {
	if !c.Log.Enabled {
		return ""
	}
	if c.Log.File != "" {
		return c.Log.File
	}
	dir, err := configDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wrd.log")
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile loads the config at path over the defaults. A missing file is not
// an error.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	userCfg, err := loadFromTOML(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	cfg = merge(cfg, userCfg)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// loadFromTOML loads a TOML config file and returns the config.
func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config TOML: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Editor.TabStop < 0 || c.Editor.TabStop > 16 {
		return fmt.Errorf("editor.tabStop %d out of range 0..16", c.Editor.TabStop)
	}
	if c.Editor.ReadTimeoutMs < 0 {
		return fmt.Errorf("editor.readTimeoutMs must not be negative")
	}
	seen := map[byte]string{}
	for _, kb := range []struct{ name, binding string }{
		{"quit", c.Keybindings.Quit},
		{"save", c.Keybindings.Save},
		{"clearLine", c.Keybindings.ClearLine},
	} {
		if len(kb.binding) > 1 {
			return fmt.Errorf("keybindings.%s must be a single byte, got %q", kb.name, kb.binding)
		}
		b, ok := Byte(kb.binding)
		if !ok {
			continue
		}
		if reservedKey(b) {
			return fmt.Errorf("keybindings.%s: %q is decoded as Enter, Escape or Backspace and cannot be bound", kb.name, kb.binding)
		}
		if other, dup := seen[b]; dup {
			return fmt.Errorf("keybindings.%s: %q is already bound to %s", kb.name, kb.binding, other)
		}
		seen[b] = kb.name
	}
	return nil
}

// reservedKey reports whether the key decoder turns b into a named key
// instead of a plain byte.
func reservedKey(b byte) bool {
	return b == '\r' || b == 0x1b || b == 0x7f
}

// merge layers user config on top of defaults.
// Only non-zero values from user config override defaults.
func merge(defaults, user *Config) *Config {
	result := *defaults

	// Editor
	if user.Editor.TabStop != 0 {
		result.Editor.TabStop = user.Editor.TabStop
	}
	if user.Editor.ReadTimeoutMs != 0 {
		result.Editor.ReadTimeoutMs = user.Editor.ReadTimeoutMs
	}

	// Display
	if user.Display.Filler != "" {
		result.Display.Filler = user.Display.Filler
	}
	if user.Display.BannerOffset != 0 {
		result.Display.BannerOffset = user.Display.BannerOffset
	}
	if user.Display.MessageSeconds != 0 {
		result.Display.MessageSeconds = user.Display.MessageSeconds
	}

	// Keybindings - override each if set
	mergeKeybinding(&result.Keybindings.Quit, user.Keybindings.Quit)
	mergeKeybinding(&result.Keybindings.Save, user.Keybindings.Save)
	mergeKeybinding(&result.Keybindings.ClearLine, user.Keybindings.ClearLine)

	// Log
	if user.Log.Enabled {
		result.Log.Enabled = true
	}
	if user.Log.File != "" {
		result.Log.File = user.Log.File
	}

	return &result
}

func mergeKeybinding(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// Byte returns the single byte of a binding, false if it is unset.
func Byte(binding string) (byte, bool) {
	if len(binding) != 1 {
		return 0, false
	}
	return binding[0], true
}
