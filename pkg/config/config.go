// Package config resolves the settings shared by the mindmap commands.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults ([Default])
//  2. the TOML file at [DefaultPath] (or an explicit --config path)
//  3. environment variables, after a .env file in the working directory has
//     been loaded
//  4. command-line flags, applied by the CLI
//
// Only the theme is ever written back ([Save]), when the user toggles it in
// the terminal browser.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/mindmap/pkg/errors"
)

// Theme selects the color palette of the diagram and the terminal browser.
type Theme string

// Available themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme validates s as a theme name. Matching is case-insensitive.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want light or dark)", s)
}

// Environment variables read by [Load].
const (
	EnvAddr        = "MINDMAP_ADDR"
	EnvTheme       = "MINDMAP_THEME"
	EnvCORSOrigins = "MINDMAP_CORS_ORIGINS"
	EnvExportName  = "MINDMAP_EXPORT"
)

// Config holds the resolved settings.
type Config struct {
	Addr        string   `toml:"addr"`         // HTTP listen address for serve
	Theme       Theme    `toml:"theme"`        // Persisted color theme
	CORSOrigins []string `toml:"cors_origins"` // Allowed browser origins for the API
	ExportName  string   `toml:"export_name"`  // Default export file name
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:        "localhost:8080",
		Theme:       ThemeLight,
		CORSOrigins: []string{"http://localhost:3000"},
		ExportName:  "mindmap.json",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mindmap/config.toml or the platform
// equivalent.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mindmap", "config.toml"), nil
}

// Load resolves settings from defaults, the TOML file at path and the
// environment. An empty path means [DefaultPath]. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInternal, err, "locate config dir")
		}
		path = p
	}
	if err := cfg.mergeFile(path); err != nil {
		return cfg, err
	}

	_ = godotenv.Load()
	if err := cfg.mergeEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Addr = getEnv(EnvAddr, c.Addr)
	c.ExportName = getEnv(EnvExportName, c.ExportName)
	if v := os.Getenv(EnvCORSOrigins); v != "" {
		c.CORSOrigins = splitList(v)
	}
	if v := os.Getenv(EnvTheme); v != "" {
		t, err := ParseTheme(v)
		if err != nil {
			return err
		}
		c.Theme = t
	}
	return nil
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if _, err := ParseTheme(string(c.Theme)); err != nil {
		return err
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "listen address must not be empty")
	}
	return errors.ValidateExportName(c.ExportName)
}

// Save writes the persisted part of cfg (the theme) to path, keeping any
// other keys already in the file. An empty path means [DefaultPath].
func Save(path string, cfg Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "locate config dir")
		}
		path = p
	}

	stored := map[string]any{}
	if data, err := os.ReadFile(path); err == nil {
		if _, err := toml.Decode(string(data), &stored); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
		}
	}
	stored["theme"] = string(cfg.Theme)

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(stored); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write config %s", path)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
