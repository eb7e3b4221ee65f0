package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAddr, EnvTheme, EnvCORSOrigins, EnvExportName} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{"dark", ThemeDark, false},
		{" Dark ", ThemeDark, false},
		{"", "", true},
		{"solarized", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseTheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidTheme) {
			t.Errorf("ParseTheme(%q) code = %s, want INVALID_THEME", tt.in, errors.CodeOf(err))
		}
		if got != tt.want {
			t.Errorf("ParseTheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThemeToggle(t *testing.T) {
	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle should swap light and dark")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := Default()
	if cfg.Addr != want.Addr || cfg.Theme != want.Theme || cfg.ExportName != want.ExportName {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
addr = "0.0.0.0:9000"
theme = "dark"
cors_origins = ["https://a.example"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != "0.0.0.0:9000" || cfg.Theme != ThemeDark {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"https://a.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.ExportName != "mindmap.json" {
		t.Errorf("ExportName = %q, want default", cfg.ExportName)
	}

	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvTheme, "light")
	t.Setenv(EnvCORSOrigins, "https://b.example, https://c.example,")
	t.Setenv(EnvExportName, "notes.json")

	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.Theme != ThemeLight || cfg.ExportName != "notes.json" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"https://b.example", "https://c.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
		code errors.Code
	}{
		{"malformed toml", "theme = ", nil, errors.ErrCodeInvalidInput},
		{"bad theme in file", `theme = "blue"`, nil, errors.ErrCodeInvalidTheme},
		{"bad theme in env", "", map[string]string{EnvTheme: "blue"}, errors.ErrCodeInvalidTheme},
		{"bad export name", "", map[string]string{EnvExportName: "../x.json"}, errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.file))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestSave(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `addr = "0.0.0.0:9000"`)

	cfg := Default()
	cfg.Theme = ThemeDark
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), `addr = "0.0.0.0:9000"`) {
		t.Errorf("Save() dropped existing keys:\n%s", data)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got.Theme != ThemeDark || got.Addr != "0.0.0.0:9000" {
		t.Errorf("reloaded = %+v", got)
	}
}

func TestSaveCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mindmap", "config.toml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}
