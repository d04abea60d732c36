package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Patch.Marker != "login-ghost" {
		t.Errorf("expected default marker %q, got %q", "login-ghost", cfg.Patch.Marker)
	}
	if cfg.Patch.Lookahead != 100 {
		t.Errorf("expected default lookahead 100, got %d", cfg.Patch.Lookahead)
	}
	if cfg.Patch.BackupPrefix != "backup_" {
		t.Errorf("expected default backup prefix %q, got %q", "backup_", cfg.Patch.BackupPrefix)
	}
	if cfg.Patch.Finder != FinderRegex {
		t.Errorf("expected default finder %q, got %q", FinderRegex, cfg.Patch.Finder)
	}
	if cfg.Serve.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Serve.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.sitekit.yml")

	original := DefaultConfig()
	original.Dir = "public"
	original.Patch.Marker = "signin-btn"
	original.Patch.Finder = FinderHTML
	original.Patch.InsertAfter = InsertAfterSpan
	original.Patch.Exclude = []string{"drafts/**", "old-*.html"}
	original.Serve.Port = 9000

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Dir != original.Dir {
		t.Errorf("dir: got %q, want %q", loaded.Dir, original.Dir)
	}
	if loaded.Patch.Marker != original.Patch.Marker {
		t.Errorf("marker: got %q, want %q", loaded.Patch.Marker, original.Patch.Marker)
	}
	if loaded.Patch.Finder != original.Patch.Finder {
		t.Errorf("finder: got %q, want %q", loaded.Patch.Finder, original.Patch.Finder)
	}
	if loaded.Patch.InsertAfter != original.Patch.InsertAfter {
		t.Errorf("insert_after: got %q, want %q", loaded.Patch.InsertAfter, original.Patch.InsertAfter)
	}
	if loaded.Patch.Icon != original.Patch.Icon {
		t.Errorf("icon did not round-trip:\n got: %q\nwant: %q", loaded.Patch.Icon, original.Patch.Icon)
	}
	if loaded.Patch.Indent != original.Patch.Indent {
		t.Errorf("indent: got %q, want %q", loaded.Patch.Indent, original.Patch.Indent)
	}
	if loaded.Serve.Port != original.Serve.Port {
		t.Errorf("port: got %d, want %d", loaded.Serve.Port, original.Serve.Port)
	}
	if len(loaded.Patch.Exclude) != len(original.Patch.Exclude) {
		t.Fatalf("exclude length: got %d, want %d", len(loaded.Patch.Exclude), len(original.Patch.Exclude))
	}
	for i, v := range loaded.Patch.Exclude {
		if v != original.Patch.Exclude[i] {
			t.Errorf("exclude[%d]: got %q, want %q", i, v, original.Patch.Exclude[i])
		}
	}
}

func TestSaveQuotesEdgeWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippets.yml")

	cfg := DefaultConfig()
	cfg.Patch.Icon = "\n  <svg viewBox=\"0 0 1 1\">\n  </svg>\n"
	cfg.Patch.Indent = "\n\t"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `icon: "\n  <svg`) {
		t.Errorf("icon should be written double-quoted:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Patch.Icon != cfg.Patch.Icon {
		t.Errorf("icon: got %q, want %q", loaded.Patch.Icon, cfg.Patch.Icon)
	}
	if loaded.Patch.Indent != cfg.Patch.Indent {
		t.Errorf("indent: got %q, want %q", loaded.Patch.Indent, cfg.Patch.Indent)
	}
	if loaded.Patch.Marker != "login-ghost" {
		t.Errorf("marker: got %q", loaded.Patch.Marker)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Patch.Marker != "login-ghost" {
		t.Errorf("expected default marker, got %q", cfg.Patch.Marker)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("SITEKIT_PATCH_BACKUP_PREFIX", "bak_")
	t.Setenv("SITEKIT_SERVE_PORT", "9123")
	t.Setenv("SITEKIT_DIR", "www")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Patch.BackupPrefix != "bak_" {
		t.Errorf("env override failed: got %q, want %q", loaded.Patch.BackupPrefix, "bak_")
	}
	if loaded.Serve.Port != 9123 {
		t.Errorf("env override failed: got %d, want 9123", loaded.Serve.Port)
	}
	if loaded.Dir != "www" {
		t.Errorf("env override failed: got %q, want %q", loaded.Dir, "www")
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SITEKIT_DIR", "dir"},
		{"SITEKIT_PATCH_MARKER", "patch.marker"},
		{"SITEKIT_PATCH_INSERT_AFTER", "patch.insert_after"},
		{"SITEKIT_SERVE_NO_CACHE", "serve.no_cache"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Dir = "" }},
		{"empty marker", func(c *Config) { c.Patch.Marker = "  " }},
		{"no icon", func(c *Config) { c.Patch.Icon = "" }},
		{"zero lookahead", func(c *Config) { c.Patch.Lookahead = 0 }},
		{"empty backup prefix", func(c *Config) { c.Patch.BackupPrefix = "" }},
		{"unknown finder", func(c *Config) { c.Patch.Finder = "xpath" }},
		{"unknown insert mode", func(c *Config) { c.Patch.InsertAfter = "button" }},
		{"port too large", func(c *Config) { c.Serve.Port = 70000 }},
		{"negative delay", func(c *Config) { c.Serve.OpenDelayMS = -1 }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestResolveIcon(t *testing.T) {
	p := DefaultConfig().Patch
	icon, err := p.ResolveIcon()
	if err != nil {
		t.Fatalf("ResolveIcon: %v", err)
	}
	if icon != DefaultIcon {
		t.Error("expected inline icon when icon_file is unset")
	}

	path := filepath.Join(t.TempDir(), "icon.svg")
	if err := os.WriteFile(path, []byte(`<svg viewBox="0 0 1 1"></svg>`), 0644); err != nil {
		t.Fatal(err)
	}
	p.IconFile = path
	icon, err = p.ResolveIcon()
	if err != nil {
		t.Fatalf("ResolveIcon: %v", err)
	}
	if icon != `<svg viewBox="0 0 1 1"></svg>` {
		t.Errorf("got %q, want file contents", icon)
	}

	p.IconFile = filepath.Join(t.TempDir(), "missing.svg")
	if _, err := p.ResolveIcon(); err == nil {
		t.Error("expected error for missing icon file")
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"drafts/**", []string{"drafts/**"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
