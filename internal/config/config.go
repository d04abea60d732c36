package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix namespaces environment overrides, e.g. SITEKIT_PATCH_MARKER.
const envPrefix = "SITEKIT_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SITEKIT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SITEKIT_PATCH_MARKER -> patch.marker, etc.
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps an environment variable name to a koanf key path. Only the
// section separator becomes a dot so keys like backup_prefix survive intact.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"patch_", "serve_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	var doc yamlv3.Node
	if err := doc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	quoteEdgeWhitespace(&doc)

	data, err := yamlv3.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// quoteEdgeWhitespace double-quotes every string scalar that starts or ends
// with whitespace. Block scalars drop a leading newline on the way back in,
// and the icon and indent snippets must survive Save and Load byte for byte.
func quoteEdgeWhitespace(n *yamlv3.Node) {
	if n.Kind == yamlv3.ScalarNode && n.ShortTag() == "!!str" && strings.TrimSpace(n.Value) != n.Value {
		n.Style = yamlv3.DoubleQuotedStyle
	}
	for _, child := range n.Content {
		quoteEdgeWhitespace(child)
	}
}

var validFinders = map[FinderKind]bool{
	FinderRegex: true,
	FinderHTML:  true,
}

var validInsertModes = map[InsertMode]bool{
	InsertAfterAnchor: true,
	InsertAfterSpan:   true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("dir is required")
	}

	p := c.Patch
	if strings.TrimSpace(p.Marker) == "" {
		return fmt.Errorf("patch.marker is required")
	}
	if p.Icon == "" && p.IconFile == "" {
		return fmt.Errorf("patch.icon or patch.icon_file is required")
	}
	if p.Lookahead < 1 {
		return fmt.Errorf("patch.lookahead must be at least 1")
	}
	if p.BackupPrefix == "" {
		return fmt.Errorf("patch.backup_prefix is required")
	}
	if !validFinders[p.Finder] {
		return fmt.Errorf("invalid patch.finder %q: must be one of regex, html", p.Finder)
	}
	if !validInsertModes[p.InsertAfter] {
		return fmt.Errorf("invalid patch.insert_after %q: must be one of anchor, span", p.InsertAfter)
	}

	s := c.Serve
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("serve.port %d out of range", s.Port)
	}
	if s.OpenDelayMS < 0 {
		return fmt.Errorf("serve.open_delay_ms must be non-negative")
	}

	return nil
}

// ResolveIcon returns the SVG snippet to insert. A configured icon_file wins
// over the inline icon.
func (p PatchConfig) ResolveIcon() (string, error) {
	if p.IconFile == "" {
		return p.Icon, nil
	}
	data, err := os.ReadFile(p.IconFile)
	if err != nil {
		return "", fmt.Errorf("reading icon file %s: %w", p.IconFile, err)
	}
	return string(data), nil
}
