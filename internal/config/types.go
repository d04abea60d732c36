package config

// FinderKind selects how login buttons are located inside a document.
type FinderKind string

const (
	FinderRegex FinderKind = "regex"
	FinderHTML  FinderKind = "html"
)

// InsertMode controls where the icon is spliced relative to the button markup.
type InsertMode string

const (
	// InsertAfterAnchor places the icon right after the <a ...> opening tag.
	InsertAfterAnchor InsertMode = "anchor"
	// InsertAfterSpan places the icon right after the nested <span ...> tag.
	InsertAfterSpan InsertMode = "span"
)

// Config is the top-level sitekit configuration, corresponding to .sitekit.yml.
type Config struct {
	Dir   string      `yaml:"dir" koanf:"dir"`
	Patch PatchConfig `yaml:"patch" koanf:"patch"`
	Serve ServeConfig `yaml:"serve" koanf:"serve"`
}

// PatchConfig holds settings for the login icon patcher.
type PatchConfig struct {
	Marker       string     `yaml:"marker" koanf:"marker"`
	Require      string     `yaml:"require" koanf:"require"`
	Icon         string     `yaml:"icon" koanf:"icon"`
	IconFile     string     `yaml:"icon_file" koanf:"icon_file"`
	Indent       string     `yaml:"indent" koanf:"indent"`
	Lookahead    int        `yaml:"lookahead" koanf:"lookahead"`
	BackupPrefix string     `yaml:"backup_prefix" koanf:"backup_prefix"`
	Include      []string   `yaml:"include" koanf:"include"`
	Exclude      []string   `yaml:"exclude" koanf:"exclude"`
	Recursive    bool       `yaml:"recursive" koanf:"recursive"`
	Finder       FinderKind `yaml:"finder" koanf:"finder"`
	InsertAfter  InsertMode `yaml:"insert_after" koanf:"insert_after"`
}

// ServeConfig holds settings for the local development server.
type ServeConfig struct {
	Host         string `yaml:"host" koanf:"host"`
	Port         int    `yaml:"port" koanf:"port"`
	Open         bool   `yaml:"open" koanf:"open"`
	OpenDelayMS  int    `yaml:"open_delay_ms" koanf:"open_delay_ms"`
	CORS         bool   `yaml:"cors" koanf:"cors"`
	NoCache      bool   `yaml:"no_cache" koanf:"no_cache"`
	RequireIndex bool   `yaml:"require_index" koanf:"require_index"`
}
