package config

// DefaultIcon is the user-outline SVG inserted into login buttons.
const DefaultIcon = `
                        <svg viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2">
                            <path d="M20 21v-2a4 4 0 0 0-4-4H8a4 4 0 0 0-4 4v2"/>
                            <circle cx="12" cy="7" r="4"/>
                        </svg>`

// DefaultIndent follows the snippet so the original markup keeps its indentation.
const DefaultIndent = "\n                        "

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dir: ".",
		Patch: PatchConfig{
			Marker:       "login-ghost",
			Icon:         DefaultIcon,
			Indent:       DefaultIndent,
			Lookahead:    100,
			BackupPrefix: "backup_",
			Include:      []string{"*.html"},
			Finder:       FinderRegex,
			InsertAfter:  InsertAfterAnchor,
		},
		Serve: ServeConfig{
			Host:         "localhost",
			Port:         8080,
			OpenDelayMS:  1000,
			CORS:         true,
			NoCache:      true,
			RequireIndex: true,
		},
	}
}
