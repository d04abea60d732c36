package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectSiteDir returns the first directory among a few common static-site
// locations that contains an index.html, or "." when none does.
func detectSiteDir() string {
	for _, dir := range []string{".", "public", "site", "www", "docs"} {
		if matches, _ := filepath.Glob(filepath.Join(dir, "index.html")); len(matches) > 0 {
			return dir
		}
	}
	return "."
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to sitekit! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site directory.
	dirPrompt := promptui.Prompt{
		Label:   "Directory containing the site's HTML files",
		Default: detectSiteDir(),
	}
	dir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}
	cfg.Dir = dir

	// 2. Marker class.
	markerPrompt := promptui.Prompt{
		Label:   "Class token marking login buttons",
		Default: cfg.Patch.Marker,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("marker cannot be empty")
			}
			return nil
		},
	}
	marker, err := markerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("marker: %w", err)
	}
	cfg.Patch.Marker = strings.TrimSpace(marker)

	// 3. Finder.
	finderPrompt := promptui.Select{
		Label: "How should buttons be located",
		Items: []string{
			"regex — fast pattern match; class must be double-quoted, <span> must follow <a> directly",
			"html  — tokenizer, also accepts single-quoted or unquoted class attributes",
		},
	}
	finderIdx, _, err := finderPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("finder selection: %w", err)
	}
	cfg.Patch.Finder = []FinderKind{FinderRegex, FinderHTML}[finderIdx]

	// 4. Insertion point.
	insertPrompt := promptui.Select{
		Label: "Where should the icon go",
		Items: []string{
			"anchor — before the label span",
			"span   — inside the label span",
		},
	}
	insertIdx, _, err := insertPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("insert selection: %w", err)
	}
	cfg.Patch.InsertAfter = []InsertMode{InsertAfterAnchor, InsertAfterSpan}[insertIdx]

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Exclude patterns (comma-separated globs, leave blank for none)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	cfg.Patch.Exclude = splitAndTrim(excludeStr)

	// 6. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Dev server port",
		Default: strconv.Itoa(cfg.Serve.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("port must be a number between 0 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Serve.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
