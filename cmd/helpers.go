package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitekit/internal/config"
)

// loadConfig loads the config file, applies the positional directory
// argument if given, and validates the result.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `sitekit init` to create a config file", err)
	}
	if len(args) > 0 {
		cfg.Dir = args[0]
	}
	return cfg, nil
}

// validate checks cfg after flag overrides have been applied.
func validate(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using directory %s (config %s)\n", cfg.Dir, cfgFile)
	}
	return nil
}

// confirm asks a yes/no question. A "no" answer returns false without error.
func confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// flagChanged reports whether the user set name explicitly.
func flagChanged(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Changed(name)
}
