package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sitekit",
	Short: "Maintenance tools for a static marketing site",
	Long: `sitekit keeps a static HTML site in shape: it patches login buttons
that are missing their icon (with timestamped backups) and serves the
site locally with development-friendly headers.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".sitekit.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
