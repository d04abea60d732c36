package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitekit/internal/config"
	"github.com/ziadkadry99/sitekit/internal/patcher"
	"github.com/ziadkadry99/sitekit/internal/progress"
)

var patchCmd = &cobra.Command{
	Use:   "patch [dir]",
	Short: "Add the login icon to buttons that are missing it",
	Long: `Scans the site's HTML files for login buttons without an SVG icon and
inserts one. Without --apply this is a dry run that only reports what would
change. With --apply, each changed file is backed up next to itself as
backup_<YYYYMMDD_HHMMSS>_<name> before it is replaced.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().Bool("apply", false, "write changes (default is a dry run)")
	patchCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	patchCmd.Flags().String("marker", "", "class token marking login buttons (overrides config)")
	patchCmd.Flags().String("finder", "", "button finder: regex or html (overrides config)")
	patchCmd.Flags().String("insert-after", "", "insert after the anchor or span tag (overrides config)")
	patchCmd.Flags().Bool("recursive", false, "scan subdirectories too")
	patchCmd.Flags().Bool("quiet", false, "hide the progress bar")
	rootCmd.AddCommand(patchCmd)
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	if flagChanged(cmd, "marker") {
		cfg.Patch.Marker, _ = cmd.Flags().GetString("marker")
	}
	if flagChanged(cmd, "finder") {
		finder, _ := cmd.Flags().GetString("finder")
		cfg.Patch.Finder = config.FinderKind(finder)
	}
	if flagChanged(cmd, "insert-after") {
		mode, _ := cmd.Flags().GetString("insert-after")
		cfg.Patch.InsertAfter = config.InsertMode(mode)
	}
	if flagChanged(cmd, "recursive") {
		cfg.Patch.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	if err := validate(cfg); err != nil {
		return err
	}

	apply, _ := cmd.Flags().GetBool("apply")
	yes, _ := cmd.Flags().GetBool("yes")
	quiet, _ := cmd.Flags().GetBool("quiet")

	p, err := patcher.New(cfg.Patch)
	if err != nil {
		return fmt.Errorf("creating patcher: %w", err)
	}
	out := cmd.OutOrStdout()
	p.Out = out
	p.Reporter = progress.NewReporter(quiet)

	fmt.Fprintln(out, "Adding login SVG icons to buttons...")

	plan, err := p.Plan(cfg.Dir)
	if err != nil {
		return err
	}

	pending := plan.Pending()
	if !apply {
		patcher.PrintSummary(out, plan.Summary())
		if len(pending) > 0 {
			fmt.Fprintln(out, "Dry run: no files were changed. Re-run with --apply to write them.")
		}
		return nil
	}

	if len(pending) > 0 && !yes {
		fmt.Fprintf(out, "\nAbout to rewrite:\n  %s\n", strings.Join(pending, "\n  "))
		ok, err := confirm(fmt.Sprintf("Rewrite %d file(s) (backups are kept)", len(pending)))
		if err != nil {
			return fmt.Errorf("confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "Aborted; no files were changed.")
			return nil
		}
	}

	patcher.PrintSummary(out, p.Apply(plan))
	return nil
}
