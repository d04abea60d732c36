package patcher

import (
	"fmt"
	"io"
	"strings"
)

// PrintSummary writes the end-of-run report. It always prints, whether or
// not individual files failed.
func PrintSummary(w io.Writer, s Summary) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "Login Icon Update Summary:")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total files processed: %d\n", s.Processed)
	fmt.Fprintf(w, "Files updated: %d\n", len(s.Updated))
	if len(s.Updated) > 0 {
		fmt.Fprintln(w, "\nUpdated files:")
		for _, name := range s.Updated {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
	if len(s.Pending) > 0 {
		fmt.Fprintf(w, "\nFiles that would be updated (dry run): %d\n", len(s.Pending))
		for _, name := range s.Pending {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}
	if len(s.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors: %d\n", len(s.Errors))
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  - %v\n", e)
		}
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}
