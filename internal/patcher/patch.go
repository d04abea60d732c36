package patcher

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/sitekit/internal/config"
)

// Splicer inserts a snippet at each match that does not already carry an
// icon.
type Splicer struct {
	Snippet   string            // icon markup plus trailing indentation
	Lookahead int               // window size in characters after the anchor
	Mode      config.InsertMode // where the snippet goes
}

// HasIcon reports whether the lookahead characters following offset contain
// an SVG start tag or a viewBox attribute.
func (s Splicer) HasIcon(content string, offset int) bool {
	window := runeWindow(content[offset:], s.Lookahead)
	return strings.Contains(window, "<svg") || strings.Contains(window, "viewBox")
}

// PatchContent splices the snippet into content at every match without an
// existing icon and returns the new content with the number of insertions.
// Every icon check and offset refers to the original content; splicing runs
// from the highest offset down so earlier offsets stay valid.
func (s Splicer) PatchContent(content string, matches []Match) (string, int) {
	offsets := make([]int, 0, len(matches))
	for _, m := range matches {
		if s.HasIcon(content, m.AnchorEnd) {
			continue
		}
		// After a long span tag the anchor window can end before the
		// insertion point, so the span window is checked as well.
		if s.Mode == config.InsertAfterSpan && s.HasIcon(content, m.SpanEnd) {
			continue
		}
		offsets = append(offsets, m.Offset(s.Mode))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(offsets)))

	out := content
	for _, off := range offsets {
		out = out[:off] + s.Snippet + out[off:]
	}
	return out, len(offsets)
}

// runeWindow returns the first n characters of s.
func runeWindow(s string, n int) string {
	i := 0
	for count := 0; count < n && i < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}
