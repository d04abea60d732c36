package patcher

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/sitekit/internal/config"
)

// Match is one login button located in a document. All offsets are byte
// offsets into the original, unmodified content.
type Match struct {
	AnchorEnd int // just past the <a ...> opening tag
	SpanStart int // start of the nested <span ...> tag
	SpanEnd   int // just past the nested <span ...> tag
}

// Offset returns where the icon is spliced for the given mode.
func (m Match) Offset(mode config.InsertMode) int {
	if mode == config.InsertAfterSpan {
		return m.SpanEnd
	}
	return m.AnchorEnd
}

// Finder locates insertion points. Implementations return non-overlapping
// matches in left-to-right order.
type Finder interface {
	FindInsertionPoints(content string) []Match
}

// NewFinder returns the Finder for kind, matching anchors whose class
// attribute contains marker.
func NewFinder(kind config.FinderKind, marker string) (Finder, error) {
	switch kind {
	case config.FinderRegex, "":
		return NewRegexFinder(marker), nil
	case config.FinderHTML:
		return &TokenFinder{Marker: marker}, nil
	default:
		return nil, fmt.Errorf("unknown finder %q", kind)
	}
}

// RegexFinder matches an anchor carrying the marker class followed, after
// optional whitespace, by a span opening tag. It does not understand
// single-quoted attributes or class attributes split by other markup.
type RegexFinder struct {
	re *regexp.Regexp
}

// NewRegexFinder compiles the button pattern for marker.
func NewRegexFinder(marker string) *RegexFinder {
	pattern := `(<a[^>]*class="[^"]*` + regexp.QuoteMeta(marker) + `[^"]*"[^>]*>)\s*(<span[^>]*>)`
	return &RegexFinder{re: regexp.MustCompile(pattern)}
}

func (f *RegexFinder) FindInsertionPoints(content string) []Match {
	locs := f.re.FindAllStringSubmatchIndex(content, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		// loc[2:4] is the anchor group, loc[4:6] the span group.
		matches = append(matches, Match{
			AnchorEnd: loc[3],
			SpanStart: loc[4],
			SpanEnd:   loc[5],
		})
	}
	return matches
}

// TokenFinder walks the document with the HTML tokenizer. Offsets are
// accumulated from each token's raw bytes, so the document is never
// re-serialised.
type TokenFinder struct {
	Marker string
}

func (f *TokenFinder) FindInsertionPoints(content string) []Match {
	var matches []Match

	z := html.NewTokenizer(strings.NewReader(content))
	pos := 0
	anchorEnd := -1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return matches
		}

		start := pos
		raw := z.Raw()
		pos += len(raw)

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.A && tt == html.StartTagToken && f.hasMarker(tok):
				anchorEnd = pos
			case tok.DataAtom == atom.Span && anchorEnd >= 0:
				matches = append(matches, Match{AnchorEnd: anchorEnd, SpanStart: start, SpanEnd: pos})
				anchorEnd = -1
			default:
				anchorEnd = -1
			}
		case html.TextToken:
			if strings.TrimSpace(string(raw)) != "" {
				anchorEnd = -1
			}
		default:
			anchorEnd = -1
		}
	}
}

func (f *TokenFinder) hasMarker(tok html.Token) bool {
	for _, a := range tok.Attr {
		if a.Key == "class" && strings.Contains(a.Val, f.Marker) {
			return true
		}
	}
	return false
}
