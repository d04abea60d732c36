package patcher

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/sitekit/internal/config"
)

const simpleButton = `<a href="/login" class="btn login-ghost login-link">
                        <span class="label">Log in</span>
                    </a>`

func expectedMatch(content, anchor, span string) Match {
	anchorEnd := strings.Index(content, anchor) + len(anchor)
	spanStart := strings.Index(content[anchorEnd:], span) + anchorEnd
	return Match{AnchorEnd: anchorEnd, SpanStart: spanStart, SpanEnd: spanStart + len(span)}
}

func TestRegexFinder_SingleButton(t *testing.T) {
	f := NewRegexFinder("login-ghost")
	got := f.FindInsertionPoints(simpleButton)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	want := expectedMatch(simpleButton, `class="btn login-ghost login-link">`, `<span class="label">`)
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestRegexFinder_NoMatch(t *testing.T) {
	tests := map[string]string{
		"other class":          `<a class="btn primary"><span>Go</span></a>`,
		"no span":              `<a class="login-ghost">Log in</a>`,
		"text before span":     `<a class="login-ghost">Log <span>in</span></a>`,
		"single quoted class":  `<a class='login-ghost'><span>Log in</span></a>`,
		"marker outside class": `<a data-x="login-ghost"><span>Log in</span></a>`,
	}
	f := NewRegexFinder("login-ghost")
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if got := f.FindInsertionPoints(content); len(got) != 0 {
				t.Errorf("expected no match, got %+v", got)
			}
		})
	}
}

func TestRegexFinder_MultiLineTags(t *testing.T) {
	content := `<a
    href="/login"
    class="btn login-ghost"
>

    <span
        class="label">Log in</span></a>`
	got := NewRegexFinder("login-ghost").FindInsertionPoints(content)
	if len(got) != 1 {
		t.Fatalf("expected 1 match across lines, got %d", len(got))
	}
	want := expectedMatch(content, "\n>", "<span\n        class=\"label\">")
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestRegexFinder_QuotesMarker(t *testing.T) {
	f := NewRegexFinder("a.b")
	if got := f.FindInsertionPoints(`<a class="axb"><span>x</span></a>`); len(got) != 0 {
		t.Errorf("marker must match literally, got %+v", got)
	}
	if got := f.FindInsertionPoints(`<a class="a.b"><span>x</span></a>`); len(got) != 1 {
		t.Errorf("expected literal marker match, got %+v", got)
	}
}

func TestRegexFinder_LeftToRight(t *testing.T) {
	content := "<nav>" + simpleButton + "\n<footer>" + simpleButton + "</footer></nav>"
	got := NewRegexFinder("login-ghost").FindInsertionPoints(content)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].AnchorEnd >= got[1].AnchorEnd {
		t.Errorf("matches not in document order: %+v", got)
	}
}

func TestTokenFinder_AgreesWithRegex(t *testing.T) {
	content := "<!DOCTYPE html><html><body>" + simpleButton + "<p>x</p>" + simpleButton + "</body></html>"

	re := NewRegexFinder("login-ghost").FindInsertionPoints(content)
	tok := (&TokenFinder{Marker: "login-ghost"}).FindInsertionPoints(content)

	if len(re) != len(tok) {
		t.Fatalf("regex found %d, tokenizer found %d", len(re), len(tok))
	}
	for i := range re {
		if re[i] != tok[i] {
			t.Errorf("match %d: regex %+v, tokenizer %+v", i, re[i], tok[i])
		}
	}
}

func TestTokenFinder_TolerantMarkup(t *testing.T) {
	anchor := "<a\n   href='/login'\n   class='login-ghost login-link'>"
	span := "<span\n class='label'>"
	content := "<div>" + anchor + "\n\t" + span + "Log in</span></a></div>"

	got := (&TokenFinder{Marker: "login-ghost"}).FindInsertionPoints(content)
	if len(got) != 1 {
		t.Fatalf("expected 1 match, got %d", len(got))
	}
	want := expectedMatch(content, anchor, span)
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
}

func TestTokenFinder_Interrupted(t *testing.T) {
	tests := map[string]string{
		"comment between": `<a class="login-ghost"><!-- icon --><span>x</span></a>`,
		"text between":    `<a class="login-ghost">Log <span>in</span></a>`,
		"element between": `<a class="login-ghost"><i></i><span>x</span></a>`,
		"not an anchor":   `<button class="login-ghost"><span>x</span></button>`,
	}
	f := &TokenFinder{Marker: "login-ghost"}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if got := f.FindInsertionPoints(content); len(got) != 0 {
				t.Errorf("expected no match, got %+v", got)
			}
		})
	}
}

func TestNewFinder(t *testing.T) {
	if f, err := NewFinder(config.FinderRegex, "m"); err != nil {
		t.Fatal(err)
	} else if _, ok := f.(*RegexFinder); !ok {
		t.Errorf("expected *RegexFinder, got %T", f)
	}
	if f, err := NewFinder(config.FinderHTML, "m"); err != nil {
		t.Fatal(err)
	} else if _, ok := f.(*TokenFinder); !ok {
		t.Errorf("expected *TokenFinder, got %T", f)
	}
	if _, err := NewFinder("xpath", "m"); err == nil {
		t.Error("expected error for unknown finder")
	}
}

func TestMatchOffset(t *testing.T) {
	m := Match{AnchorEnd: 10, SpanStart: 15, SpanEnd: 21}
	if got := m.Offset(config.InsertAfterAnchor); got != 10 {
		t.Errorf("anchor offset = %d, want 10", got)
	}
	if got := m.Offset(config.InsertAfterSpan); got != 21 {
		t.Errorf("span offset = %d, want 21", got)
	}
}
