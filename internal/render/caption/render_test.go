package caption

import (
	"regexp"
	"strings"
	"testing"
)

var stripANSIForTest = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestText_PlainPassthrough(t *testing.T) {
	if got := Text("  sunset over the bay  "); got != "sunset over the bay" {
		t.Fatalf("unexpected plain text: %q", got)
	}
	if got := Text(""); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestText_ConvertsMarkup(t *testing.T) {
	raw := `<p>Morning run with <a href="https://example.com/u/ana">@ana</a> &amp; friends</p><p>Day 3<br>#running <a href="/tags/fit">#fit</a></p><script>alert(1)</script>`
	got := Text(raw)
	want := "Morning run with @ana & friends\nDay 3\n#running #fit"
	if got != want {
		t.Fatalf("unexpected text:\n got %q\nwant %q", got, want)
	}
}

func TestText_LinkWithLabel(t *testing.T) {
	got := Text(`Full cut <a href="https://example.com/full">here</a>`)
	if got != "Full cut here (https://example.com/full)" {
		t.Fatalf("unexpected link rendering: %q", got)
	}
}

func TestTags_OrderedAndDeduplicated(t *testing.T) {
	got := Tags(`#Cats are great. #dogs too! #cats again @mention`)
	if strings.Join(got, ",") != "#Cats,#dogs" {
		t.Fatalf("unexpected tags: %v", got)
	}
}

func TestLines_WrapsAndStylesTags(t *testing.T) {
	lines := Lines("a long caption about #travel and @friends in the mountains", 20)
	if len(lines) < 3 {
		t.Fatalf("expected wrapped caption, got %v", lines)
	}
	plain := stripANSIForTest.ReplaceAllString(strings.Join(lines, "\n"), "")
	for _, line := range strings.Split(plain, "\n") {
		if len([]rune(line)) > 20 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if !strings.Contains(plain, "#travel") || !strings.Contains(plain, "@friends") {
		t.Fatalf("expected tags preserved, got %q", plain)
	}
}

func TestLinesWithOptions_MaxLines(t *testing.T) {
	lines := LinesWithOptions("one two three four five six", 4, Options{MaxLines: 2})
	if len(lines) != 3 || lines[2] != "…" {
		t.Fatalf("expected truncation marker, got %v", lines)
	}
}

func TestWrapText_SplitsLongRunes(t *testing.T) {
	got := wrapText("ñññññññ", 3)
	if strings.Join(got, "|") != "ñññ|ñññ|ñ" {
		t.Fatalf("unexpected split: %v", got)
	}
}
