package analyzer_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/scopetrack/scopetrack-go/src/analyzer"
)

func TestFindSpansOverlapResolution(t *testing.T) {
	content := "Can you also add a quick addition? Thanks!"
	spans := analyzer.FindSpans(content, analyzer.DefaultScopeCreepPhrases)

	// "can you also" starts at 0 and swallows the bare "also"; "quick
	// addition" follows without overlap.
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].Phrase != "can you also" || spans[0].Start != 0 {
		t.Fatalf("expected 'can you also' at 0, got %+v", spans[0])
	}
	if spans[1].Phrase != "quick addition" {
		t.Fatalf("expected 'quick addition', got %+v", spans[1])
	}
	if content[spans[1].Start:spans[1].End] != "quick addition" {
		t.Fatalf("span does not cover its phrase: %+v", spans[1])
	}
}

func TestFindSpansFirstMatchWins(t *testing.T) {
	// "while you're at it" and "also" overlap nothing; a second "also"
	// inside an already-kept span is dropped.
	content := "while you're at it, can you also fix this"
	spans := analyzer.FindSpans(content, analyzer.DefaultScopeCreepPhrases)

	for i := 1; i < len(spans); i++ {
		if spans[i].Start < spans[i-1].End {
			t.Fatalf("spans overlap: %+v then %+v", spans[i-1], spans[i])
		}
	}
}

func TestFindSpansCaseInsensitive(t *testing.T) {
	spans := analyzer.FindSpans("ALSO do this", []string{"also"})
	if len(spans) != 1 || spans[0].Start != 0 || spans[0].End != 4 {
		t.Fatalf("expected one span [0,4), got %+v", spans)
	}
}

func TestHighlightRoundTrip(t *testing.T) {
	cases := []string{
		"Can you also add a quick addition? Thanks!",
		"no indicators in this sentence",
		"also",
		"prefix also suffix also end",
		"",
	}
	for _, content := range cases {
		segs := analyzer.Highlight(content, analyzer.DefaultScopeCreepPhrases)
		var sb strings.Builder
		for _, s := range segs {
			sb.WriteString(s.Text)
		}
		if sb.String() != content {
			t.Fatalf("segments do not reassemble input: %q -> %q", content, sb.String())
		}
	}
}

func TestHighlightMarksMatches(t *testing.T) {
	segs := analyzer.Highlight("please also review", []string{"also"})
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(segs), segs)
	}
	if segs[0].Matched || !segs[1].Matched || segs[2].Matched {
		t.Fatalf("wrong matched flags: %+v", segs)
	}
	if segs[1].Text != "also" {
		t.Fatalf("expected matched segment 'also', got %q", segs[1].Text)
	}
}

func TestIndicatorsReportsPhrasePresence(t *testing.T) {
	// Indicators are phrase presence, not resolved spans: "also" still
	// counts even though "can you also" wins the highlight.
	got := analyzer.Indicators("Can you also add a quick addition? Thanks!", analyzer.DefaultScopeCreepPhrases)
	want := []string{"also", "quick addition", "can you also"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestIndicatorsCap(t *testing.T) {
	content := "also additionally one more thing quick addition while you're at it real quick easy change"
	got := analyzer.Indicators(content, analyzer.DefaultScopeCreepPhrases)
	if len(got) != analyzer.MaxIndicators {
		t.Fatalf("expected cap of %d, got %d: %v", analyzer.MaxIndicators, len(got), got)
	}
	// list order is preserved under the cap
	if got[0] != "also" || got[1] != "additionally" {
		t.Fatalf("expected list-order prefix, got %v", got)
	}
}

func TestIndicatorsEmpty(t *testing.T) {
	if got := analyzer.Indicators("a perfectly ordinary message", analyzer.DefaultScopeCreepPhrases); len(got) != 0 {
		t.Fatalf("expected no indicators, got %v", got)
	}
}
