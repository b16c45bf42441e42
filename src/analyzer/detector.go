package analyzer

import (
	"sort"
	"strings"
)

// MaxIndicators caps how many distinct phrases the suggestion panel shows.
const MaxIndicators = 5

// Span is a half-open [Start, End) byte range of content matching a phrase.
type Span struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Phrase string `json:"phrase"`
}

// Segment is one fragment of highlighted content. Concatenating the Text of
// every segment in order reproduces the input exactly.
type Segment struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
}

// FindSpans locates every case-insensitive occurrence of every scope-creep
// phrase in content and resolves overlaps: spans are ordered by start and a
// span starting before the previous kept span's end is discarded
// (first-match-wins).
func FindSpans(content string, phrases []string) []Span {
	lower := strings.ToLower(content)

	var all []Span
	for order, phrase := range phrases {
		p := strings.ToLower(phrase)
		if p == "" {
			continue
		}
		for from := 0; ; {
			i := strings.Index(lower[from:], p)
			if i < 0 {
				break
			}
			start := from + i
			all = append(all, Span{Start: start, End: start + len(p), Phrase: phrases[order]})
			from = start + 1
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		// same start: prefer the longer phrase so "can you also" beats "also"
		return all[i].End > all[j].End
	})

	kept := all[:0]
	lastEnd := 0
	for _, s := range all {
		if s.Start < lastEnd {
			continue
		}
		kept = append(kept, s)
		lastEnd = s.End
	}
	return kept
}

// Highlight splits content into matched and unmatched segments using the
// resolved spans. Never fails; content without matches comes back as a
// single unmatched segment.
func Highlight(content string, phrases []string) []Segment {
	spans := FindSpans(content, phrases)
	if len(spans) == 0 {
		if content == "" {
			return nil
		}
		return []Segment{{Text: content}}
	}

	var segs []Segment
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			segs = append(segs, Segment{Text: content[pos:s.Start]})
		}
		segs = append(segs, Segment{Text: content[s.Start:s.End], Matched: true})
		pos = s.End
	}
	if pos < len(content) {
		segs = append(segs, Segment{Text: content[pos:]})
	}
	return segs
}

// findPhrases returns the phrases present in content by case-insensitive
// substring match, in list order.
func findPhrases(content string, phrases []string) []string {
	normalized := normalize(content)
	var found []string
	for _, phrase := range phrases {
		if strings.Contains(normalized, strings.ToLower(phrase)) {
			found = append(found, phrase)
		}
	}
	return found
}

// Indicators returns up to MaxIndicators distinct scope-creep phrases
// present in content, in phrase-list order.
func Indicators(content string, phrases []string) []string {
	found := findPhrases(content, phrases)
	if len(found) > MaxIndicators {
		found = found[:MaxIndicators]
	}
	return found
}

// normalize lowercases and collapses runs of whitespace to single spaces.
func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
