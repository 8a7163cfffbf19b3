// Package highlight wraps case-insensitive query matches in marker tags.
//
// The query is always matched literally. Text outside the markers is
// HTML-escaped, which keeps the encoding reversible and the output safe to
// render as markup.
package highlight

import (
	"html"
	"regexp"
	"strings"
)

const (
	OpenMark  = "<mark>"
	CloseMark = "</mark>"
)

// Segment is a contiguous run of text that either matched the query or not.
type Segment struct {
	Text  string
	Match bool
}

func matcher(query string) *regexp.Regexp {
	if query == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		// invalid UTF-8 in query
		return nil
	}
	return re
}

// Segments splits text into alternating matched and unmatched runs.
// Concatenating every Segment.Text yields text.
func Segments(text, query string) []Segment {
	if text == "" {
		return nil
	}
	re := matcher(query)
	if re == nil {
		return []Segment{{Text: text}}
	}

	var segs []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]]})
		}
		segs = append(segs, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}

// Highlight wraps every non-overlapping case-insensitive occurrence of query
// in text with OpenMark/CloseMark. Everything but the markers is
// HTML-escaped, so the output is safe to render as markup and a literal
// "<mark>" in text can never be mistaken for a marker. Empty text is
// returned unchanged.
func Highlight(text, query string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	for _, s := range Segments(text, query) {
		if s.Match {
			b.WriteString(OpenMark)
			b.WriteString(html.EscapeString(s.Text))
			b.WriteString(CloseMark)
			continue
		}
		b.WriteString(html.EscapeString(s.Text))
	}
	return b.String()
}

var markerStripper = strings.NewReplacer(OpenMark, "", CloseMark, "")

// StripHighlights reverses Highlight, recovering the exact text passed to it.
func StripHighlights(s string) string {
	if s == "" {
		return s
	}
	return html.UnescapeString(markerStripper.Replace(s))
}

// CountHighlights returns the number of marker pairs in s.
func CountHighlights(s string) int {
	open := strings.Count(s, OpenMark)
	closed := strings.Count(s, CloseMark)
	if closed < open {
		return closed
	}
	return open
}
