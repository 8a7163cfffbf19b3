// Package preview cuts long note content down to the part worth showing in a
// listing: the paragraph holding the first match, clipped around it.
package preview

import (
	"strings"
	"unicode/utf8"

	"github.com/gravity-note/gravity-note/internal/highlight"
)

// DefaultMaxLen is the excerpt length, in characters, used when none is given.
const DefaultMaxLen = 320

const ellipsis = "…"

// Block is a paragraph or markdown section of a note.
type Block struct {
	Text      string
	StartLine int
	EndLine   int
}

// Excerpt is the part of a note chosen for display.
type Excerpt struct {
	Text      string
	StartLine int
	EndLine   int
	// Clipped is set when Text is not the whole note.
	Clipped bool
}

// Blocks splits text on blank lines and before markdown headings. Line
// numbers are 1-based and refer to text as given.
func Blocks(text string) []Block {
	var (
		blocks  []Block
		current []string
		start   int
	)
	flush := func(end int) {
		t := strings.TrimSpace(strings.Join(current, "\n"))
		if t != "" {
			blocks = append(blocks, Block{Text: t, StartLine: start, EndLine: end})
		}
		current = nil
	}

	for i, line := range strings.Split(text, "\n") {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush(n - 1)
			continue
		}
		if strings.HasPrefix(trimmed, "#") && len(current) > 0 {
			flush(n - 1)
		}
		if len(current) == 0 {
			start = n
		}
		current = append(current, line)
	}
	flush(strings.Count(text, "\n") + 1)
	return blocks
}

// For returns the excerpt of content to show for query. Content within
// maxLen characters is returned whole. Otherwise the first block containing
// query (or the first block) is used, clipped to maxLen around the match.
func For(content, query string, maxLen int) Excerpt {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	if utf8.RuneCountInString(content) <= maxLen {
		return Excerpt{Text: content, StartLine: 1, EndLine: strings.Count(content, "\n") + 1}
	}

	blocks := Blocks(content)
	if len(blocks) == 0 {
		return Excerpt{Text: clip(content, -1, maxLen), StartLine: 1, EndLine: 1, Clipped: true}
	}
	b, at := blocks[0], -1
	for _, cand := range blocks {
		if off := matchOffset(cand.Text, query); off >= 0 {
			b, at = cand, off
			break
		}
	}
	return Excerpt{
		Text:      clip(b.Text, at, maxLen),
		StartLine: b.StartLine,
		EndLine:   b.EndLine,
		Clipped:   true,
	}
}

// matchOffset returns the rune offset of the first match of query in text,
// or -1.
func matchOffset(text, query string) int {
	off := 0
	for _, seg := range highlight.Segments(text, query) {
		if seg.Match {
			return off
		}
		off += utf8.RuneCountInString(seg.Text)
	}
	return -1
}

// clip cuts text to maxLen runes, keeping the rune at offset at within the
// first quarter of the window when possible.
func clip(text string, at, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	start := 0
	if lead := maxLen / 4; at > lead {
		start = at - lead
	}
	end := start + maxLen
	if end > len(r) {
		end = len(r)
		start = end - maxLen
	}

	out := string(r[start:end])
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(r) {
		out += ellipsis
	}
	return out
}
