package store

import (
	"strings"
	"unicode"
)

// Pattern is a case-insensitive match pattern. Its segments must appear in
// order; any text may separate them. A single segment is plain substring
// containment.
type Pattern []string

// Contains returns a pattern matching text that contains q.
func Contains(q string) Pattern {
	if q == "" {
		return nil
	}
	return Pattern{q}
}

// Loose returns a pattern with a wildcard between every character of q, so
// "abc" matches "a", then anything, then "b", then anything, then "c".
// Whitespace in q is skipped.
func Loose(q string) Pattern {
	var p Pattern
	for _, r := range q {
		if unicode.IsSpace(r) {
			continue
		}
		p = append(p, string(r))
	}
	return p
}

// Like renders p as a SQL LIKE pattern using '\' as the escape character.
func (p Pattern) Like() string {
	var b strings.Builder
	b.WriteByte('%')
	for _, seg := range p {
		b.WriteString(likeEscaper.Replace(seg))
		b.WriteByte('%')
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// String returns the unescaped wildcard form, e.g. "%a%b%c%".
func (p Pattern) String() string {
	if len(p) == 0 {
		return "%"
	}
	return "%" + strings.Join(p, "%") + "%"
}

// Matches reports whether s satisfies p. An empty pattern matches nothing.
func (p Pattern) Matches(s string) bool {
	if len(p) == 0 {
		return false
	}
	s = strings.ToLower(s)
	for _, seg := range p {
		seg = strings.ToLower(seg)
		i := strings.Index(s, seg)
		if i < 0 {
			return false
		}
		s = s[i+len(seg):]
	}
	return true
}
