// Package textnorm produces the normalized form of note text used by the
// primary search columns.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// invisible covers format characters (zero-width space/joiners, BOM, soft
// hyphen, bidi marks) that leak into pasted note text.
var invisible = runes.In(unicode.Cf)

// Normalize returns s in NFKC form, without invisible format characters,
// lower-cased and with whitespace runs collapsed to a single space.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFKC, runes.Remove(invisible), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// malformed input, fall back to the raw text
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
