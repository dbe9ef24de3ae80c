package token

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/rangetable"
)

// asciiLetters covers 'A'-'Z' and 'a'-'z'; there's no public rangetable
// constant for it, so it's built by hand once at init.
var asciiLetters = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 'A', Hi: 'Z', Stride: 1},
		{Lo: 'a', Hi: 'z', Stride: 1},
	},
}

// accentedLetters is the extra identifier alphabet from spec §6, beyond
// ASCII letters/digits/_/$: á é í ó ú ü ñ and their uppercase forms.
var accentedLetters = rangetable.New(
	'á', 'é', 'í', 'ó', 'ú', 'ü', 'ñ',
	'Á', 'É', 'Í', 'Ó', 'Ú', 'Ü', 'Ñ',
)

// identLetters is the merged identifier-letter set, exposed as a
// golang.org/x/text/runes.Set so IsIdentStart is a single table
// membership test; the lexer's regex embeds the same alphabet itself.
// This is the full alphabet of §6 minus digits, '_' and '$'.
var identLetters = runes.In(rangetable.Merge(asciiLetters, accentedLetters))

// IsIdentStart reports whether r may begin an identifier: an ASCII or
// accented letter, '_' or '$'.
func IsIdentStart(r rune) bool {
	return r == '_' || r == '$' || identLetters.Contains(r)
}

// IsIdentPart reports whether r may continue an identifier: anything
// IsIdentStart accepts, plus ASCII digits.
func IsIdentPart(r rune) bool {
	return IsIdentStart(r) || (r >= '0' && r <= '9')
}
