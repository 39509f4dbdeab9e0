package readme

import (
	"strings"
	"unicode/utf8"
)

// Pictographs the model keeps emitting despite being told not to. Several
// live in the BMP, so the plane filter alone does not catch them.
var denylist = map[rune]struct{}{
	'\U0001F680': {}, // rocket
	'\U0001F4A1': {}, // light bulb
	'\u2728':     {}, // sparkles
	'\U0001F4DD': {}, // memo
	'\U0001F527': {}, // wrench
	'\u2699':     {}, // gear
	'\uFE0F':     {}, // emoji presentation selector
	'\U0001F916': {}, // robot
	'\U0001F3AF': {}, // direct hit
	'\U0001F4E6': {}, // package
}

const maxBMP = 0xFFFF

// Sanitize drops every rune outside the Basic Multilingual Plane, every
// denylisted pictograph and every invalid UTF-8 byte. The output is never
// longer than the input and Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if r > maxBMP {
			continue
		}
		if _, banned := denylist[r]; banned {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
