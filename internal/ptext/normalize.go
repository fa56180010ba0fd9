// Package ptext normalizes Portuguese free text coming out of PNCP payloads
// so keyword matching doesn't trip over casing or accents.
package ptext

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize coerces v to a string, lowercases it and strips diacritics
// ("Contratação de Médicos" -> "contratacao de medicos"). nil becomes "".
// It never fails: if the decomposition transform errors out, the lowercased
// text is returned as-is.
func Normalize(v any) string {
	t := strings.ToLower(Stringify(v))
	out, _, err := transform.String(stripMarks, t)
	if err != nil {
		return t
	}
	return out
}

// Stringify renders any scalar the way the PNCP payloads are consumed:
// nil -> "", strings pass through, numbers without exponent noise.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// JSON numbers; anoCompra etc. are integral
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%v", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Clean collapses runs of whitespace (incl. NBSP) into single spaces.
func Clean(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// OnlyDigits keeps the decimal digits of s (CNPJ normalization).
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
