package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform descompone acentos (NFD), elimina las marcas diacríticas y recompone (NFC).
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make genera un slug URL-safe a partir de un nombre visible: minúsculas,
// sin acentos, separadores colapsados a guiones. "Portátil Gamér 15\"" -> "portatil-gamer-15".
func Make(name string) string {
	folded, _, err := transform.String(foldTransform, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
