package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// separatorReplacer turns slug separators into spaces.
var separatorReplacer = strings.NewReplacer("_", " ", "-", " ")

// DisplayName converts a folder slug such as "kodak_portra_400" into a title
// cased name ("Kodak Portra 400"). Separators become single spaces.
func DisplayName(slug string) string {
	spaced := strings.Join(strings.Fields(separatorReplacer.Replace(slug)), " ")
	if spaced == "" {
		return ""
	}
	return cases.Title(language.Und).String(spaced)
}

// ContainsAny reports whether s contains any of the given substrings and
// returns the first one that matched, in argument order.
func ContainsAny(s string, needles ...string) (string, bool) {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return n, true
		}
	}
	return "", false
}
