package config

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugifyProjectName folds a user-typed name toward the project-name rule:
// compatibility forms are decomposed, combining marks dropped, letters
// lowercased and whitespace runs joined with '-'. "Café App" becomes
// "cafe-app". The result still has to pass ValidateProjectName.
func SlugifyProjectName(name string) string {
	// Transformers and casers carry state, so each call builds its own.
	fold := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(fold, strings.TrimSpace(name))
	if err != nil {
		out = strings.TrimSpace(name)
	}
	out = cases.Lower(language.Und).String(out)
	return strings.Join(strings.Fields(out), "-")
}
