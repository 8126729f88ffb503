// Package locale resolves the message locale for a request.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// names holds the canonical locale labels, parallel to supported.
var names = []string{"en-US", "pt-BR"}

var supported = []language.Tag{
	language.MustParse("en-US"),
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supported)

// Default returns the default locale label.
func Default() string {
	return names[0]
}

// Supported returns the canonical labels of all supported locales.
func Supported() []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}

// Resolve picks the best supported locale for the given preferences, in
// priority order. Each preference may be a single tag ("pt-BR") or an
// Accept-Language header value. Unknown or empty preferences fall back to
// the default locale.
func Resolve(preferences ...string) string {
	cleaned := make([]string, 0, len(preferences))
	for _, pref := range preferences {
		if p := strings.TrimSpace(pref); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	if len(cleaned) == 0 {
		return Default()
	}
	_, index := language.MatchStrings(matcher, cleaned...)
	if index < 0 || index >= len(names) {
		return Default()
	}
	return names[index]
}
