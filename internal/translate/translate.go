// Package translate resolves state keys and phrasing templates to localized
// display text for the next-hour forecast sensor.
package translate

import (
	"fmt"
	"regexp"
	"strings"
)

// Catalog holds the display text for one language. The zero value is not
// usable; construct with New.
type Catalog struct {
	language  string
	states    map[string]string
	templates map[string]string
}

// English state descriptions, keyed by tier_type description keys plus the
// distinguished no-precipitation state.
var enStates = map[string]string{
	"no_precipitation": "No precipitation",

	"light_rain":    "Light rain",
	"moderate_rain": "Moderate rain",
	"heavy_rain":    "Heavy rain",

	"light_snow":    "Light snow",
	"moderate_snow": "Moderate snow",
	"heavy_snow":    "Heavy snow",

	"light_sleet":    "Light sleet",
	"moderate_sleet": "Moderate sleet",
	"heavy_sleet":    "Heavy sleet",

	"light_hail":    "Light hail",
	"moderate_hail": "Moderate hail",
	"heavy_hail":    "Heavy hail",

	"light_precipitation":    "Light precipitation",
	"moderate_precipitation": "Moderate precipitation",
	"heavy_precipitation":    "Heavy precipitation",
}

// English phrasing templates with named placeholders
var enTemplates = map[string]string{
	"now":                         "{precipitation} now",
	"for_next_minutes":            "{precipitation} for the next {duration} minutes",
	"in_minutes":                  "{precipitation} in {minutes} minutes",
	"starting_in_minutes_lasting": "{precipitation} starting in {start_minutes} minutes, lasting {duration} minutes",
}

var catalogs = map[string]struct {
	states    map[string]string
	templates map[string]string
}{
	"en": {states: enStates, templates: enTemplates},
}

// New returns the catalog for the given language tag. Unknown languages fall
// back to English.
func New(language string) *Catalog {
	entry, ok := catalogs[language]
	if !ok {
		entry = catalogs["en"]
	}
	return &Catalog{
		language:  language,
		states:    entry.states,
		templates: entry.templates,
	}
}

// Language returns the language tag this catalog was requested for.
func (c *Catalog) Language() string {
	return c.language
}

// State resolves a state key to display text, falling back to a title-cased,
// underscore-to-space rendering of the key itself when no translation exists.
func (c *Catalog) State(key string) string {
	if text, ok := c.states[key]; ok {
		return text
	}
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// Template substitutes named placeholders into the pattern for the given
// template identifier. An unknown identifier falls back to the identifier with
// underscores replaced by spaces. A placeholder with no supplied value leaves
// the pattern unformatted and reports an error; the returned string is always
// usable as degraded display text.
func (c *Catalog) Template(id string, placeholders map[string]string) (string, error) {
	pattern, ok := c.templates[id]
	if !ok {
		pattern = strings.ReplaceAll(id, "_", " ")
	}

	var missing string
	rendered := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := placeholders[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return match
		}
		return value
	})

	if missing != "" {
		return pattern, fmt.Errorf("template %q: no value for placeholder %q", id, missing)
	}
	return rendered, nil
}

// titleCase capitalizes the first letter of each space-separated word, the
// way the provider's fallback display text is produced.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
