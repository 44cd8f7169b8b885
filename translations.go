// Category display names per locale with fallback semantics: requested
// locale first, then French (the design's default), then the title-cased
// key itself.
package main

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// allowedCategories are the category keys the content classifier may
// return and the badge knows display names for.
var allowedCategories = []string{
	"Societe", "hi-tech", "sports", "nation", "economie",
	"regions", "culture", "monde", "Sante", "LifeStyle",
}

// categoryNames is the two-level locale → key → display name mapping.
var categoryNames = map[string]map[string]string{
	"en": {
		"Societe": "Society", "hi-tech": "Hi-Tech", "sports": "Sports",
		"nation": "Nation", "economie": "Economy", "regions": "Regions",
		"culture": "Culture", "monde": "World", "Sante": "Health",
		"LifeStyle": "Lifestyle",
	},
	"fr": {
		"Societe": "Société", "hi-tech": "Hi-Tech", "sports": "Sports",
		"nation": "Nation", "economie": "Économie", "regions": "Régions",
		"culture": "Culture", "monde": "Monde", "Sante": "Santé",
		"LifeStyle": "Style de Vie",
	},
	"es": {
		"Societe": "Sociedad", "hi-tech": "Alta Tecnología", "sports": "Deportes",
		"nation": "Nación", "economie": "Economía", "regions": "Regiones",
		"culture": "Cultura", "monde": "Mundo", "Sante": "Salud",
		"LifeStyle": "Estilo de Vida",
	},
	"de": {
		"Societe": "Gesellschaft", "hi-tech": "Hi-Tech", "sports": "Sport",
		"nation": "Nation", "economie": "Wirtschaft", "regions": "Regionen",
		"culture": "Kultur", "monde": "Welt", "Sante": "Gesundheit",
		"LifeStyle": "Lebensstil",
	},
}

// isAllowedCategory reports whether key is one of the known categories.
func isAllowedCategory(key string) bool {
	for _, k := range allowedCategories {
		if k == key {
			return true
		}
	}
	return false
}

// displayCategory returns the badge text for a category key in the given
// locale. Missing translations fall back to French, then to a
// title-cased form of the key so unknown keys still render something.
func displayCategory(key, locale string) string {
	if names, ok := categoryNames[baseLocale(locale)]; ok {
		if name, ok := names[key]; ok {
			return name
		}
	}
	if name, ok := categoryNames["fr"][key]; ok {
		fmt.Fprintf(logOut, "Warning: no %q translation for category %q, using French\n", locale, key)
		return name
	}
	return cases.Title(language.Und).String(key)
}

// baseLocale reduces a locale code to its base language ("fr-CA" → "fr").
// Unparseable codes are returned unchanged so the lookup simply misses.
func baseLocale(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, _ := tag.Base()
	return base.String()
}
