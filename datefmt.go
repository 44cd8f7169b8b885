// Locale-aware date rendering for the post's date line.
package main

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// weekdayNames maps a base language to its weekday names, Sunday first.
// Names carry the casing native to the locale; French is lowercased here
// and fixed up for display in formatDisplayDate.
var weekdayNames = map[string][7]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"fr": {"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
	"es": {"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
	"de": {"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
}

// formatDisplayDate renders t as "Weekday, dd/MM/yyyy" with the weekday
// name of the given locale. Unknown or malformed locales fall back to
// the ISO yyyy-mm-dd form; this function never fails.
func formatDisplayDate(t time.Time, locale string) string {
	iso := fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())

	tag, err := language.Parse(locale)
	if err != nil {
		fmt.Fprintf(logOut, "Warning: cannot parse locale %q for date formatting, using ISO date: %v\n", locale, err)
		return iso
	}
	base, _ := tag.Base()
	names, ok := weekdayNames[base.String()]
	if !ok {
		fmt.Fprintf(logOut, "Warning: no date names for locale %q, using ISO date\n", locale)
		return iso
	}

	s := fmt.Sprintf("%s, %02d/%02d/%d", names[int(t.Weekday())], t.Day(), int(t.Month()), t.Year())

	// French locale data lowercases weekday names; the post design wants
	// the date line to start with a capital.
	if base.String() == "fr" {
		s = upperFirst(s)
	}
	return s
}

// upperFirst upper-cases the first rune of s.
func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
