package main

import (
	"strings"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"
)

// 2026-03-09 is a Monday.
var testDate = time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

func TestFormatDisplayDate_English(t *testing.T) {
	got := formatDisplayDate(testDate, "en")
	want := "Monday, 09/03/2026"
	if got != want {
		t.Errorf("formatDisplayDate(en) = %q, want %q", got, want)
	}
}

func TestFormatDisplayDate_FrenchCapitalized(t *testing.T) {
	got := formatDisplayDate(testDate, "fr")
	want := "Lundi, 09/03/2026"
	if got != want {
		t.Errorf("formatDisplayDate(fr) = %q, want %q", got, want)
	}
	r, _ := utf8.DecodeRuneInString(got)
	if !unicode.IsUpper(r) {
		t.Errorf("French date should start with a capital, got %q", got)
	}
}

func TestFormatDisplayDate_RegionalVariant(t *testing.T) {
	got := formatDisplayDate(testDate, "fr-CA")
	if !strings.HasPrefix(got, "Lundi") {
		t.Errorf("fr-CA should resolve to the French table, got %q", got)
	}
}

func TestFormatDisplayDate_UnknownLocaleISOFallback(t *testing.T) {
	silenceLogs(t)
	for _, locale := range []string{"xx-invalid", "", "it", "!!", "zz"} {
		got := formatDisplayDate(testDate, locale)
		if got != "2026-03-09" {
			t.Errorf("formatDisplayDate(%q) = %q, want ISO fallback 2026-03-09", locale, got)
		}
	}
}

func TestFormatDisplayDate_NeverPanics(t *testing.T) {
	silenceLogs(t)
	// A sweep of odd inputs; the contract is "never raises".
	for _, locale := range []string{"fr_FR", "FR", "français", "12", strings.Repeat("x", 100)} {
		_ = formatDisplayDate(testDate, locale)
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct{ in, want string }{
		{"lundi", "Lundi"},
		{"été", "Été"},
		{"", ""},
		{"Mardi", "Mardi"},
	}
	for _, tt := range tests {
		if got := upperFirst(tt.in); got != tt.want {
			t.Errorf("upperFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
