package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.SideMargin != 60 {
		t.Errorf("side margin default = %d, want 60", cfg.Layout.SideMargin)
	}
	if cfg.Layout.BandHeightFraction != 0.32 {
		t.Errorf("band fraction default = %v, want 0.32", cfg.Layout.BandHeightFraction)
	}
	if cfg.Fonts.MainInitialSize != 45 || cfg.Fonts.MainMinSize != 25 {
		t.Errorf("font size defaults = %d/%d, want 45/25",
			cfg.Fonts.MainInitialSize, cfg.Fonts.MainMinSize)
	}
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FramePath != "Frame.png" {
		t.Errorf("frame path default = %q", cfg.FramePath)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artigram.toml")
	body := `
frame_path = "MyFrame.png"

[layout]
side_margin = 80
category_anchor_y = 900

[fonts]
main_initial_size = 50
`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FramePath != "MyFrame.png" {
		t.Errorf("frame path = %q", cfg.FramePath)
	}
	if cfg.Layout.SideMargin != 80 {
		t.Errorf("side margin = %d, want 80", cfg.Layout.SideMargin)
	}
	if cfg.Layout.CategoryAnchorY != 900 {
		t.Errorf("category anchor y = %d, want 900", cfg.Layout.CategoryAnchorY)
	}
	if cfg.Fonts.MainInitialSize != 50 {
		t.Errorf("main initial size = %d, want 50", cfg.Fonts.MainInitialSize)
	}
	// Untouched keys keep their defaults.
	if cfg.Layout.BandHeightFraction != 0.32 {
		t.Errorf("band fraction should keep default, got %v", cfg.Layout.BandHeightFraction)
	}
}

func TestLoadConfig_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artigram.toml")
	if err := os.WriteFile(path, []byte("[layout]\nside_margn = 80\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("typo'd key should be rejected")
	}
}

func TestLoadConfig_InvalidValuesRejected(t *testing.T) {
	tests := []string{
		"[layout]\nband_height_fraction = 1.5\n",
		"[fonts]\nmain_min_size = 0\n",
		"[fonts]\nmain_initial_size = 10\n", // below the default minimum
		"[fonts]\nmain_size_step = 0\n",
	}
	for _, body := range tests {
		path := filepath.Join(t.TempDir(), "artigram.toml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadConfig(path); err == nil {
			t.Errorf("config %q should be rejected", body)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#00b250", color.NRGBA{0, 178, 80, 255}},
		{"00b250", color.NRGBA{0, 178, 80, 255}},
		{"#00000000", color.NRGBA{0, 0, 0, 0}},
		{"#ffffff80", color.NRGBA{255, 255, 255, 128}},
		{"nonsense", color.NRGBA{255, 255, 255, 255}},
		{"", color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := parseHexColor(tt.in); got != tt.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
