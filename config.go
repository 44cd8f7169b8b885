// Configuration for the post compositor and content derivation.
// Layout values are loaded from an optional TOML file over built-in defaults.
package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Canvas dimensions for the final Instagram asset. Every layer is
// normalized to this size before compositing.
const (
	canvasWidth  = 1079
	canvasHeight = 1345
)

// LayoutConfig holds the fixed pixel constants of the composition.
//
// The defaults are tuned to the bundled Frame.png overlay: the band
// fraction and insets assume its dark lower band, and the category
// anchor sits in a gap of its artwork. Changing the frame asset means
// re-tuning these values together.
type LayoutConfig struct {
	// SideMargin is the horizontal margin for headline wrapping.
	SideMargin int `toml:"side_margin"`
	// BandHeightFraction of the canvas height reserved as the text band
	// at the bottom of the image.
	BandHeightFraction float64 `toml:"band_height_fraction"`
	// BandTopInset/BandBottomInset shrink the band to the usable area
	// inside the frame's artwork.
	BandTopInset    int `toml:"band_top_inset"`
	BandBottomInset int `toml:"band_bottom_inset"`
	// DateOffsetX/Y place the date relative to the band's top-left.
	// DateOffsetX is added to SideMargin.
	DateOffsetX int `toml:"date_offset_x"`
	DateOffsetY int `toml:"date_offset_y"`
	// DateReserve is vertical space held back from the headline budget
	// for the date row, independent of the measured date height.
	DateReserve int `toml:"date_reserve"`
	// MainTextTopMargin is the distance from the band top to the area in
	// which the headline block is vertically centered.
	MainTextTopMargin int `toml:"main_text_top_margin"`
	// MainTextBottomMargin is the matching bottom inset.
	MainTextBottomMargin int `toml:"main_text_bottom_margin"`
	// LineSpacing is the extra space between wrapped headline lines.
	LineSpacing int `toml:"line_spacing"`
	// CategoryAnchorRight is subtracted from the canvas width to get the
	// badge's left edge; CategoryAnchorY is its top edge.
	CategoryAnchorRight int `toml:"category_anchor_right"`
	CategoryAnchorY     int `toml:"category_anchor_y"`
	CategoryPadX        int `toml:"category_pad_x"`
	CategoryPadY        int `toml:"category_pad_y"`
	// Logo footprint and placement near the top of the canvas.
	LogoWidth   int `toml:"logo_width"`
	LogoHeight  int `toml:"logo_height"`
	LogoShiftX  int `toml:"logo_shift_x"`
	LogoOffsetY int `toml:"logo_offset_y"`
	// QRSize/QRMargin place the optional source-URL QR code in the
	// bottom-right corner.
	QRSize   int `toml:"qr_size"`
	QRMargin int `toml:"qr_margin"`
}

// FontConfig holds font sizes and ordered candidate lists for each text
// role. Candidates resolve against Dir first, then as literal paths,
// then against the system font directories.
type FontConfig struct {
	Dir string `toml:"dir"`

	MainInitialSize int `toml:"main_initial_size"`
	MainMinSize     int `toml:"main_min_size"`
	MainSizeStep    int `toml:"main_size_step"`
	DateSize        int `toml:"date_size"`
	CategorySize    int `toml:"category_size"`

	Main     []string `toml:"main"`
	Date     []string `toml:"date"`
	Category []string `toml:"category"`
}

// ColorConfig holds the composition colors as hex strings.
type ColorConfig struct {
	Text     string `toml:"text"`
	Accent   string `toml:"accent"`
	Category string `toml:"category"`
	// CategoryBG may include an alpha component (#rrggbbaa); the
	// original design uses a fully transparent background so only the
	// badge text is visible over the frame.
	CategoryBG string `toml:"category_bg"`
}

// ContentConfig controls content derivation (word budgets and the
// optional OpenAI-compatible endpoint).
type ContentConfig struct {
	BulletWords      int    `toml:"bullet_words"`
	DescriptionWords int    `toml:"description_words"`
	HashtagCount     int    `toml:"hashtag_count"`
	APIBaseURL       string `toml:"api_base_url"`
	Model            string `toml:"model"`
	ImageModel       string `toml:"image_model"`
}

// Config is the root configuration.
type Config struct {
	FramePath string `toml:"frame_path"`

	Layout  LayoutConfig  `toml:"layout"`
	Fonts   FontConfig    `toml:"fonts"`
	Colors  ColorConfig   `toml:"colors"`
	Content ContentConfig `toml:"content"`
}

// defaultConfig returns the built-in configuration, matching the design
// constants the bundled frame asset was drawn for.
func defaultConfig() *Config {
	return &Config{
		FramePath: "Frame.png",
		Layout: LayoutConfig{
			SideMargin:           60,
			BandHeightFraction:   0.32,
			BandTopInset:         60,
			BandBottomInset:      80,
			DateOffsetX:          180,
			DateOffsetY:          50,
			DateReserve:          60,
			MainTextTopMargin:    80,
			MainTextBottomMargin: 20,
			LineSpacing:          15,
			CategoryAnchorRight:  490,
			CategoryAnchorY:      870,
			CategoryPadX:         20,
			CategoryPadY:         10,
			LogoWidth:            150,
			LogoHeight:           70,
			LogoShiftX:           760,
			LogoOffsetY:          30,
			QRSize:               140,
			QRMargin:             40,
		},
		Fonts: FontConfig{
			Dir:             "fonts",
			MainInitialSize: 45,
			MainMinSize:     25,
			MainSizeStep:    5,
			DateSize:        30,
			CategorySize:    50,
			Main:            []string{"Poppins-Bold.ttf", "Montserrat-Bold.ttf", "arialbd.ttf", "ariblk.ttf", "arial.ttf"},
			Date:            []string{"Poppins-Italic.ttf", "Montserrat-Italic.ttf", "ariali.ttf", "arial.ttf"},
			Category:        []string{"Poppins-BoldItalic.ttf", "Montserrat-BoldItalic.ttf", "Montserrat-Bold.ttf", "arialbd.ttf"},
		},
		Colors: ColorConfig{
			Text:       "#ffffff",
			Accent:     "#00b250",
			Category:   "#ffffff",
			CategoryBG: "#00000000",
		},
		Content: ContentConfig{
			BulletWords:      12,
			DescriptionWords: 40,
			HashtagCount:     8,
			APIBaseURL:       "https://api.openai.com/v1",
			Model:            "gpt-4o-mini",
			ImageModel:       "gpt-image-1",
		},
	}
}

// loadConfig reads a TOML config file over the defaults. A missing file
// is not an error: the defaults are returned as-is. Unknown keys are
// rejected so typos surface instead of silently using defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Layout.BandHeightFraction <= 0 || c.Layout.BandHeightFraction >= 1 {
		return fmt.Errorf("band_height_fraction must be in (0,1), got %v", c.Layout.BandHeightFraction)
	}
	if c.Fonts.MainMinSize <= 0 || c.Fonts.MainInitialSize < c.Fonts.MainMinSize {
		return fmt.Errorf("main font sizes invalid: initial=%d min=%d", c.Fonts.MainInitialSize, c.Fonts.MainMinSize)
	}
	if c.Fonts.MainSizeStep <= 0 {
		return fmt.Errorf("main_size_step must be positive, got %d", c.Fonts.MainSizeStep)
	}
	return nil
}

// parseHexColor converts "#rrggbb" or "#rrggbbaa" to an NRGBA color.
// Malformed values fall back to opaque white.
func parseHexColor(hex string) color.NRGBA {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{255, 255, 255, 255}
	}
	parse := func(s string) uint8 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 255
		}
		return uint8(v)
	}
	c := color.NRGBA{parse(hex[0:2]), parse(hex[2:4]), parse(hex[4:6]), 255}
	if len(hex) == 8 {
		c.A = parse(hex[6:8])
	}
	return c
}
