// Layer composition for the final post image: background, decorative
// frame, text overlay (date, headline, category badge), optional logo
// and optional QR code, alpha-composited in fixed z-order onto the
// 1079x1345 canvas.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
)

// postSpec carries everything the compositor needs besides the
// background image. All fields but Headline are optional.
type postSpec struct {
	Headline    string
	CategoryKey string
	Locale      string
	Logo        image.Image // nil = no logo layer
	QRText      string      // non-empty = QR layer with this content
	Now         time.Time
}

// composePost renders the final post. Only a missing background is
// fatal; every other layer (frame, date, badge, logo, QR) degrades to
// "layer omitted" with a warning. The returned image is owned by the
// caller; inputs are never mutated.
func composePost(bg image.Image, post postSpec, cfg *Config) (*image.RGBA, error) {
	if bg == nil {
		return nil, fmt.Errorf("no background image")
	}

	// 1. Normalize the background to the canvas size.
	base := imaging.Clone(bg)
	if base.Bounds().Dx() != canvasWidth || base.Bounds().Dy() != canvasHeight {
		fmt.Fprintf(logOut, "Resizing background from %dx%d to %dx%d\n",
			base.Bounds().Dx(), base.Bounds().Dy(), canvasWidth, canvasHeight)
		base = imaging.Resize(bg, canvasWidth, canvasHeight, imaging.Lanczos)
	}

	// 2. Decorative frame, skipped when unavailable.
	frame := loadFrame(cfg.FramePath)

	// 3. Transparent text layer.
	overlay := image.NewNRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))

	res := &fontResolver{dir: cfg.Fonts.Dir}
	lay := cfg.Layout

	// 4. Text band geometry: fixed fractions of the canvas height, not
	// derived from content.
	bandHeight := int(float64(canvasHeight) * lay.BandHeightFraction)
	bandTop := canvasHeight - bandHeight + lay.BandTopInset
	bandUsable := bandHeight - lay.BandBottomInset

	// 5a. Date line at a fixed offset inside the band.
	dateStr := formatDisplayDate(post.Now, post.Locale)
	dateFace := res.face(cfg.Fonts.Date, goitalic.TTF, float64(cfg.Fonts.DateSize))
	_, dateAscent := refMetrics(dateFace)
	drawString(overlay, dateStr, dateFace,
		lay.SideMargin+lay.DateOffsetX, bandTop+lay.DateOffsetY+dateAscent,
		parseHexColor(cfg.Colors.Accent))

	// 5b. Headline: size-fitted and vertically centered in the band area
	// below the reserved date row.
	maxTextWidth := canvasWidth - 2*lay.SideMargin
	fit := fitText(res, post.Headline, cfg.Fonts.Main, gobold.TTF,
		maxTextWidth, bandUsable-lay.DateReserve, lay.LineSpacing,
		cfg.Fonts.MainInitialSize, cfg.Fonts.MainMinSize, cfg.Fonts.MainSizeStep)
	fmt.Fprintf(logOut, "Headline set at size %d in %d line(s)\n", fit.size, len(fit.lines))

	contentHeight := bandUsable - lay.MainTextTopMargin - lay.MainTextBottomMargin
	textTop := bandTop + lay.MainTextTopMargin + (contentHeight-fit.height)/2
	drawTextBlock(overlay, fit, textTop, parseHexColor(cfg.Colors.Text), lay.LineSpacing)

	// 6. Category badge at its fixed anchor in the upper-right quadrant.
	if post.CategoryKey != "" {
		badgeFace := res.face(cfg.Fonts.Category, gobolditalic.TTF, float64(cfg.Fonts.CategorySize))
		drawLabel(overlay, displayCategory(post.CategoryKey, post.Locale), badgeFace,
			image.Pt(canvasWidth-lay.CategoryAnchorRight, lay.CategoryAnchorY),
			parseHexColor(cfg.Colors.Category), parseHexColor(cfg.Colors.CategoryBG),
			lay.CategoryPadX, lay.CategoryPadY)
	}

	// 7. Logo layer: fixed footprint near the top, off-center right.
	var logoLayer *image.NRGBA
	if post.Logo != nil {
		resized := imaging.Resize(post.Logo, lay.LogoWidth, lay.LogoHeight, imaging.Lanczos)
		logoLayer = image.NewNRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
		pos := image.Pt((canvasWidth-lay.LogoWidth+lay.LogoShiftX)/2, lay.LogoOffsetY)
		draw.Draw(logoLayer, resized.Bounds().Add(pos), resized, image.Point{}, draw.Over)
	}

	// Supplemental QR layer for the article source URL.
	var qrLayer *image.NRGBA
	if post.QRText != "" {
		qr, err := qrImage(post.QRText, lay.QRSize)
		if err != nil {
			fmt.Fprintf(logOut, "Warning: QR code not drawn: %v\n", err)
		} else {
			qrLayer = image.NewNRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
			pos := image.Pt(canvasWidth-lay.QRMargin-lay.QRSize, canvasHeight-lay.QRMargin-lay.QRSize)
			draw.Draw(qrLayer, qr.Bounds().Add(pos), qr, image.Point{}, draw.Over)
		}
	}

	// 8. Composite in z-order: background < frame < text < logo < QR.
	out := base
	if frame != nil {
		out = imaging.Overlay(out, frame, image.Point{}, 1.0)
	}
	out = imaging.Overlay(out, overlay, image.Point{}, 1.0)
	if logoLayer != nil {
		out = imaging.Overlay(out, logoLayer, image.Point{}, 1.0)
	}
	if qrLayer != nil {
		out = imaging.Overlay(out, qrLayer, image.Point{}, 1.0)
	}

	// 9. Flatten to opaque RGB.
	return flattenRGB(out), nil
}

// drawTextBlock draws fitted lines centered horizontally, starting with
// the block's top edge at textTop.
func drawTextBlock(dst *image.NRGBA, fit fittedText, textTop int, col color.NRGBA, lineSpacing int) {
	y := textTop
	for _, line := range fit.lines {
		width := lineWidth(fit.face, line)
		x := (canvasWidth - width) / 2
		drawString(dst, line, fit.face, x, y+fit.ascent, col)
		y += fit.lineHeight + lineSpacing
	}
}

// loadFrame opens the decorative frame asset, resizing it to the canvas
// if needed. A missing or undecodable frame returns nil: the frame layer
// is purely additive and its absence is not an error.
func loadFrame(path string) *image.NRGBA {
	if path == "" {
		return nil
	}
	img, err := imaging.Open(path)
	if err != nil {
		fmt.Fprintf(logOut, "Warning: frame %s not used: %v\n", path, err)
		return nil
	}
	frame := imaging.Clone(img)
	if frame.Bounds().Dx() != canvasWidth || frame.Bounds().Dy() != canvasHeight {
		fmt.Fprintf(logOut, "Resizing frame from %dx%d to %dx%d\n",
			frame.Bounds().Dx(), frame.Bounds().Dy(), canvasWidth, canvasHeight)
		frame = imaging.Resize(img, canvasWidth, canvasHeight, imaging.Lanczos)
	}
	return frame
}

// flattenRGB forces full opacity, yielding the final RGB-semantics image.
func flattenRGB(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Over)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 255
	}
	return dst
}
