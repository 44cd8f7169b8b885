// Procedural placeholder backgrounds for when no real image is available.
// The artwork is a deterministic function of the seed text: the same
// article always yields the same placeholder, except for the clock in
// the footer band.
package main

import (
	"crypto/sha256"
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/goregular"
)

// placeholderFooterHeight is the dark band at the bottom of the
// placeholder; the timestamp is confined to it, so everything above it
// is fully deterministic.
const placeholderFooterHeight = 50

// placeholderStopwords are skipped during keyword extraction.
var placeholderStopwords = map[string]bool{
	"with": true, "this": true, "that": true, "from": true,
	"your": true, "have": true, "there": true,
}

// generatePlaceholder builds an abstract background image derived from
// text: a vertical gradient, ambient bubbles seeded from a hash of the
// text, one shape per extracted keyword, and connecting lines between
// the shapes in extraction order. now only affects the footer clock.
func generatePlaceholder(text string, w, h int, now time.Time) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	drawGradient(img, w, h)

	// Ambient bubbles. Seeded from the whole text so repeated runs for
	// the same article produce identical pixels.
	hash := sha256.Sum256([]byte(text))
	rng := rand.New(rand.NewSource(int64(binary.BigEndian.Uint64(hash[:8]))))
	minDim := w
	if h < minDim {
		minDim = h
	}
	for i := 0; i < 15; i++ {
		x := rng.Intn(w + 1)
		y := rng.Intn(h + 1)
		radius := minDim/20 + rng.Intn(minDim/20+1)
		opacity := uint8(30 + rng.Intn(51))
		fillCircleBlend(img, x, y, radius, color.NRGBA{255, 255, 255, opacity})
	}

	// One abstract shape per keyword, connected in extraction order.
	keywords := extractKeywords(text, 5)
	var centers []image.Point
	for _, kw := range keywords {
		centers = append(centers, drawKeywordShape(img, kw, w, h))
	}
	for i := 0; i+1 < len(centers); i++ {
		drawLineBlend(img, centers[i], centers[i+1], color.NRGBA{255, 255, 255, 100}, 2)
	}
	if len(centers) > 2 {
		drawLineBlend(img, centers[len(centers)-1], centers[0], color.NRGBA{255, 255, 255, 100}, 2)
	}

	drawPlaceholderFooter(img, w, h, now)

	return img
}

// drawGradient paints the vibrant purple-to-coral vertical gradient.
func drawGradient(img *image.NRGBA, w, h int) {
	for y := 0; y < h; y++ {
		progress := float64(y) / float64(h)
		c := color.NRGBA{
			R: uint8(100 + 155*progress),
			G: uint8(50 + 100*progress),
			B: uint8(180 - 100*progress),
			A: 255,
		}
		row := image.Rect(0, y, w, y+1)
		draw.Draw(img, row, image.NewUniform(c), image.Point{}, draw.Src)
	}
}

// extractKeywords picks up to max interesting words: longer than four
// characters and not a stopword, with surrounding punctuation stripped.
func extractKeywords(text string, max int) []string {
	var keywords []string
	for _, word := range strings.Fields(text) {
		if len(word) <= 4 || placeholderStopwords[strings.ToLower(word)] {
			continue
		}
		word = strings.Trim(word, ".,!?;:()[]{}")
		if word == "" {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == max {
			break
		}
	}
	return keywords
}

// keywordSeed sums the rune values of a keyword; it drives both the
// shape geometry and its hue so a keyword always looks the same.
func keywordSeed(keyword string) int {
	seed := 0
	for _, r := range keyword {
		seed += int(r)
	}
	return seed
}

// drawKeywordShape draws one shape (circle, rotated rectangle or
// triangle) for a keyword and returns its center point.
func drawKeywordShape(img *image.NRGBA, keyword string, w, h int) image.Point {
	seed := keywordSeed(keyword)
	rng := rand.New(rand.NewSource(int64(seed)))

	shapeType := rng.Intn(3)
	cx := int(float64(w)*0.2) + rng.Intn(int(float64(w)*0.6)+1)
	cy := int(float64(h)*0.2) + rng.Intn(int(float64(h)*0.6)+1)

	minDim := w
	if h < minDim {
		minDim = h
	}
	sizeFactor := float64(len(keyword))/10 + 0.5
	size := int(float64(minDim) * 0.15 * sizeFactor)

	r, g, b := hueToRGB(float64(seed%360) / 360)
	opacity := uint8(120 + rng.Intn(101))
	c := color.NRGBA{r, g, b, opacity}

	switch shapeType {
	case 0:
		fillCircleBlend(img, cx, cy, size, c)
	case 1:
		// Rotated rectangle, pasted through an alpha-preserving rotation.
		rect := imaging.New(size*2, size, c)
		rotated := imaging.Rotate(rect, float64(rng.Intn(46)), color.NRGBA{})
		pos := image.Pt(cx-size, cy-size/2)
		draw.Draw(img, rotated.Bounds().Add(pos), rotated, image.Point{}, draw.Over)
	case 2:
		fillTriangleBlend(img,
			image.Pt(cx, cy-size),
			image.Pt(cx-size, cy+size),
			image.Pt(cx+size, cy+size),
			c)
	}

	return image.Pt(cx, cy)
}

// hueToRGB converts a hue in [0,1) at full saturation and value.
func hueToRGB(hue float64) (uint8, uint8, uint8) {
	switch {
	case hue < 1.0/6:
		return 255, uint8(255 * hue * 6), 0
	case hue < 2.0/6:
		return uint8(255 * (2.0/6 - hue) * 6), 255, 0
	case hue < 3.0/6:
		return 0, 255, uint8(255 * (hue - 2.0/6) * 6)
	case hue < 4.0/6:
		return 0, uint8(255 * (4.0/6 - hue) * 6), 255
	case hue < 5.0/6:
		return uint8(255 * (hue - 4.0/6) * 6), 0, 255
	default:
		return 255, 0, uint8(255 * (1 - hue) * 6)
	}
}

// drawPlaceholderFooter adds the dark footer band with icon glyphs and
// the current time, the only non-deterministic part of the placeholder.
func drawPlaceholderFooter(img *image.NRGBA, w, h int, now time.Time) {
	top := h - placeholderFooterHeight
	draw.Draw(img, image.Rect(0, top, w, h),
		image.NewUniform(color.NRGBA{20, 20, 20, 255}), image.Point{}, draw.Src)

	iconY := h - placeholderFooterHeight/2
	iconColor := color.NRGBA{255, 255, 255, 150}
	fillCircleBlend(img, 30, iconY, 10, iconColor)
	draw.Draw(img, image.Rect(60, iconY-10, 80, iconY+10), image.NewUniform(iconColor), image.Point{}, draw.Over)
	draw.Draw(img, image.Rect(100, iconY-10, 120, iconY+10), image.NewUniform(iconColor), image.Point{}, draw.Over)

	face, err := loadEmbeddedFace(goregular.TTF, 14)
	if err != nil {
		return
	}
	drawString(img, now.Format("15:04"), face, w-80, iconY+5, color.NRGBA{255, 255, 255, 200})
}

// fillCircleBlend alpha-blends a filled circle onto img.
func fillCircleBlend(img *image.NRGBA, cx, cy, radius int, c color.NRGBA) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				blendPixel(img, cx+dx, cy+dy, c)
			}
		}
	}
}

// fillTriangleBlend alpha-blends a filled triangle onto img using an
// edge-function inside test over the bounding box.
func fillTriangleBlend(img *image.NRGBA, a, b, c image.Point, col color.NRGBA) {
	minX, maxX := min3(a.X, b.X, c.X), max3(a.X, b.X, c.X)
	minY, maxY := min3(a.Y, b.Y, c.Y), max3(a.Y, b.Y, c.Y)

	edge := func(p, q, r image.Point) int {
		return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	}
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := image.Pt(x, y)
			w0, w1, w2 := edge(a, b, p), edge(b, c, p), edge(c, a, p)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				blendPixel(img, x, y, col)
			}
		}
	}
}

// drawLineBlend alpha-blends a line of the given thickness between two points.
func drawLineBlend(img *image.NRGBA, from, to image.Point, c color.NRGBA, thickness int) {
	dx, dy := to.X-from.X, to.Y-from.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		x := from.X + dx*i/steps
		y := from.Y + dy*i/steps
		for ox := 0; ox < thickness; ox++ {
			for oy := 0; oy < thickness; oy++ {
				blendPixel(img, x+ox, y+oy, c)
			}
		}
	}
}

// blendPixel applies src-over blending of c onto the pixel at (x, y).
func blendPixel(img *image.NRGBA, x, y int, c color.NRGBA) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return
	}
	i := img.PixOffset(x, y)
	a := uint32(c.A)
	inv := 255 - a
	img.Pix[i+0] = uint8((uint32(c.R)*a + uint32(img.Pix[i+0])*inv) / 255)
	img.Pix[i+1] = uint8((uint32(c.G)*a + uint32(img.Pix[i+1])*inv) / 255)
	img.Pix[i+2] = uint8((uint32(c.B)*a + uint32(img.Pix[i+2])*inv) / 255)
	img.Pix[i+3] = 255
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}
