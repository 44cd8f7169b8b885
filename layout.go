// Text layout: greedy word wrapping against real glyph metrics and a
// shrinking font-size search to fit a vertical budget.
package main

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
)

// lineHeightRef is measured instead of the actual line content so the
// vertical rhythm stays constant whether or not a line happens to
// contain ascenders or descenders.
const lineHeightRef = "Mg"

// wrapText splits text into lines that each measure at most maxWidth
// pixels under face. A single word wider than maxWidth is placed alone
// on its own line, unsplit.
func wrapText(text string, face font.Face, maxWidth int) []string {
	if font.MeasureString(face, text).Ceil() <= maxWidth {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		trial := current + " " + word
		if font.MeasureString(face, trial).Ceil() <= maxWidth {
			current = trial
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	lines = append(lines, current)
	return lines
}

// lineWidth measures the advance width of a line in pixels.
func lineWidth(face font.Face, line string) int {
	return font.MeasureString(face, line).Ceil()
}

// refMetrics returns the line height and ascent of face, measured from
// the fixed reference string.
func refMetrics(face font.Face) (lineHeight, ascent int) {
	bounds, _ := font.BoundString(face, lineHeightRef)
	lineHeight = (bounds.Max.Y - bounds.Min.Y).Ceil()
	ascent = (-bounds.Min.Y).Ceil()
	return lineHeight, ascent
}

// fittedText is the result of the font-size search: the wrapped lines
// and the face they were wrapped with.
type fittedText struct {
	lines      []string
	face       font.Face
	size       int
	lineHeight int
	ascent     int
	height     int // total block height including spacing
}

// fitText finds the largest font size, from initial down to min in
// decrements of step, at which text wrapped to maxWidth fits within
// maxHeight. If even the minimum size overflows the budget, the minimum
// is used anyway and the overflowing block is returned (visual clipping
// is accepted, not an error).
func fitText(res *fontResolver, text string, candidates []string, fallbackTTF []byte,
	maxWidth, maxHeight, lineSpacing, initial, min, step int) fittedText {

	text = strings.TrimSpace(text)

	var fit fittedText
	lastSize := -1
	for size := initial; size >= min; size -= step {
		fit = measureAt(res, text, candidates, fallbackTTF, maxWidth, lineSpacing, size)
		if fit.height <= maxHeight {
			return fit
		}
		lastSize = size
	}

	// The loop may already have measured the floor size.
	if lastSize != min {
		fit = measureAt(res, text, candidates, fallbackTTF, maxWidth, lineSpacing, min)
	}
	if fit.height > maxHeight {
		fmt.Fprintf(logOut, "Warning: headline exceeds text band at minimum size %d (%dpx > %dpx), may clip\n",
			min, fit.height, maxHeight)
	}
	return fit
}

// measureAt wraps text at one candidate size and computes the block height.
func measureAt(res *fontResolver, text string, candidates []string, fallbackTTF []byte,
	maxWidth, lineSpacing, size int) fittedText {

	face := res.face(candidates, fallbackTTF, float64(size))
	lines := wrapText(text, face, maxWidth)
	lineHeight, ascent := refMetrics(face)

	height := len(lines) * lineHeight
	if len(lines) > 1 {
		height += (len(lines) - 1) * lineSpacing
	}

	return fittedText{
		lines:      lines,
		face:       face,
		size:       size,
		lineHeight: lineHeight,
		ascent:     ascent,
		height:     height,
	}
}
