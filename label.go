// Badge rendering: a padded background rectangle with text inside,
// used for the category label.
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawLabel draws a background rectangle sized to the text plus padding,
// anchored with its top-left corner at pos, then the text inside it. The
// text is offset by the padding and corrected for the glyphs' top
// bearing so it sits visually centered within the rectangle.
//
// Failures (nil face, empty text) skip the label rather than aborting
// the render.
func drawLabel(dst *image.NRGBA, text string, face font.Face, pos image.Point,
	textColor, bgColor color.NRGBA, padX, padY int) {

	if face == nil || text == "" {
		fmt.Fprintf(logOut, "Warning: label %q not drawn (missing font or text)\n", text)
		return
	}

	bounds, _ := font.BoundString(face, text)
	textW := (bounds.Max.X - bounds.Min.X).Ceil()
	textH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	rect := image.Rect(pos.X, pos.Y, pos.X+textW+2*padX, pos.Y+textH+2*padY)
	draw.Draw(dst, rect, image.NewUniform(bgColor), image.Point{}, draw.Over)

	// BoundString is relative to the baseline dot: Min.Y is the negated
	// ascent of this particular string, Min.X its left bearing.
	x := pos.X + padX - bounds.Min.X.Floor()
	y := pos.Y + padY + (-bounds.Min.Y).Ceil()
	drawString(dst, text, face, x, y, textColor)
}

// drawString renders s onto dst with the baseline at (x, y).
func drawString(dst draw.Image, s string, face font.Face, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
