package banner

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ///////////////////////////////////////////////
// Text
// ///////////////////////////////////////////////

// DrawText draws content line by line with its layout origin at origin.
func DrawText(dst draw.Image, face font.Face, content string, origin image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	for i, line := range Lines(content) {
		d.Dot = fixed.Point26_6{
			X: fixed.I(origin.X),
			Y: fixed.I(origin.Y) + baseline(face, i),
		}
		d.DrawString(line)
	}
}

// CenteredOrigin returns the layout origin that centers the ink box bounds
// on canvas.
func CenteredOrigin(canvas, bounds image.Rectangle) image.Point {
	x := canvas.Min.X + (canvas.Dx()-bounds.Dx())/2 - bounds.Min.X
	y := canvas.Min.Y + (canvas.Dy()-bounds.Dy())/2 - bounds.Min.Y
	return image.Pt(x, y)
}

// ShadowOffset is the diagonal distance of the drop shadow for a font size.
func ShadowOffset(size int) int {
	return size/20 + 2
}

// ///////////////////////////////////////////////
// Accents
// ///////////////////////////////////////////////

// AccentSize is the accent glyph size for a font size.
func AccentSize(size int, scale float64, minSize int) int {
	return max(int(float64(size)*scale), minSize)
}

// AccentPositions returns the top-left corners of the eight accent glyphs
// around box: the four corners, then the top and bottom midpoints, then the
// left and right midpoints. Each glyph of size s sits pad pixels outside the
// box and is clamped so it stays within canvas.
func AccentPositions(canvas, box image.Rectangle, pad, s int) []image.Point {
	x0, y0, x1, y1 := box.Min.X, box.Min.Y, box.Max.X, box.Max.Y
	left := x0 - pad - s
	right := x1 + pad
	top := y0 - pad - s
	bottom := y1 + pad
	midX := (x0+x1)/2 - s/2
	midY := (y0+y1)/2 - s/2

	pts := []image.Point{
		image.Pt(left, top),
		image.Pt(right, top),
		image.Pt(left, bottom),
		image.Pt(right, bottom),
		image.Pt(midX, top),
		image.Pt(midX, bottom),
		image.Pt(left, midY),
		image.Pt(right, midY),
	}
	for i, p := range pts {
		pts[i] = image.Pt(
			clamp(p.X, canvas.Min.X, canvas.Max.X-s),
			clamp(p.Y, canvas.Min.Y, canvas.Max.Y-s),
		)
	}
	return pts
}

// DrawGlyphAt draws glyph so its ink box starts at p.
func DrawGlyphAt(dst draw.Image, face font.Face, glyph string, p image.Point, c color.Color) {
	b, _ := font.BoundString(face, glyph)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(p.X-b.Min.X.Floor(), p.Y-b.Min.Y.Floor()),
	}
	d.DrawString(glyph)
}

// clamp limits v to [lo, hi]. When the range is inverted lo wins.
func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
