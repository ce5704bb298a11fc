package banner

import (
	"image"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points so four curves approximate a
// circle.
const kappa = 0.5522847498

// sparkleWaist is the half-width of a sparkle spike at its base and the
// radius of its centre disc.
const sparkleWaist = 1.5

// All paths below wind the same way so overlapping parts add up instead of
// cancelling.

// addCircle adds a circle of radius r centred on (cx, cy).
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// addSparkle adds a four-pointed star centred on (c, c) with spikes of
// length arm.
func addSparkle(z *vector.Rasterizer, c, arm float32) {
	const w = sparkleWaist
	addCircle(z, c, c, w)

	z.MoveTo(c-w, c) // up
	z.LineTo(c, c-arm)
	z.LineTo(c+w, c)
	z.ClosePath()

	z.MoveTo(c, c-w) // right
	z.LineTo(c+arm, c)
	z.LineTo(c, c+w)
	z.ClosePath()

	z.MoveTo(c+w, c) // down
	z.LineTo(c, c+arm)
	z.LineTo(c-w, c)
	z.ClosePath()

	z.MoveTo(c, c+w) // left
	z.LineTo(c-arm, c)
	z.LineTo(c, c-w)
	z.ClosePath()
}

// addRoundedRect adds a w by h rectangle at the origin with corners of
// radius r.
func addRoundedRect(z *vector.Rasterizer, w, h, r float32) {
	k := r * kappa
	z.MoveTo(r, 0)
	z.LineTo(w-r, 0)
	z.CubeTo(w-r+k, 0, w, r-k, w, r)
	z.LineTo(w, h-r)
	z.CubeTo(w, h-r+k, w-r+k, h, w-r, h)
	z.LineTo(r, h)
	z.CubeTo(r-k, h, 0, h-r+k, 0, h-r)
	z.LineTo(0, r)
	z.CubeTo(0, r-k, r-k, 0, r, 0)
	z.ClosePath()
}

// ///////////////////////////////////////////////
// Corner Mask
// ///////////////////////////////////////////////

// CornerMask returns the coverage of a rounded rectangle spanning bounds.
// Radius 0 gives a fully opaque mask.
func CornerMask(bounds image.Rectangle, radius int) *image.Alpha {
	mask := image.NewAlpha(bounds)
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return mask
	}
	if radius <= 0 {
		for i := range mask.Pix {
			mask.Pix[i] = 0xff
		}
		return mask
	}
	r := min(radius, w/2, h/2)

	z := vector.NewRasterizer(w, h)
	addRoundedRect(z, float32(w), float32(h), float32(r))
	z.Draw(mask, bounds, image.Opaque, image.Point{})
	return mask
}

// RoundCorners replaces the alpha channel of img with a rounded-rectangle
// mask of the given radius. Colors are left untouched, so the transparent
// corners keep their background color.
func RoundCorners(img *image.NRGBA, radius int) {
	b := img.Bounds()
	mask := CornerMask(b, radius)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		src := mask.Pix[mask.PixOffset(b.Min.X, y):]
		dst := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := range b.Dx() {
			dst[4*x+3] = src[x]
		}
	}
}
