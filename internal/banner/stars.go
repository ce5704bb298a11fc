package banner

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"golang.org/x/image/vector"
)

// Shape is how a star is drawn.
type Shape uint8

const (
	Pixel   Shape = iota // single pixel
	Dot                  // disc of radius 1
	Blob                 // disc of radius 2
	Sparkle              // disc with four spikes
)

func (s Shape) String() string {
	switch s {
	case Pixel:
		return "pixel"
	case Dot:
		return "dot"
	case Blob:
		return "blob"
	case Sparkle:
		return "sparkle"
	default:
		return "unknown"
	}
}

// Shape weights after the sparkle draw. Whatever is left over is a pixel.
const (
	blobChance = 0.08
	dotChance  = 0.20
)

// Star is one planned background star.
type Star struct {
	Pos   image.Point
	Shade uint8
	Shape Shape
	// Radius is the extent around Pos: 0 for a pixel, the disc radius for
	// dots and blobs, the spike length for sparkles.
	Radius int
}

// Bounds is the pixel rectangle the star can touch.
func (s Star) Bounds() image.Rectangle {
	r := s.Radius
	return image.Rect(s.Pos.X-r, s.Pos.Y-r, s.Pos.X+r+1, s.Pos.Y+r+1)
}

// ///////////////////////////////////////////////
// Planning
// ///////////////////////////////////////////////

// StarField describes the random background.
type StarField struct {
	// Density is stars per pixel of canvas area.
	Density float64
	// MinShade and MaxShade bound the gray level, inclusive.
	MinShade uint8
	MaxShade uint8
	// SparkleChance is the probability a star is a sparkle.
	SparkleChance float64
	// SparkleArm is the spike length of a sparkle in pixels.
	SparkleArm int
}

// DefaultStarField returns the standard banner starfield.
func DefaultStarField() StarField {
	return StarField{
		Density:       0.0003,
		MinShade:      180,
		MaxShade:      255,
		SparkleChance: 0.06,
		SparkleArm:    6,
	}
}

// Count returns how many stars are drawn on bounds, rounded to nearest so
// that 0.0003 on 3000x1000 gives 900 and not 899.
func (f StarField) Count(bounds image.Rectangle) int {
	if bounds.Empty() || f.Density <= 0 {
		return 0
	}
	return int(math.Round(float64(bounds.Dx()) * float64(bounds.Dy()) * f.Density))
}

// Plan draws Count(bounds) stars from rng. A sparkle whose extent would be
// clipped by bounds is demoted to a pixel, so every planned sparkle lies
// fully inside the canvas. The same rng state always yields the same plan.
func (f StarField) Plan(bounds image.Rectangle, rng *rand.Rand) []Star {
	n := f.Count(bounds)
	if n == 0 {
		return nil
	}
	lo, hi := int(f.MinShade), int(f.MaxShade)
	if hi < lo {
		hi = lo
	}

	stars := make([]Star, 0, n)
	for range n {
		s := Star{
			Pos:   image.Pt(bounds.Min.X+rng.IntN(bounds.Dx()), bounds.Min.Y+rng.IntN(bounds.Dy())),
			Shade: uint8(lo + rng.IntN(hi-lo+1)),
		}
		switch r := rng.Float64(); {
		case r < f.SparkleChance:
			s.Shape, s.Radius = Sparkle, f.SparkleArm
			if f.SparkleArm <= 0 || !s.Bounds().In(bounds) {
				s.Shape, s.Radius = Pixel, 0
			}
		case r < f.SparkleChance+blobChance:
			s.Shape, s.Radius = Blob, 2
		case r < f.SparkleChance+blobChance+dotChance:
			s.Shape, s.Radius = Dot, 1
		}
		stars = append(stars, s)
	}
	return stars
}

// ///////////////////////////////////////////////
// Painting
// ///////////////////////////////////////////////

// PaintStars draws stars onto dst. Pixels replace the destination; discs and
// sparkles are anti-aliased and composited over it.
func PaintStars(dst *image.NRGBA, stars []Star) {
	for _, s := range stars {
		c := color.NRGBA{R: s.Shade, G: s.Shade, B: s.Shade, A: 0xff}
		switch s.Shape {
		case Pixel:
			dst.SetNRGBA(s.Pos.X, s.Pos.Y, c)
		case Dot, Blob:
			z := vector.NewRasterizer(2*s.Radius+1, 2*s.Radius+1)
			mid := float32(s.Radius) + 0.5
			addCircle(z, mid, mid, mid)
			z.Draw(dst, s.Bounds(), image.NewUniform(c), image.Point{})
		case Sparkle:
			z := vector.NewRasterizer(2*s.Radius+1, 2*s.Radius+1)
			addSparkle(z, float32(s.Radius)+0.5, float32(s.Radius))
			z.Draw(dst, s.Bounds(), image.NewUniform(c), image.Point{})
		}
	}
}
