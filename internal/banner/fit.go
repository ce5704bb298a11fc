package banner

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// SizeRange is the inclusive range of font sizes tried, largest first.
type SizeRange struct {
	Max int
	Min int
}

// Fit is the outcome of a size search.
type Fit struct {
	// Size is the selected font size in pixels.
	Size int
	// Bounds is the ink box of the content at Size, relative to the layout
	// origin (top of the first line's ascent).
	Bounds image.Rectangle
	// Fallback is set when no size in the range fit and the fallback size
	// was used instead. The content may overflow in that case.
	Fallback bool
}

// MaxBounds returns the largest allowed text box for a canvas.
func MaxBounds(width, height int, widthFraction, heightFraction float64) (int, int) {
	return int(float64(width) * widthFraction), int(float64(height) * heightFraction)
}

// ///////////////////////////////////////////////
// Faces
// ///////////////////////////////////////////////

// NewFace instantiates f at size pixels.
func NewFace(f *opentype.Font, size int) (font.Face, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face at size %d: %w", size, err)
	}
	return face, nil
}

// linePitch is the distance between consecutive baselines. Lines are packed
// with no extra spacing, so the pitch is the ascent.
func linePitch(face font.Face) fixed.Int26_6 {
	return face.Metrics().Ascent
}

// baseline returns the baseline of line i below the layout origin.
func baseline(face font.Face, i int) fixed.Int26_6 {
	return face.Metrics().Ascent + fixed.Int26_6(i)*linePitch(face)
}

// ///////////////////////////////////////////////
// Measurement
// ///////////////////////////////////////////////

// Measure returns the pixel ink box of content drawn with face, relative to
// the layout origin. Lines without ink (blank or all spaces) only advance
// the baseline. Empty content yields an empty rectangle.
func Measure(face font.Face, content string) image.Rectangle {
	var (
		box  fixed.Rectangle26_6
		have bool
	)
	for i, line := range Lines(content) {
		b, _ := font.BoundString(face, line)
		if b.Empty() {
			continue
		}
		b = b.Add(fixed.Point26_6{Y: baseline(face, i)})
		if have {
			box = box.Union(b)
		} else {
			box, have = b, true
		}
	}
	if !have {
		return image.Rectangle{}
	}
	return image.Rect(box.Min.X.Floor(), box.Min.Y.Floor(), box.Max.X.Ceil(), box.Max.Y.Ceil())
}

// MeasureAt measures content at the given size.
func MeasureAt(f *opentype.Font, content string, size int) (image.Rectangle, error) {
	face, err := NewFace(f, size)
	if err != nil {
		return image.Rectangle{}, err
	}
	defer face.Close()
	return Measure(face, content), nil
}

// ///////////////////////////////////////////////
// Size Search
// ///////////////////////////////////////////////

// FitSize scans sizes from sizes.Max down to sizes.Min and returns the first
// whose ink box fits within maxW by maxH. If none fits, the fallback size is
// returned with its own measured box and Fit.Fallback set.
//
// Hinted ink extents are not strictly monotonic in size, so every size is
// measured in turn.
func FitSize(f *opentype.Font, content string, maxW, maxH int, sizes SizeRange, fallback int) (Fit, error) {
	for size := sizes.Max; size >= sizes.Min; size-- {
		b, err := MeasureAt(f, content, size)
		if err != nil {
			return Fit{}, err
		}
		if b.Dx() <= maxW && b.Dy() <= maxH {
			return Fit{Size: size, Bounds: b}, nil
		}
	}

	b, err := MeasureAt(f, content, fallback)
	if err != nil {
		return Fit{}, err
	}
	return Fit{Size: fallback, Bounds: b, Fallback: true}, nil
}
