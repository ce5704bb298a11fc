package banner

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/opentype"
	"tools.zach/dev/starbanner/internal/atomicfile"
)

// ///////////////////////////////////////////////
// Options
// ///////////////////////////////////////////////

// Accents configures the glyphs drawn around the text block.
type Accents struct {
	Enabled bool
	Glyph   string
	Color   color.NRGBA
	// Scale and MinSize give the glyph size via [AccentSize].
	Scale   float64
	MinSize int
}

// Options is everything a render needs besides the font and the random
// source.
type Options struct {
	Width  int
	Height int

	Content string

	Background  color.NRGBA
	TextColor   color.NRGBA
	ShadowColor color.NRGBA

	MaxWidthFraction  float64
	MaxHeightFraction float64
	Sizes             SizeRange
	FallbackSize      int

	Stars   StarField
	Accents Accents

	CornerRadius int
}

// DefaultOptions returns the standard 3000x1000 banner with the built-in art.
func DefaultOptions() Options {
	return Options{
		Width:             3000,
		Height:            1000,
		Content:           DefaultArt,
		Background:        color.NRGBA{R: 5, G: 5, B: 20, A: 0xff},
		TextColor:         color.NRGBA{R: 240, G: 240, B: 255, A: 0xff},
		ShadowColor:       color.NRGBA{R: 80, G: 80, B: 100, A: 0xff},
		MaxWidthFraction:  0.9,
		MaxHeightFraction: 0.8,
		Sizes:             SizeRange{Max: 200, Min: 6},
		FallbackSize:      20,
		Stars:             DefaultStarField(),
		Accents: Accents{
			Enabled: true,
			Glyph:   "*",
			Color:   color.NRGBA{R: 255, G: 215, B: 0, A: 0xff},
			Scale:   0.8,
			MinSize: 18,
		},
		CornerRadius: 30,
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("canvas size must be positive, got %dx%d", o.Width, o.Height)
	}
	if strings.TrimSpace(o.Content) == "" {
		return errors.New("banner content is empty")
	}
	if o.FallbackSize <= 0 {
		return fmt.Errorf("fallback size must be > 0, got %d", o.FallbackSize)
	}
	if o.Accents.Enabled && o.Accents.Glyph == "" {
		return errors.New("accent glyph is empty")
	}
	return nil
}

// ///////////////////////////////////////////////
// Render
// ///////////////////////////////////////////////

// Result is a rendered banner and the layout decisions behind it.
type Result struct {
	Image *image.NRGBA
	Fit   Fit
	// TextOrigin is the layout origin the main text was drawn at.
	TextOrigin image.Point
	// TextBox is the ink box of the main text on the canvas.
	TextBox image.Rectangle
	// Accents holds the top-left corner of each accent glyph.
	Accents    []image.Point
	AccentSize int
	Stars      []Star
}

// Render draws the banner: background and stars, shadow, text, accents and
// finally the rounded-corner alpha mask. rng drives the starfield only.
func Render(f *opentype.Font, opts Options, rng *rand.Rand) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	content := TrimArt(opts.Content)
	canvas := image.Rect(0, 0, opts.Width, opts.Height)

	maxW, maxH := MaxBounds(opts.Width, opts.Height, opts.MaxWidthFraction, opts.MaxHeightFraction)
	fit, err := FitSize(f, content, maxW, maxH, opts.Sizes, opts.FallbackSize)
	if err != nil {
		return nil, fmt.Errorf("fit text: %w", err)
	}

	img := image.NewNRGBA(canvas)
	draw.Draw(img, canvas, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	res := &Result{Image: img, Fit: fit}
	res.Stars = opts.Stars.Plan(canvas, rng)
	PaintStars(img, res.Stars)

	face, err := NewFace(f, fit.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	res.TextOrigin = CenteredOrigin(canvas, fit.Bounds)
	res.TextBox = fit.Bounds.Add(res.TextOrigin)

	o := ShadowOffset(fit.Size)
	DrawText(img, face, content, res.TextOrigin.Add(image.Pt(o, o)), opts.ShadowColor)
	DrawText(img, face, content, res.TextOrigin, opts.TextColor)

	if opts.Accents.Enabled {
		s := AccentSize(fit.Size, opts.Accents.Scale, opts.Accents.MinSize)
		accentFace, err := NewFace(f, s)
		if err != nil {
			return nil, err
		}
		defer accentFace.Close()

		res.AccentSize = s
		res.Accents = AccentPositions(canvas, res.TextBox, fit.Size, s)
		for _, p := range res.Accents {
			DrawGlyphAt(img, accentFace, opts.Accents.Glyph, p, opts.Accents.Color)
		}
	}

	RoundCorners(img, opts.CornerRadius)
	return res, nil
}

// ///////////////////////////////////////////////
// Output
// ///////////////////////////////////////////////

// Save encodes img as PNG and writes it to path atomically, creating parent
// directories as needed. A failed write leaves any previous file intact.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	err := atomicfile.WriteFunc(path, 0o644, func(w io.Writer) error {
		return png.Encode(w, img)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
