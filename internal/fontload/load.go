// Package fontload locates and parses the monospaced font the banner is
// rendered with.
//
// Fonts are accepted as TrueType/OpenType files, TrueType collections (the
// first face is used, which is the regular weight for Menlo.ttc and friends)
// and WOFF2, which is converted to SFNT in memory before parsing.
package fontload

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	tdfont "github.com/tdewolff/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// probeSize is the point size a candidate font is instantiated at to prove
// it is usable.
const probeSize = 12

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads and parses the font file at path.
func Load(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses raw font bytes. name is only used to recognize WOFF2 by
// extension when the magic bytes are missing.
func Parse(name string, data []byte) (*opentype.Font, error) {
	data, err := maybeConvertWOFF2(name, data)
	if err != nil {
		return nil, err
	}

	if isCollection(data) {
		c, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		if c.NumFonts() == 0 {
			return nil, fmt.Errorf("font collection is empty")
		}
		f, err := c.Font(0)
		if err != nil {
			return nil, fmt.Errorf("parse font collection: %w", err)
		}
		return f, nil
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// Probe reports whether the font at path can be loaded and instantiated.
// A face that lacks the ASCII art glyphs ('/' and '_') is rejected too.
func Probe(path string) error {
	f, err := Load(path)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    probeSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	for _, r := range "/_" {
		if _, _, ok := face.GlyphBounds(r); !ok {
			return fmt.Errorf("%s: no glyph for %q", path, r)
		}
	}
	return nil
}

// ///////////////////////////////////////////////
// Format Detection
// ///////////////////////////////////////////////

// maybeConvertWOFF2 converts WOFF2 font data to SFNT format if needed.
func maybeConvertWOFF2(name string, data []byte) ([]byte, error) {
	if !isWOFF2(name, data) {
		return data, nil
	}
	sfnt, err := tdfont.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("convert woff2 to sfnt: %w", err)
	}
	return sfnt, nil
}

// isWOFF2 checks whether font data is WOFF2 by extension or magic bytes.
// WOFF2 magic: 0x774F4632 ("wOF2")
func isWOFF2(name string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(name), ".woff2") {
		return true
	}
	return bytes.HasPrefix(data, []byte("wOF2"))
}

// isCollection reports whether data is a TrueType collection ("ttcf" tag).
func isCollection(data []byte) bool {
	return bytes.HasPrefix(data, []byte("ttcf"))
}
