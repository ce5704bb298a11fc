package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomono"
)

// writeFont writes data under dir/name, creating parents, and returns the path.
func writeFont(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ///////////////////////////////////////////////
// Parse / Load
// ///////////////////////////////////////////////

func TestParse_TTF(t *testing.T) {
	f, err := Parse("GoMono.ttf", gomono.TTF)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.NumGlyphs() == 0 {
		t.Error("parsed font has no glyphs")
	}
}

func TestParse_Garbage(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"random bytes", "x.ttf", []byte("definitely not a font")},
		{"empty", "x.otf", nil},
		{"fake collection", "x.ttc", []byte("ttcf\x00\x01\x00\x00")},
		{"fake woff2", "x.woff2", []byte("wOF2garbage")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.file, tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	good := writeFont(t, dir, "GoMono.ttf", gomono.TTF)
	bad := writeFont(t, dir, "Broken.ttf", []byte("nope"))

	if err := Probe(good); err != nil {
		t.Errorf("Probe(good) = %v", err)
	}
	if err := Probe(bad); err == nil {
		t.Error("Probe(bad) = nil, want error")
	}
}

// ///////////////////////////////////////////////
// Format Detection
// ///////////////////////////////////////////////

func TestIsWOFF2(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want bool
	}{
		{"extension", "Font.WOFF2", nil, true},
		{"magic", "font.bin", []byte("wOF2\x00\x01"), true},
		{"ttf", "font.ttf", gomono.TTF[:16], false},
		{"woff1 magic", "font.woff", []byte("wOFF"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isWOFF2(tt.file, tt.data); got != tt.want {
				t.Errorf("isWOFF2(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestIsCollection(t *testing.T) {
	if !isCollection([]byte("ttcf\x00\x02")) {
		t.Error("ttcf header not detected")
	}
	if isCollection(gomono.TTF) {
		t.Error("plain TTF detected as collection")
	}
}
