package main

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"tools.zach/dev/starbanner/internal/config"
)

// ///////////////////////////////////////////////
// parseSectionPath Tests
// ///////////////////////////////////////////////

func TestParseSectionPath(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    []string
	}{
		{"single segment", "canvas", []string{"canvas"}},
		{"two segments", "art.colors", []string{"art", "colors"}},
		{"three segments", "font.google.cache", []string{"font", "google", "cache"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSectionPath(tt.section)
			if len(got) != len(tt.want) {
				t.Fatalf("parseSectionPath(%q) returned %d segments, want %d", tt.section, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseSectionPath(%q)[%d] = %q, want %q", tt.section, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// ///////////////////////////////////////////////
// sectionName Tests
// ///////////////////////////////////////////////

func TestSectionName(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    string
	}{
		{"single segment", "canvas", "Canvas"},
		{"last of two", "art.colors", "Colors"},
		{"last of three", "font.google.cache", "Cache"},
		{"already capitalized", "Stars", "Stars"},
		{"single char", "a", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sectionName(tt.section)
			if got != tt.want {
				t.Errorf("sectionName(%q) = %q, want %q", tt.section, got, tt.want)
			}
		})
	}
}

func TestSectionNameEmpty(t *testing.T) {
	// A trailing dot produces an empty last segment.
	got := sectionName("")
	if got != "" {
		t.Errorf("sectionName(%q) = %q, want empty string", "", got)
	}
}

// ///////////////////////////////////////////////
// injectOmitted Tests
// ///////////////////////////////////////////////

func TestInjectOmittedNoSection(t *testing.T) {
	// When sectionStack is empty, injectOmitted should be a no-op.
	var out []string
	emitted := map[string]bool{}
	injectOmitted(&out, nil, emitted)
	if len(out) != 0 {
		t.Errorf("injectOmitted with nil sectionStack produced %d lines, want 0", len(out))
	}
}

func TestInjectOmittedFontSection(t *testing.T) {
	var out []string
	emitted := map[string]bool{"font.paths": true, "font.search_dirs": true}
	injectOmitted(&out, []string{"font"}, emitted)

	text := strings.Join(out, "\n")
	for _, want := range []string{
		`# fallback = "google:JetBrains Mono:400"`,
		`# cache_dir = "/tmp/starbanner-fonts"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("injected lines missing %q:\n%s", want, text)
		}
	}
	if !emitted["font.fallback"] || !emitted["font.cache_dir"] {
		t.Error("injected keys not marked as emitted")
	}
}

// ///////////////////////////////////////////////
// generate Tests
// ///////////////////////////////////////////////

func TestGenerateRoundTrips(t *testing.T) {
	out, err := generate(config.ExampleConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.HasPrefix(out, "# ///////////////////////////////////////////////\n# Starbanner Configuration") {
		t.Errorf("missing header:\n%s", out[:min(len(out), 200)])
	}

	cfg, err := config.Parse([]byte(out))
	if err != nil {
		t.Fatalf("generated config does not parse: %v\n%s", err, out)
	}
	if diff := cmp.Diff(config.ExampleConfig(), cfg); diff != "" {
		t.Errorf("generated config differs from example (-want +got):\n%s", diff)
	}
}

func TestGenerateDocumentsEveryField(t *testing.T) {
	out, err := generate(config.ExampleConfig())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, section := range []string{"Canvas", "Art", "Stars", "Accents", "Font", "Output", "Log"} {
		if !strings.Contains(out, "# ///// "+section+" /////") {
			t.Errorf("missing section banner for %s", section)
		}
	}
	for _, want := range []string{
		"# Image size in pixels.",
		"# text = '''",
		`# file = "starbanner.log"`,
		"# Random seed for star placement. 0 = different every run.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated config missing %q", want)
		}
	}
}
