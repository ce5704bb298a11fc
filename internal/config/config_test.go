// Tests for the config package covering [Load] behavior (defaults, overrides,
// missing files, malformed input, unknown keys), validation ([Config.Validate]),
// serialization round-trips ([Config.Save]), [Config.ArtText], and
// [ConfigDocs] completeness.

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

// ///////////////////////////////////////////////
// Load
// ///////////////////////////////////////////////

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		config  string // config file content
		noFile  bool   // if true, skip writing a config file
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:   "missing file yields defaults",
			noFile: true,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:   "empty file yields defaults",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "user overrides applied",
			config: `
[canvas]
width = 1500
height = 500

[stars]
seed = 42
sparkle_chance = 0.1
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				if cfg.Canvas.Width != 1500 || cfg.Canvas.Height != 500 {
					t.Errorf("canvas = %dx%d, want 1500x500", cfg.Canvas.Width, cfg.Canvas.Height)
				}
				if cfg.Stars.Seed != 42 {
					t.Errorf("Seed = %d, want 42", cfg.Stars.Seed)
				}
				if cfg.Stars.SparkleChance != 0.1 {
					t.Errorf("SparkleChance = %g, want 0.1", cfg.Stars.SparkleChance)
				}
			},
		},
		{
			name: "partial override preserves other defaults",
			config: `
[art]
color = "#FFFFFF"
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				want := DefaultConfig()
				want.Art.Color = "#FFFFFF"
				if diff := cmp.Diff(want, cfg); diff != "" {
					t.Errorf("config mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "font lists",
			config: `
[font]
paths = ["~/fonts/a.ttf", "/opt/b.otf"]
search_dirs = ["/opt/fonts"]
fallback = "google:JetBrains Mono:400"
`,
			check: func(t *testing.T, cfg *Config) {
				t.Helper()
				want := FontConfig{
					Paths:      []string{"~/fonts/a.ttf", "/opt/b.otf"},
					SearchDirs: []string{"/opt/fonts"},
					Fallback:   "google:JetBrains Mono:400",
				}
				if diff := cmp.Diff(want, cfg.Font); diff != "" {
					t.Errorf("font config mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "malformed toml",
			config:  "[canvas\nwidth = ",
			wantErr: true,
		},
		{
			name:    "unknown key rejected",
			config:  "[canvas]\nwdith = 10\n",
			wantErr: true,
		},
		{
			name:    "invalid value rejected",
			config:  "[art]\nmin_size = 0\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "banner.toml")
			if !tt.noFile {
				if err := os.WriteFile(path, []byte(tt.config), 0o644); err != nil {
					t.Fatalf("WriteFile: %v", err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_UnknownKeyNamed(t *testing.T) {
	_, err := Parse([]byte("[stars]\ndensty = 0.1\n"))
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "stars.densty") {
		t.Errorf("error %q should name the unknown key", err)
	}
}

func TestLoad_Unreadable(t *testing.T) {
	// A directory in place of the file is an error, not "use defaults".
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error when config path is a directory")
	}
}

// ///////////////////////////////////////////////
// ExampleConfig
// ///////////////////////////////////////////////

func TestExampleConfig(t *testing.T) {
	cfg := ExampleConfig()
	if cfg == nil {
		t.Fatal("ExampleConfig returned nil")
		return
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("ExampleConfig does not validate: %v", err)
	}
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		t.Fatalf("failed to marshal ExampleConfig: %v", err)
	}
}

// ///////////////////////////////////////////////
// ConfigDocs completeness
// ///////////////////////////////////////////////

func TestConfigDocsComplete(t *testing.T) {
	fields := collectTOMLFields(reflect.TypeOf(Config{}), "")
	for _, field := range fields {
		if _, ok := ConfigDocs[field]; !ok {
			t.Errorf("ConfigDocs missing entry for field %q", field)
		}
	}
}

func TestConfigDocsNoStaleEntries(t *testing.T) {
	known := map[string]bool{}
	for _, f := range collectTOMLFields(reflect.TypeOf(Config{}), "") {
		known[f] = true
		// Section headers may carry docs too.
		known[strings.SplitN(f, ".", 2)[0]] = true
	}
	for key := range ConfigDocs {
		if !known[key] {
			t.Errorf("ConfigDocs has entry %q with no matching field", key)
		}
	}
}

// collectTOMLFields recursively walks a struct type and returns the
// dot-separated TOML key path for every tagged field. Used by
// TestConfigDocsComplete to verify that [ConfigDocs] covers all fields.
func collectTOMLFields(typ reflect.Type, prefix string) []string {
	var fields []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag := f.Tag.Get("toml")
		if tag == "" || tag == "-" {
			continue
		}
		// Strip options like ",omitempty"
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}
		path := tag
		if prefix != "" {
			path = prefix + "." + tag
		}
		if f.Type.Kind() == reflect.Struct {
			fields = append(fields, collectTOMLFields(f.Type, path)...)
		} else {
			fields = append(fields, path)
		}
	}
	return fields
}

// ///////////////////////////////////////////////
// Marshal field order
// ///////////////////////////////////////////////

func TestConfigMarshalFieldOrder(t *testing.T) {
	cfg := DefaultConfig()
	var buf strings.Builder
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(cfg); err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := buf.String()

	order := []string{"[canvas]", "[art]", "[stars]", "[accents]", "[font]", "[output]", "[log]"}
	for i := 1; i < len(order); i++ {
		before, after := order[i-1], order[i]
		t.Run(before+" before "+after, func(t *testing.T) {
			bIdx := strings.Index(out, before)
			aIdx := strings.Index(out, after)
			if bIdx < 0 || aIdx < 0 || bIdx > aIdx {
				t.Errorf("expected %q before %q in marshaled output", before, after)
			}
		})
	}
}

// ///////////////////////////////////////////////
// Save
// ///////////////////////////////////////////////

func TestConfig_Save_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "banner.toml")

	orig := DefaultConfig()
	orig.Canvas.Width = 1200
	orig.Art.Text = "HELLO\nWORLD"
	orig.Stars.Seed = 7
	orig.Font.Paths = []string{"/opt/fonts/mono.ttf"}
	orig.Font.Fallback = "google:Roboto Mono:500"

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
		return
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
		return
	}

	if diff := cmp.Diff(orig, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

// ///////////////////////////////////////////////
// Validate
// ///////////////////////////////////////////////

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cfg *Config)
		wantErr bool
	}{
		{
			name:    "default config passes",
			setup:   func(cfg *Config) {},
			wantErr: false,
		},
		{
			name:    "zero width",
			setup:   func(cfg *Config) { cfg.Canvas.Width = 0 },
			wantErr: true,
		},
		{
			name:    "negative corner radius",
			setup:   func(cfg *Config) { cfg.Canvas.CornerRadius = -1 },
			wantErr: true,
		},
		{
			name:    "corner radius larger than half height",
			setup:   func(cfg *Config) { cfg.Canvas.CornerRadius = 501 },
			wantErr: true,
		},
		{
			name:    "square corners allowed",
			setup:   func(cfg *Config) { cfg.Canvas.CornerRadius = 0 },
			wantErr: false,
		},
		{
			name:    "bad background color",
			setup:   func(cfg *Config) { cfg.Canvas.Background = "navy" },
			wantErr: true,
		},
		{
			name:    "bad shadow color",
			setup:   func(cfg *Config) { cfg.Art.ShadowColor = "#12" },
			wantErr: true,
		},
		{
			name:    "width fraction above one",
			setup:   func(cfg *Config) { cfg.Art.MaxWidthFraction = 1.1 },
			wantErr: true,
		},
		{
			name:    "zero height fraction",
			setup:   func(cfg *Config) { cfg.Art.MaxHeightFraction = 0 },
			wantErr: true,
		},
		{
			name:    "max size below min size",
			setup:   func(cfg *Config) { cfg.Art.MaxSize = 5 },
			wantErr: true,
		},
		{
			name:    "zero fallback size",
			setup:   func(cfg *Config) { cfg.Art.FallbackSize = 0 },
			wantErr: true,
		},
		{
			name:    "negative density",
			setup:   func(cfg *Config) { cfg.Stars.Density = -0.1 },
			wantErr: true,
		},
		{
			name:    "zero density allowed",
			setup:   func(cfg *Config) { cfg.Stars.Density = 0 },
			wantErr: false,
		},
		{
			name:    "inverted brightness range",
			setup:   func(cfg *Config) { cfg.Stars.MinBrightness = 200; cfg.Stars.MaxBrightness = 100 },
			wantErr: true,
		},
		{
			name:    "brightness above 255",
			setup:   func(cfg *Config) { cfg.Stars.MaxBrightness = 256 },
			wantErr: true,
		},
		{
			name:    "sparkle chance above one",
			setup:   func(cfg *Config) { cfg.Stars.SparkleChance = 1.5 },
			wantErr: true,
		},
		{
			name:    "zero sparkle arm",
			setup:   func(cfg *Config) { cfg.Stars.SparkleArm = 0 },
			wantErr: true,
		},
		{
			name:    "empty glyph with accents enabled",
			setup:   func(cfg *Config) { cfg.Accents.Glyph = "" },
			wantErr: true,
		},
		{
			name:    "empty glyph with accents disabled",
			setup:   func(cfg *Config) { cfg.Accents.Enabled = false; cfg.Accents.Glyph = "" },
			wantErr: false,
		},
		{
			name:    "malformed font fallback",
			setup:   func(cfg *Config) { cfg.Font.Fallback = "JetBrains Mono" },
			wantErr: true,
		},
		{
			name:    "google fallback",
			setup:   func(cfg *Config) { cfg.Font.Fallback = "google:Fira Code:400" },
			wantErr: false,
		},
		{
			name:    "empty output path",
			setup:   func(cfg *Config) { cfg.Output.Path = "" },
			wantErr: true,
		},
		{
			name:    "invalid log.level",
			setup:   func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "log file with zero rotation size",
			setup:   func(cfg *Config) { cfg.Log.File = "x.log"; cfg.Log.MaxSizeMB = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.setup(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// ///////////////////////////////////////////////
// ArtText
// ///////////////////////////////////////////////

func TestConfig_ArtText(t *testing.T) {
	dir := t.TempDir()
	artPath := filepath.Join(dir, "art.txt")
	if err := os.WriteFile(artPath, []byte(" /\\ \n/__\\\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	resolve := func(p string) string { return filepath.Join(dir, p) }

	tests := []struct {
		name    string
		text    string
		file    string
		want    string
		wantErr bool
	}{
		{name: "built-in", want: ""},
		{name: "inline text", text: "HI", want: "HI"},
		{name: "inline wins over file", text: "HI", file: "art.txt", want: "HI"},
		{name: "file", file: "art.txt", want: " /\\ \n/__\\\n"},
		{name: "missing file", file: "nope.txt", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Art.Text = tt.text
			cfg.Art.File = tt.file
			got, err := cfg.ArtText(resolve)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ArtText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ArtText() = %q, want %q", got, tt.want)
			}
		})
	}
}
