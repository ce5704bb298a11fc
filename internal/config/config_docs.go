package config

import "tools.zach/dev/starbanner/internal/paths"

// ///////////////////////////////////////////////
// Documentation Types
// ///////////////////////////////////////////////

// FieldDoc holds documentation and alternative examples for a single config field.
// The genconfig tool uses [FieldDoc] values to annotate the generated banner.default.toml.
type FieldDoc struct {
	// Comment is shown as a header comment above the field in the example config.
	Comment string

	// Alternatives are shown as commented-out lines below the active value.
	Alternatives []string
}

// ///////////////////////////////////////////////
// Field Documentation Map
// ///////////////////////////////////////////////

// ConfigDocs maps TOML field paths (dot-separated, e.g. "art.max_size")
// to their [FieldDoc] entries.
var ConfigDocs = map[string]FieldDoc{
	// ── Canvas ───────────────────────────────────────────────────
	"canvas": {
		Comment: "Output image geometry.",
	},
	"canvas.width": {
		Comment: "Image size in pixels.",
	},
	"canvas.height": {},
	"canvas.background": {
		Comment: "Background fill behind the stars. Hex: #RGB, #RRGGBB or #RRGGBBAA.",
	},
	"canvas.corner_radius": {
		Comment: "Radius of the transparent rounded corners in pixels. 0 = square corners.",
	},

	// ── Art ──────────────────────────────────────────────────────
	"art.text": {
		Comment: "Replace the built-in art. Multi-line strings keep their spacing;\nleading and trailing blank lines are dropped.",
		Alternatives: []string{
			`text = '''`,
			` _  _ ___ _    _    ___`,
			`| || | __| |  | |  / _ \`,
			`'''`,
		},
	},
	"art.file": {
		Comment: "Read the art from a text file instead (ignored when text is set).\nRelative paths resolve against the config file's directory.",
		Alternatives: []string{
			`file = "art/banner.txt"`,
		},
	},
	"art.color": {
		Comment: "Glyph and shadow colors.",
	},
	"art.shadow_color": {},
	"art.max_width_fraction": {
		Comment: "The art is drawn at the largest font size whose bounding box fits\nwithin these fractions of the canvas.",
	},
	"art.max_height_fraction": {},
	"art.max_size": {
		Comment: "Font sizes tried, largest first.",
	},
	"art.min_size": {},
	"art.fallback_size": {
		Comment: "Size used when nothing in [min_size, max_size] fits. The art may overflow.",
	},

	// ── Stars ────────────────────────────────────────────────────
	"stars.density": {
		Comment: "Stars per pixel of canvas area (0.0003 = 900 stars at 3000x1000).",
	},
	"stars.min_brightness": {
		Comment: "Gray level range for stars (0-255).",
	},
	"stars.max_brightness": {},
	"stars.sparkle_chance": {
		Comment: "Probability that a star is a four-pointed sparkle instead of a dot.\nSparkles that would be clipped by the canvas edge become plain pixels.",
	},
	"stars.sparkle_arm": {
		Comment: "Sparkle spike length in pixels.",
	},
	"stars.seed": {
		Comment: "Random seed for star placement. 0 = different every run.",
		Alternatives: []string{
			`seed = 42`,
		},
	},

	// ── Accents ──────────────────────────────────────────────────
	"accents.enabled": {
		Comment: "Glyphs drawn at the corners and edge midpoints around the art.",
	},
	"accents.glyph": {},
	"accents.color": {},
	"accents.scale": {
		Comment: "Accent size relative to the art font size, never below min_size.",
	},
	"accents.min_size": {},

	// ── Font ─────────────────────────────────────────────────────
	"font.paths": {
		Comment: "Monospaced font files tried before the built-in list (~ expands to home).\nTTF, OTF, TTC and WOFF2 are supported.",
		Alternatives: []string{
			`paths = ["~/Library/Fonts/JetBrainsMono-Regular.ttf"]`,
		},
	},
	"font.search_dirs": {
		Comment: "Directories searched recursively (before the OS font folders) for files\nwhose names contain mono, menlo, monaco, consola or courier.",
		Alternatives: []string{
			`search_dirs = ["~/fonts"]`,
		},
	},
	"font.fallback": {
		Comment: "Download a font from Google Fonts when nothing local works.",
		Alternatives: []string{
			`fallback = "google:JetBrains Mono:400"`,
		},
	},
	"font.cache_dir": {
		Comment: "Where downloaded fonts are cached (default: assets/fonts/.cache).",
		Alternatives: []string{
			`cache_dir = "/tmp/starbanner-fonts"`,
		},
	},

	// ── Output ───────────────────────────────────────────────────
	"output.path": {
		Comment: "Where the PNG is written. Parent directories are created.",
	},

	// ── Log ──────────────────────────────────────────────────────
	"log": {
		Comment: "Logging configuration",
	},
	"log.level": {
		Comment: "Minimum log level. Options: \"trace\", \"debug\", \"info\", \"warn\", \"error\"",
		Alternatives: []string{
			`level = "debug"`,
			`level = "warn"`,
		},
	},
	"log.file": {
		Comment: "Write logs to a rotating file instead of stderr.",
		Alternatives: []string{
			`file = "` + paths.LogFile + `"`,
		},
	},
	"log.max_size_mb": {
		Comment: "Maximum log file size in megabytes before rotation.",
	},
}
