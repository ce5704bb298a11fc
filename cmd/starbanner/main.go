// Package main implements the starbanner CLI, which renders the starry
// ASCII-art banner PNG and optionally re-renders it when its config changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"time"

	rootpkg "tools.zach/dev/starbanner"
	"tools.zach/dev/starbanner/internal/atomicfile"
	"tools.zach/dev/starbanner/internal/banner"
	"tools.zach/dev/starbanner/internal/config"
	"tools.zach/dev/starbanner/internal/fontload"
	"tools.zach/dev/starbanner/internal/logger"
	"tools.zach/dev/starbanner/internal/paths"
	"tools.zach/dev/starbanner/internal/watch"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at release time via ldflags (-X main.version=0.1.0).
// When ldflags are not set (bare go build), resolveVersion reads the VCS info
// that Go embeds automatically.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags at build time it is returned as-is; otherwise VCS revision and dirty
// state embedded by the Go toolchain are used to construct a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Flags
// ///////////////////////////////////////////////

// cliFlags holds the parsed command line.
type cliFlags struct {
	configPath string
	// configSet is true when -config was given explicitly; a missing file is
	// then an error instead of meaning "use defaults".
	configSet   bool
	out         string
	seed        uint64
	seedSet     bool
	watch       bool
	version     bool
	writeConfig string
}

// parseFlags parses args into [cliFlags]. Usage and parse errors go to stderr.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet(paths.BinaryName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &cliFlags{}
	var seed string
	fs.StringVar(&f.configPath, "config", paths.Workspace{}.Config(), "TOML config file")
	fs.StringVar(&f.out, "out", "", "Output PNG path (overrides output.path)")
	fs.StringVar(&seed, "seed", "", "Star placement seed (overrides stars.seed; 0 = random)")
	fs.BoolVar(&f.watch, "watch", false, "Re-render whenever the config or art file changes")
	fs.BoolVar(&f.version, "version", false, "Print the version and exit")
	fs.StringVar(&f.writeConfig, "write-config", "", "Write the documented default config to `PATH` and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "config":
			f.configSet = true
		case "seed":
			f.seedSet = true
		}
	})
	if f.seedSet {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -seed %q: %w", seed, err)
		}
		f.seed = n
	}
	return f, nil
}

// ///////////////////////////////////////////////
// Config
// ///////////////////////////////////////////////

// loadConfig reads the config named by the flags and applies flag overrides.
func loadConfig(f *cliFlags) (*config.Config, error) {
	if f.configSet {
		if _, err := os.Stat(f.configPath); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", f.configPath, err)
	}
	if f.out != "" {
		cfg.Output.Path = f.out
	}
	if f.seedSet {
		cfg.Stars.Seed = f.seed
	}
	return cfg, nil
}

// artResolver resolves art.file relative to the config file's directory.
func artResolver(configPath string) func(string) string {
	return paths.Workspace{Root: filepath.Dir(configPath)}.Resolve
}

// buildOptions maps the loaded [config.Config] onto [banner.Options].
// An empty content selects [banner.DefaultArt].
func buildOptions(cfg *config.Config, content string) (banner.Options, error) {
	if content == "" {
		content = banner.DefaultArt
	}

	bg, err := config.ParseHexColor(cfg.Canvas.Background)
	if err != nil {
		return banner.Options{}, fmt.Errorf("canvas.background: %w", err)
	}
	text, err := config.ParseHexColor(cfg.Art.Color)
	if err != nil {
		return banner.Options{}, fmt.Errorf("art.color: %w", err)
	}
	shadow, err := config.ParseHexColor(cfg.Art.ShadowColor)
	if err != nil {
		return banner.Options{}, fmt.Errorf("art.shadow_color: %w", err)
	}
	accent, err := config.ParseHexColor(cfg.Accents.Color)
	if err != nil {
		return banner.Options{}, fmt.Errorf("accents.color: %w", err)
	}

	return banner.Options{
		Width:             cfg.Canvas.Width,
		Height:            cfg.Canvas.Height,
		Content:           content,
		Background:        bg,
		TextColor:         text,
		ShadowColor:       shadow,
		MaxWidthFraction:  cfg.Art.MaxWidthFraction,
		MaxHeightFraction: cfg.Art.MaxHeightFraction,
		Sizes:             banner.SizeRange{Max: cfg.Art.MaxSize, Min: cfg.Art.MinSize},
		FallbackSize:      cfg.Art.FallbackSize,
		Stars: banner.StarField{
			Density:       cfg.Stars.Density,
			MinShade:      uint8(cfg.Stars.MinBrightness),
			MaxShade:      uint8(cfg.Stars.MaxBrightness),
			SparkleChance: cfg.Stars.SparkleChance,
			SparkleArm:    cfg.Stars.SparkleArm,
		},
		Accents: banner.Accents{
			Enabled: cfg.Accents.Enabled,
			Glyph:   cfg.Accents.Glyph,
			Color:   accent,
			Scale:   cfg.Accents.Scale,
			MinSize: cfg.Accents.MinSize,
		},
		CornerRadius: cfg.Canvas.CornerRadius,
	}, nil
}

// newResolver builds the font resolver for cfg: configured paths and
// directories first, then the built-in lists, then the optional download.
func newResolver(cfg *config.Config, log *slog.Logger) *fontload.Resolver {
	r := fontload.NewResolver(cfg.Font.Paths, cfg.Font.SearchDirs)
	r.Logger = log
	if cfg.Font.Fallback != "" {
		cacheDir := cfg.Font.CacheDir
		if cacheDir == "" {
			cacheDir = paths.Workspace{}.FontCache()
		}
		r.Fallback = cfg.Font.Fallback
		r.Fetcher = fontload.NewFetcher(cacheDir)
	}
	return r
}

// newRand returns the star RNG. Seed 0 picks a time-based seed, which is
// logged so a run can be reproduced with -seed.
func newRand(seed uint64, log *slog.Logger) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		log.Debug("random star seed", "seed", seed)
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// ///////////////////////////////////////////////
// Render
// ///////////////////////////////////////////////

// renderOnce runs the whole pipeline for cfg and reports the result on stdout.
func renderOnce(ctx context.Context, cfg *config.Config, configPath string, stdout io.Writer, log *slog.Logger) error {
	content, err := cfg.ArtText(artResolver(configPath))
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg, content)
	if err != nil {
		return err
	}

	fontPath, err := newResolver(cfg, log).Resolve(ctx)
	if err != nil {
		return err
	}
	f, err := fontload.Load(fontPath)
	if err != nil {
		return err
	}
	log.Debug("using font", "path", fontPath)

	start := time.Now()
	res, err := banner.Render(f, opts, newRand(cfg.Stars.Seed, log))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if res.Fit.Fallback {
		log.Warn("no font size fits the canvas, using fallback size",
			"size", res.Fit.Size, "min", opts.Sizes.Min, "max", opts.Sizes.Max)
	}

	if err := banner.Save(cfg.Output.Path, res.Image); err != nil {
		return err
	}
	log.Info("banner written", "path", cfg.Output.Path, "size", res.Fit.Size,
		"stars", len(res.Stars), "elapsed", time.Since(start).Round(time.Millisecond))

	fmt.Fprintf(stdout, "selected font size %d bounding box %d %d\n",
		res.Fit.Size, res.Fit.Bounds.Dx(), res.Fit.Bounds.Dy())
	fmt.Fprintln(stdout, cfg.Output.Path)
	return nil
}

// ///////////////////////////////////////////////
// Watch Mode
// ///////////////////////////////////////////////

// watchDebounce gives editors time to finish multi-step saves.
const watchDebounce = 150 * time.Millisecond

// watchLoop calls rerender after each (debounced) event until ctx is done.
func watchLoop(ctx context.Context, events <-chan struct{}, debounce time.Duration, rerender func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-events:
			timer := time.NewTimer(debounce)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			// Drop an event that arrived during the debounce window.
			select {
			case <-events:
			default:
			}
			rerender()
		}
	}
}

// lockOutput takes the advisory lock guarding writes to output. The
// returned function releases it and removes the lock file.
func lockOutput(output string) (func(), error) {
	lockPath := paths.LockFor(output)
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("another starbanner is writing %s: %w", output, err)
	}
	return func() {
		_ = unlockFile(f)
		f.Close()
		os.Remove(lockPath)
	}, nil
}

// runWatch renders on every change to the config or art file. A failed
// reload is logged and the previous output is kept.
func runWatch(ctx context.Context, fl *cliFlags, cfg *config.Config, stdout io.Writer, log *slog.Logger) error {
	release, err := lockOutput(cfg.Output.Path)
	if err != nil {
		return err
	}
	defer release()

	files := []string{fl.configPath}
	if cfg.Art.Text == "" && cfg.Art.File != "" {
		files = append(files, artResolver(fl.configPath)(cfg.Art.File))
	}
	w, err := watch.New(log, files...)
	if err != nil {
		return err
	}
	defer w.Close()
	if w.Polling() {
		log.Info("using polling mode for file watching")
	}
	log.Info("watching for changes", "files", files)

	if err := renderOnce(ctx, cfg, fl.configPath, stdout, log); err != nil {
		log.Error("render failed", "error", err)
	}

	watchLoop(ctx, w.Events(), watchDebounce, func() {
		next, err := loadConfig(fl)
		if err != nil {
			log.Error("config reload failed, keeping previous output", "error", err)
			return
		}
		if next.Output.Path != cfg.Output.Path {
			log.Warn("output.path changed; restart watch mode to move the lock", "path", next.Output.Path)
		}
		if err := renderOnce(ctx, next, fl.configPath, stdout, log); err != nil {
			log.Error("render failed, keeping previous output", "error", err)
		}
	})
	log.Info("watch stopped")
	return nil
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

// run executes the CLI with args and returns the error main reports.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fl, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fl.version {
		fmt.Fprintln(stdout, resolveVersion())
		return nil
	}
	if fl.writeConfig != "" {
		if dir := filepath.Dir(fl.writeConfig); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config dir: %w", err)
			}
		}
		if err := atomicfile.Write(fl.writeConfig, rootpkg.DefaultConfigTOML, 0o644); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintln(stdout, fl.writeConfig)
		return nil
	}

	cfg, err := loadConfig(fl)
	if err != nil {
		return err
	}

	log, logCloser, err := logger.NewLogger(cfg.Log.File, logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logCloser.Close()
	slog.SetDefault(log)

	log.Debug("starbanner starting", "version", resolveVersion(), "config", fl.configPath)

	if fl.watch {
		return runWatch(ctx, fl, cfg, stdout, log)
	}
	return renderOnce(ctx, cfg, fl.configPath, stdout, log)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := signalChannel()
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logger.Fail(slog.Default(), "starbanner failed", "error", err)
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
