package fontload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"tools.zach/dev/starbanner/internal/logger"
)

// ErrNoFontFound is returned by [Resolver.Resolve] when no candidate path,
// search result or download produced a usable font.
var ErrNoFontFound = errors.New("no usable monospaced font found")

// ///////////////////////////////////////////////
// Defaults
// ///////////////////////////////////////////////

// DefaultCandidates lists well-known monospaced font files in priority order.
// Paths starting with "~/" are relative to the user's home directory.
var DefaultCandidates = []string{
	"/Library/Fonts/Menlo.ttc",
	"/System/Library/Fonts/Menlo.ttc",
	"/System/Library/Fonts/Monaco.ttf",
	"/System/Library/Fonts/SFNSMono.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/usr/share/fonts/dejavu-sans-mono-fonts/DejaVuSansMono.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	"/usr/share/fonts/liberation-mono/LiberationMono-Regular.ttf",
	"/usr/share/fonts/truetype/ubuntu/UbuntuMono-R.ttf",
	"C:/Windows/Fonts/consola.ttf",
	"C:/Windows/Fonts/cour.ttf",
}

// DefaultSearchDirs lists the font folders searched recursively once every
// candidate has failed.
var DefaultSearchDirs = []string{
	"~/Library/Fonts",
	"/Library/Fonts",
	"/System/Library/Fonts",
	"~/.local/share/fonts",
	"~/.fonts",
	"/usr/local/share/fonts",
	"/usr/share/fonts",
	"C:/Windows/Fonts",
}

// DefaultPatterns are the case-insensitive file name fragments that mark a
// font as monospaced.
var DefaultPatterns = []string{"mono", "menlo", "monaco", "consola", "courier"}

// fontExtensions are the file extensions considered during the search.
var fontExtensions = []string{"ttf", "ttc", "otf", "woff2"}

// ///////////////////////////////////////////////
// Resolver
// ///////////////////////////////////////////////

// Resolver finds a usable font file. The zero value searches nothing; use
// [NewResolver] for the built-in lists.
type Resolver struct {
	// Candidates are probed in order; the first usable one wins.
	Candidates []string
	// SearchDirs are globbed recursively, in order, when no candidate works.
	SearchDirs []string
	// Patterns are file name fragments matched case-insensitively.
	Patterns []string
	// Fallback is a "google:FAMILY:WEIGHT" spec tried last. Empty disables it.
	Fallback string
	// Fetcher downloads Fallback. Required when Fallback is set.
	Fetcher *Fetcher
	// Probe checks a path; defaults to [Probe].
	Probe func(path string) error
	// Logger receives per-candidate diagnostics; defaults to slog.Default().
	Logger *slog.Logger
	// Home replaces os.UserHomeDir for "~/" expansion when non-empty.
	Home string
}

// NewResolver returns a Resolver that tries extraPaths and extraDirs before
// the built-in candidates and search directories.
func NewResolver(extraPaths, extraDirs []string) *Resolver {
	return &Resolver{
		Candidates: append(append([]string{}, extraPaths...), DefaultCandidates...),
		SearchDirs: append(append([]string{}, extraDirs...), DefaultSearchDirs...),
		Patterns:   DefaultPatterns,
	}
}

// Resolve returns the path of the first usable font. Individual failures are
// expected and skipped; only exhausting every source is an error, and it
// wraps [ErrNoFontFound].
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	log := r.slogger()

	for _, c := range r.Candidates {
		path := r.expandHome(c)
		if r.usable(log, path) {
			log.Debug("font resolved from candidate list", "path", path)
			return path, nil
		}
	}

	for _, d := range r.SearchDirs {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if path, ok := r.search(log, r.expandHome(d)); ok {
			log.Debug("font resolved by directory search", "dir", d, "path", path)
			return path, nil
		}
	}

	var fetchErr error
	if r.Fallback != "" {
		path, err := r.fetchFallback(ctx)
		if err == nil && r.usable(log, path) {
			log.Info("font resolved by download", "spec", r.Fallback, "path", path)
			return path, nil
		}
		if err == nil {
			err = fmt.Errorf("downloaded font %s is not usable", path)
		}
		fetchErr = err
		log.Warn("font download failed", "spec", r.Fallback, "error", err)
	}

	msg := fmt.Errorf("%w (tried %d paths and %d directories); install a monospaced font, "+
		"add its path to font.paths, or set font.fallback", ErrNoFontFound, len(r.Candidates), len(r.SearchDirs))
	if fetchErr != nil {
		return "", fmt.Errorf("%w: %w", msg, fetchErr)
	}
	return "", msg
}

// usable probes path, logging and swallowing the failure.
func (r *Resolver) usable(log *slog.Logger, path string) bool {
	probe := r.Probe
	if probe == nil {
		probe = Probe
	}
	if err := probe(path); err != nil {
		logger.Trace(log, "font candidate rejected", "path", path, "error", err)
		return false
	}
	return true
}

// search globs dir for font files whose names contain any of the patterns
// and returns the first usable match in lexical order.
func (r *Resolver) search(log *slog.Logger, dir string) (string, bool) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}

	matches, err := doublestar.Glob(os.DirFS(dir), r.globPattern(),
		doublestar.WithCaseInsensitive(),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		log.Debug("font search failed", "dir", dir, "error", err)
		return "", false
	}
	sort.Strings(matches)

	for _, m := range matches {
		path := filepath.Join(dir, filepath.FromSlash(m))
		if r.usable(log, path) {
			return path, true
		}
	}
	return "", false
}

// globPattern builds "**/*{p1,p2}*.{ext1,ext2}" from the configured patterns.
func (r *Resolver) globPattern() string {
	patterns := make([]string, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		// Glob metacharacters in a fragment would change its meaning.
		if p = strings.TrimSpace(p); p != "" && !strings.ContainsAny(p, `*?[]{},\`) {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return "**/*{" + strings.Join(patterns, ",") + "}*.{" + strings.Join(fontExtensions, ",") + "}"
}

// fetchFallback downloads the fallback font into the cache.
func (r *Resolver) fetchFallback(ctx context.Context) (string, error) {
	if r.Fetcher == nil {
		return "", fmt.Errorf("font.fallback %q set but no fetcher configured", r.Fallback)
	}
	return r.Fetcher.Fetch(ctx, r.Fallback)
}

// expandHome replaces a leading "~/" with the home directory.
func (r *Resolver) expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return filepath.FromSlash(p)
	}
	home := r.Home
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return filepath.FromSlash(p)
		}
		home = h
	}
	return filepath.Join(home, filepath.FromSlash(strings.TrimPrefix(p, "~")))
}

func (r *Resolver) slogger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}
