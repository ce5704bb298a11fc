// Package paths centralizes file and directory names used across the project.
// All workspace-relative names are defined here as the single source of truth.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Workspace file names.
const (
	ConfigFile        = "banner.toml"
	DefaultConfigFile = "banner.default.toml"
	LogFile           = "starbanner.log"
	BinaryName        = "starbanner"
)

// Output and cache locations (relative to the workspace root).
const (
	OutputDir    = "assets"
	OutputFile   = "banner_1000x3000-rounded.png"
	FontCacheDir = "assets/fonts/.cache"
	LockExt      = ".lock"
)

// ///////////////////////////////////////////////
// Workspace
// ///////////////////////////////////////////////

// Workspace provides path construction methods rooted at the directory the
// tool runs in. An empty Root yields paths relative to the working directory.
type Workspace struct {
	Root string
}

// Config returns the full path to the user config file.
func (w Workspace) Config() string { return filepath.Join(w.Root, ConfigFile) }

// FontCache returns the directory downloaded fonts are cached in.
func (w Workspace) FontCache() string { return filepath.Join(w.Root, filepath.FromSlash(FontCacheDir)) }

// Resolve joins rel onto Root unless rel is already absolute.
func (w Workspace) Resolve(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(w.Root, rel)
}

// LockFor returns the advisory lock file guarding writes to output.
func LockFor(output string) string { return output + LockExt }
