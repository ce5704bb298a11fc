// Package starbanner embeds the documented default configuration.
//
// The root package exists solely to embed [banner.default.toml] via
// [DefaultConfigTOML], which `starbanner -write-config` writes out.
package starbanner

import _ "embed"

// DefaultConfigTOML holds the raw bytes of banner.default.toml, generated by
// cmd/genconfig and embedded at build time.
//
//go:embed banner.default.toml
var DefaultConfigTOML []byte
