// Package banner renders the starry ASCII-art banner image.
//
// The pipeline is strictly forward: pick the largest font size whose text
// block fits the canvas ([FitSize]), plan and paint a starfield
// ([StarField]), draw the shadowed text and accent glyphs, then cut rounded
// corners into the alpha channel ([RoundCorners]). [Render] runs all of it;
// [Save] writes the PNG.
package banner

import "strings"

// DefaultArt is the built-in banner text.
var DefaultArt = TrimArt(defaultArt)

const defaultArt = `
      ___       ___           ___           ___           ___     
     /\__\     /\  \         /\  \         /\__\         /\  \    
    /:/  /    /::\  \       /::\  \       /::|  |       /::\  \   
   /:/  /    /:/\:\  \     /:/\:\  \     /:|:|  |      /:/\:\  \  
  /:/  /    /:/  \:\  \   /::\~\:\  \   /:/|:|  |__   /::\~\:\  \ 
 /:/__/    /:/__/ \:\__\ /:/\:\ \:\__\ /:/ |:| /\__\ /:/\:\ \:\__\
 \:\  \    \:\  \ /:/  / \/_|::\/:/  / \/__|:|/:/  / \:\~\:\ \/__/
  \:\  \    \:\  /:/  /     |:|::/  /      |:/:/  /   \:\ \:\__\  
   \:\  \    \:\/:/  /      |:|\/__/       |::/  /     \:\ \/__/  
    \:\__\    \::/  /       |:|  |         /:/  /       \:\__\    
     \/__/     \/__/         \|__|         \/__/         \/__/    
`

// TrimArt normalizes line endings and drops blank lines from both ends.
// Interior blank lines and trailing spaces are kept.
func TrimArt(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Lines splits content into its rows.
func Lines(content string) []string {
	return strings.Split(content, "\n")
}
