package fontload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"tools.zach/dev/starbanner/internal/atomicfile"
)

// GoogleCSSURL is the Google Fonts CSS API endpoint.
const GoogleCSSURL = "https://fonts.googleapis.com/css2"

// Size limits for downloaded content.
const (
	maxCSSBytes  = 1 << 20
	maxFontBytes = 10 << 20
)

// modernUserAgent makes Google return WOFF2 URLs, which [Parse] converts.
const modernUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"

// fontURLRe extracts font file URLs from the CSS response.
// Matches: url(https://fonts.gstatic.com/s/jetbrainsmono/v18/xxx.woff2)
var fontURLRe = regexp.MustCompile(`url\((https?://[^)]+)\)`)

// ParseGoogleFontSpec parses a "google:Family:Weight" spec into its parts.
func ParseGoogleFontSpec(spec string) (family, weight string, ok bool) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) != 3 || parts[0] != "google" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// ///////////////////////////////////////////////
// Fetcher
// ///////////////////////////////////////////////

// Fetcher downloads fonts from the Google Fonts CSS API into a local cache.
type Fetcher struct {
	Client    *retryablehttp.Client
	CSSURL    string
	CacheDir  string
	UserAgent string
}

// NewFetcher returns a Fetcher caching into cacheDir with a retrying client.
func NewFetcher(cacheDir string) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil // suppress retryablehttp's default logging
	return &Fetcher{
		Client:    client,
		CSSURL:    GoogleCSSURL,
		CacheDir:  cacheDir,
		UserAgent: modernUserAgent,
	}
}

// CachePath returns where the font for family and weight is cached.
func (f *Fetcher) CachePath(family, weight string) string {
	name := strings.ReplaceAll(family, " ", "-") + "-" + weight + ".ttf"
	return filepath.Join(f.CacheDir, name)
}

// Fetch returns the path of a cached SFNT file for spec, downloading and
// converting it first when the cache is empty.
func (f *Fetcher) Fetch(ctx context.Context, spec string) (string, error) {
	family, weight, ok := ParseGoogleFontSpec(spec)
	if !ok {
		return "", fmt.Errorf("invalid google font spec %q: expected google:FAMILY:WEIGHT", spec)
	}

	cacheFile := f.CachePath(family, weight)
	if info, err := os.Stat(cacheFile); err == nil && info.Size() > 0 {
		return cacheFile, nil
	}

	cssURL := fmt.Sprintf("%s?family=%s:wght@%s", f.CSSURL, url.QueryEscape(family), url.QueryEscape(weight))
	css, err := f.get(ctx, cssURL, maxCSSBytes)
	if err != nil {
		return "", fmt.Errorf("fetch css for %s wght@%s: %w", family, weight, err)
	}

	fontURL := pickFontURL(string(css))
	if fontURL == "" {
		return "", fmt.Errorf("no font URL in Google Fonts CSS for %s wght@%s", family, weight)
	}

	data, err := f.get(ctx, fontURL, maxFontBytes)
	if err != nil {
		return "", fmt.Errorf("download font: %w", err)
	}
	data, err = maybeConvertWOFF2(fontURL, data)
	if err != nil {
		return "", err
	}
	if _, err := Parse(cacheFile, data); err != nil {
		return "", fmt.Errorf("downloaded font: %w", err)
	}

	if err := os.MkdirAll(f.CacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create font cache dir: %w", err)
	}
	if err := atomicfile.Write(cacheFile, data, 0o644); err != nil {
		return "", fmt.Errorf("cache font: %w", err)
	}
	return cacheFile, nil
}

// get performs a GET and returns at most limit bytes of a 200 response body.
func (f *Fetcher) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, rawURL)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// pickFontURL returns the font URL from the "latin" subset block when the
// CSS has one, else the first URL in the document.
func pickFontURL(css string) string {
	if i := strings.Index(css, "/* latin */"); i >= 0 {
		if m := fontURLRe.FindStringSubmatch(css[i:]); m != nil {
			return m[1]
		}
	}
	if m := fontURLRe.FindStringSubmatch(css); m != nil {
		return m[1]
	}
	return ""
}
