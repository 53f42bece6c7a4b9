package scrape

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// SourceKind classifies where content comes from
type SourceKind string

const (
	KindAuto SourceKind = ""     // Detect from the source string
	KindURL  SourceKind = "url"  // Well-formed http(s) URL
	KindFile SourceKind = "file" // Local HTML document
)

// ParseSourceKind validates a user-supplied kind override
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return KindAuto, nil
	case "url":
		return KindURL, nil
	case "file":
		return KindFile, nil
	default:
		return "", fmt.Errorf("invalid source kind: %q (must be url or file)", s)
	}
}

// DetectKind classifies a source as a local HTML file or a URL.
// Files win over URL-looking strings because existence is checked first.
func DetectKind(source string) (SourceKind, error) {
	if isHTMLFile(source) {
		return KindFile, nil
	}
	if isValidURL(source) {
		return KindURL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrAmbiguousSource, source)
}

// isHTMLFile reports whether the path is an existing file with a
// recognized HTML extension
func isHTMLFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

// isValidURL requires both a http(s) scheme and a host
func isValidURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// DomainOf extracts the domain from a URL, without a www prefix.
// Non-URLs come back unchanged so file sources keep a usable identifier.
func DomainOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
