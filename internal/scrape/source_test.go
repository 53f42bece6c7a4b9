package scrape

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSourceKind(t *testing.T) {
	tests := []struct {
		input   string
		want    SourceKind
		wantErr bool
	}{
		{"", KindAuto, false},
		{"url", KindURL, false},
		{"URL", KindURL, false},
		{"file", KindFile, false},
		{" file ", KindFile, false},
		{"ftp", "", true},
	}

	for _, tt := range tests {
		got, err := ParseSourceKind(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseSourceKind(%q) = %v, want error", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSourceKind(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSourceKind(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDetectKind(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(htmlPath, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		source string
		want   SourceKind
	}{
		{"https url", "https://example.com/article", KindURL},
		{"http url", "http://example.com", KindURL},
		{"existing html file", htmlPath, KindFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectKind(tt.source)
			if err != nil {
				t.Fatalf("DetectKind(%q) error: %v", tt.source, err)
			}
			if got != tt.want {
				t.Errorf("DetectKind(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestDetectKindAmbiguous(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"missing file", "no-such-file.html"},
		{"bare word", "example"},
		{"unsupported scheme", "ftp://example.com/file"},
		{"scheme without host", "https://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DetectKind(tt.source); !errors.Is(err, ErrAmbiguousSource) {
				t.Errorf("DetectKind(%q) error = %v, want ErrAmbiguousSource", tt.source, err)
			}
		})
	}
}

func TestDomainOf(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.example.com/article", "example.com"},
		{"https://news.example.org/a/b", "news.example.org"},
		{"page.html", "page.html"},
	}
	for _, tt := range tests {
		if got := DomainOf(tt.raw); got != tt.want {
			t.Errorf("DomainOf(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
