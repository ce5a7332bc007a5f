package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBackground(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(p, []byte{0x89, 'P', 'N', 'G'}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	uri, err := LoadBackground(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected uri prefix %q", uri)
	}
	if !strings.HasSuffix(uri, "iVBORw==") {
		t.Fatalf("unexpected payload %q", uri)
	}
}

func TestLoadBackgroundMissing(t *testing.T) {
	if _, err := LoadBackground(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDataURIUnknownExt(t *testing.T) {
	if got := DataURI("WEBPX", []byte("a")); !strings.HasPrefix(got, "data:image/webpx;base64,") {
		t.Fatalf("unexpected uri %q", got)
	}
}
