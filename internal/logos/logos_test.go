package logos

import (
	"context"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDownloadsOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("fake png bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	d := NewDownloader(dir, srv.Client(), nil)

	path, ok := d.Ensure(context.Background(), "nba", "lal", srv.URL+"/lal.png")
	if !ok {
		t.Fatal("Ensure failed")
	}
	if want := filepath.Join(dir, "nba", "LAL.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("logo file missing: %v", err)
	}

	if _, ok := d.Ensure(context.Background(), "nba", "lal", srv.URL+"/lal.png"); !ok {
		t.Fatal("second Ensure failed")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (cached on disk)", calls)
	}
}

func TestEnsureNonImageFallsBackToPlaceholder(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not a logo</html>"))
	}))
	defer srv.Close()

	d := NewDownloader(t.TempDir(), srv.Client(), nil)

	path, ok := d.Ensure(context.Background(), "nba", "bos", srv.URL+"/bos.png")
	if !ok {
		t.Fatal("failed download should still yield a placeholder")
	}
	assertValidPNG(t, path)

	// The placeholder satisfies later lookups; the bad URL is never retried.
	d.Ensure(context.Background(), "nba", "bos", srv.URL+"/bos.png")
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestEnsureNoURLGeneratesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	d := NewDownloader(dir, nil, nil)

	path, ok := d.Ensure(context.Background(), "nba", "mia", "")
	if !ok {
		t.Fatal("empty URL should yield a placeholder")
	}
	if want := filepath.Join(dir, "nba", "MIA.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	assertValidPNG(t, path)
}

func assertValidPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("placeholder missing: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("placeholder is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("placeholder has no pixels")
	}
}

func TestNormalizeAbbreviation(t *testing.T) {
	if got := NormalizeAbbreviation(" lal "); got != "LAL" {
		t.Errorf("NormalizeAbbreviation = %q", got)
	}
}
