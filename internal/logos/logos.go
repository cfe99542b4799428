// Package logos lazily downloads team logos into a local directory so the
// display can draw them without hitting the network per frame.
package logos

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"sports-scoreboard/internal/logging"
)

const defaultTimeout = 30 * time.Second

var imageContentTypes = []string{"image/png", "image/jpeg", "image/jpg", "image/gif"}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Downloader fetches team logos on demand. Failed downloads are remembered
// for the life of the process so one bad URL does not get retried per frame.
type Downloader struct {
	dir    string
	client httpDoer
	logger *slog.Logger

	mu     sync.Mutex
	failed map[string]struct{}
}

// NewDownloader returns a downloader writing under dir.
func NewDownloader(dir string, client *http.Client, logger *slog.Logger) *Downloader {
	var doer httpDoer = &http.Client{Timeout: defaultTimeout}
	if client != nil {
		doer = client
	}
	return &Downloader{
		dir:    dir,
		client: doer,
		logger: logger,
		failed: make(map[string]struct{}),
	}
}

// NormalizeAbbreviation maps a team abbreviation to its logo filename stem.
func NormalizeAbbreviation(abbr string) string {
	return strings.ToUpper(strings.TrimSpace(abbr))
}

// Path returns the on-disk path a team's logo lives at once fetched.
func (d *Downloader) Path(league, abbr string) string {
	return filepath.Join(d.dir, league, NormalizeAbbreviation(abbr)+".png")
}

// Ensure makes sure a logo exists on disk, downloading it when absent. A
// missing URL or a failed download falls back to a generated placeholder
// tile so the display always has something to draw. It returns the local
// path and whether the file is usable.
func (d *Downloader) Ensure(ctx context.Context, league, abbr, url string) (string, bool) {
	path := d.Path(league, abbr)
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	if url == "" {
		return d.placeholder(league, abbr, path)
	}

	d.mu.Lock()
	_, gaveUp := d.failed[url]
	d.mu.Unlock()
	if gaveUp {
		return d.placeholder(league, abbr, path)
	}

	if err := d.download(ctx, url, path); err != nil {
		logging.Warn(d.logger, "logo download failed",
			logging.FieldLeague, league, "team", abbr, "err", err)
		d.mu.Lock()
		d.failed[url] = struct{}{}
		d.mu.Unlock()
		return d.placeholder(league, abbr, path)
	}

	logging.Debug(d.logger, "logo downloaded", logging.FieldLeague, league, "team", abbr)
	return path, true
}

func (d *Downloader) placeholder(league, abbr, path string) (string, bool) {
	if err := writePlaceholder(path, NormalizeAbbreviation(abbr)); err != nil {
		logging.Warn(d.logger, "placeholder logo failed",
			logging.FieldLeague, league, "team", abbr, "err", err)
		return "", false
	}
	logging.Debug(d.logger, "placeholder logo created",
		logging.FieldLeague, league, "team", abbr)
	return path, true
}

func (d *Downloader) download(ctx context.Context, url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if !isImage(resp.Header.Get("Content-Type")) {
		return fmt.Errorf("non-image content type %q", resp.Header.Get("Content-Type"))
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

const placeholderSize = 64

// writePlaceholder renders a dark tile with the team abbreviation centered
// on it, PNG-encoded like a real logo.
func writePlaceholder(path, abbr string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 32, G: 32, B: 32, A: 255}), image.Point{}, draw.Src)

	text := abbr
	if len(text) > 3 {
		text = text[:3]
	}
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot: fixed.P(
			(placeholderSize-width)/2,
			(placeholderSize-face.Height)/2+face.Ascent,
		),
	}
	drawer.DrawString(text)

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func isImage(contentType string) bool {
	contentType = strings.ToLower(contentType)
	for _, t := range imageContentTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
