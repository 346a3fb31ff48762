// Package loader fetches and decodes image textures off the render thread and reports
// byte progress while doing so. It does not retry and does not deduplicate: callers own
// both policies.
package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	defaultUserAgent      = "earth-explorer/1.0"
	defaultTimeout        = 60 * time.Second
	defaultMaxTextureSize = 4096
	// sniffLen is how many leading bytes filetype needs to recognize a format.
	sniffLen = 262
)

// ProgressFunc receives percentages in [0, 100]. Calls for one load never decrease, and
// 100 is only reported once every byte has been read.
type ProgressFunc func(percent float32)

// LoadError is returned for any failed load. It carries the locator and the cause.
type LoadError struct {
	URI string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: %s: %v", e.URI, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ErrNotImage is the cause when the fetched bytes are not a known image format.
var ErrNotImage = errors.New("not an image")

// Texture is a decoded texture ready for upload. It is immutable after Load returns.
type Texture struct {
	uri    string
	format string
	img    *image.RGBA
}

// NewTexture wraps already-decoded pixels, e.g. a generated placeholder.
func NewTexture(uri string, img *image.RGBA) *Texture {
	return &Texture{uri: uri, format: "rgba", img: img}
}

// Key identifies the texture for GPU caching; it is the locator it was loaded from.
func (t *Texture) Key() string { return t.uri }

// RGBA returns the pixels.
func (t *Texture) RGBA() *image.RGBA { return t.img }

// Format is the detected file extension, e.g. "jpg".
func (t *Texture) Format() string { return t.format }

// Width returns the width in pixels.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height returns the height in pixels.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// Options configure a Loader. Zero values pick defaults.
type Options struct {
	Timeout        time.Duration
	MaxTextureSize int // larger images are scaled down to fit, keeping aspect
	UserAgent      string
	Client         *http.Client
}

// Loader loads textures from http(s) URLs, file:// URLs, or filesystem paths.
// It is safe for concurrent use.
type Loader struct {
	client    *http.Client
	maxSize   int
	userAgent string
}

// New returns a Loader.
func New(opts Options) *Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxTextureSize <= 0 {
		opts.MaxTextureSize = defaultMaxTextureSize
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &Loader{client: client, maxSize: opts.MaxTextureSize, userAgent: opts.UserAgent}
}

// Load fetches uri, reporting progress to progress (may be nil), and decodes it.
// Every error is a *LoadError. Cancelling ctx aborts the transfer.
func (l *Loader) Load(ctx context.Context, uri string, progress ProgressFunc) (*Texture, error) {
	tex, err := l.load(ctx, uri, progress)
	if err != nil {
		return nil, &LoadError{URI: uri, Err: err}
	}
	return tex, nil
}

func (l *Loader) load(ctx context.Context, uri string, progress ProgressFunc) (*Texture, error) {
	if progress == nil {
		progress = func(float32) {}
	}
	rc, size, err := l.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	progress(0)
	pr := &progressReader{ctx: ctx, r: rc, total: size, report: progress}
	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}
	if _, err := io.Copy(&buf, pr); err != nil {
		return nil, err
	}
	progress(100)

	data := buf.Bytes()
	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	kind, _ := filetype.Match(head)
	if !filetype.IsImage(head) {
		return nil, fmt.Errorf("%w (detected %q)", ErrNotImage, kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.Extension, err)
	}
	return &Texture{uri: uri, format: kind.Extension, img: l.fit(img)}, nil
}

// fit scales img down so neither side exceeds maxSize and returns it as RGBA.
func (l *Loader) fit(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > l.maxSize || h > l.maxSize {
		nw, nh := fitSize(w, h, l.maxSize)
		return transform.Resize(img, nw, nh, transform.Linear)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	return clone.AsRGBA(img)
}

func fitSize(w, h, max int) (int, int) {
	if w >= h {
		nh := h * max / w
		if nh < 1 {
			nh = 1
		}
		return max, nh
	}
	nw := w * max / h
	if nw < 1 {
		nw = 1
	}
	return nw, max
}

// open returns a reader for uri and its size in bytes (0 if unknown).
func (l *Loader) open(ctx context.Context, uri string) (io.ReadCloser, int64, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return l.openHTTP(ctx, uri)
	case strings.HasPrefix(uri, "file://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, 0, err
		}
		return openFile(u.Path)
	default:
		return openFile(uri)
	}
}

func (l *Loader) openHTTP(ctx context.Context, uri string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", l.userAgent)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	size := resp.ContentLength
	if size < 0 {
		size = 0
	}
	return resp.Body, size, nil
}

func openFile(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}
