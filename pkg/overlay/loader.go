package overlay

import (
	"bytes"
	"context"
	"image"
	// Decoders for background images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedImageSource = errors.New("unsupported image source")
	ErrImageTooLarge          = errors.New("background image too large")
)

// ImageLoader fetches and decodes a background image from a reference.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// Loader resolves data URIs, local files when allowed, and http(s) URLs when allowed.
type Loader struct {
	httpClient  *resty.Client
	allowFiles  bool
	allowRemote bool
	maxPixels   int
	maxBytes    int64
}

func NewLoader(httpClient *resty.Client, config *Config) *Loader {
	return &Loader{
		httpClient:  httpClient,
		allowFiles:  config.AllowFiles,
		allowRemote: config.AllowRemote,
		maxPixels:   config.MaxPixels,
		maxBytes:    config.MaxImageBytes,
	}
}

// Load returns the decoded image. Images over the pixel limit are rejected from their header
// and wrap ErrSurfaceUnavailable; every other failure wraps ErrImageLoad.
func (l *Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "Load: %v", err)
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, errors.Wrapf(ErrImageLoad, "Load: %v", errors.Wrapf(ErrImageTooLarge, "%d bytes", len(data)))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "Load: decode failed: %v", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Wrapf(ErrSurfaceUnavailable, "Load: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if l.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(l.maxPixels) {
		return nil, errors.Wrapf(ErrSurfaceUnavailable, "Load: %v",
			errors.Wrapf(ErrImageTooLarge, "%dx%d exceeds the %d pixel limit", cfg.Width, cfg.Height, l.maxPixels))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "Load: decode failed: %v", err)
	}
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, dataURIScheme):
		_, data, err := DecodeDataURI(ref)
		return data, err

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if !l.allowRemote {
			return nil, errors.Wrapf(ErrUnsupportedImageSource, "remote images are disabled: %q", truncateRef(ref))
		}
		if l.httpClient == nil {
			return nil, errors.Wrap(ErrUnsupportedImageSource, "no HTTP client configured")
		}
		return l.download(ctx, ref)

	case l.allowFiles:
		path := ref
		if strings.HasPrefix(ref, "file://") {
			u, err := url.Parse(ref)
			if err != nil {
				return nil, errors.Wrap(err, "invalid file URL")
			}
			path = u.Path
		}
		data, err := os.ReadFile(path)
		return data, errors.Wrap(err, "file read failed")

	default:
		return nil, errors.Wrapf(ErrUnsupportedImageSource, "cannot load %q", truncateRef(ref))
	}
}

// download fetches ref, reading at most one byte past the size limit.
func (l *Loader) download(ctx context.Context, ref string) ([]byte, error) {
	resp, err := l.httpClient.R().SetContext(ctx).SetDoNotParseResponse(true).Get(ref)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP request failed")
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return nil, errors.Errorf("HTTP request returned %s", resp.Status())
	}

	var reader io.Reader = body
	if l.maxBytes > 0 {
		reader = io.LimitReader(body, l.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP read failed")
	}
	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, errors.Wrapf(ErrImageTooLarge, "response exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}

func truncateRef(ref string) string {
	const maxLen = 64
	if len(ref) > maxLen {
		return ref[:maxLen] + "..."
	}
	return ref
}
