package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const defaultMaxImageBytes = 20 << 20

// Image is encoded image data in a format gofpdf can embed.
type Image struct {
	Data []byte
	// Type is one of "PNG", "JPG" or "GIF".
	Type string
}

// ImageLoader resolves an image location to embeddable image data.
type ImageLoader interface {
	LoadImage(ctx context.Context, location string) (Image, error)
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, location string) (Image, error)

// LoadImage calls f.
func (f ImageLoaderFunc) LoadImage(ctx context.Context, location string) (Image, error) {
	return f(ctx, location)
}

// DefaultImageLoader reads http(s) URLs, file:// URLs and local paths.
// Relative paths resolve against BaseDir.
type DefaultImageLoader struct {
	Client   *http.Client
	BaseDir  string
	MaxBytes int64
}

// LoadImage fetches location and normalizes it for embedding. WebP, BMP
// and TIFF sources are re-encoded as PNG.
func (l DefaultImageLoader) LoadImage(ctx context.Context, location string) (Image, error) {
	data, err := l.read(ctx, location)
	if err != nil {
		return Image{}, err
	}
	return NormalizeImage(data)
}

func (l DefaultImageLoader) read(ctx context.Context, location string) ([]byte, error) {
	limit := l.MaxBytes
	if limit <= 0 {
		limit = defaultMaxImageBytes
	}
	u, err := url.Parse(location)
	if err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l.fetch(ctx, location, limit)
		case "file":
			return readLimited(u.Path, limit)
		}
	}
	path := location
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	return readLimited(path, limit)
}

func (l DefaultImageLoader) fetch(ctx context.Context, location string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image fetch: unexpected status %s", resp.Status)
	}
	return readAllLimited(resp.Body, limit)
}

func readLimited(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("image open: %w", err)
	}
	defer f.Close()
	return readAllLimited(f, limit)
}

func readAllLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("image read: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}
	return data, nil
}

// NormalizeImage sniffs data and returns it in a format gofpdf can embed.
func NormalizeImage(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("image decode: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Image{}, fmt.Errorf("image decode: empty image")
	}
	switch format {
	case "jpeg":
		return Image{Data: data, Type: "JPG"}, nil
	case "gif":
		return Image{Data: data, Type: "GIF"}, nil
	case "png":
		if !isWideColor(cfg.ColorModel) {
			return Image{Data: data, Type: "PNG"}, nil
		}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("image decode: %w", err)
	}
	return encodePNG(img)
}

// isWideColor reports 16-bit models, which gofpdf cannot embed.
func isWideColor(m color.Model) bool {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	default:
		return false
	}
}

func encodePNG(img image.Image) (Image, error) {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return Image{}, fmt.Errorf("image encode: %w", err)
	}
	return Image{Data: buf.Bytes(), Type: "PNG"}, nil
}
