package pdf

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	return img
}

func encodeWith(t *testing.T, encode func(*bytes.Buffer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func pngBytes(t *testing.T, img image.Image) []byte {
	return encodeWith(t, func(b *bytes.Buffer) error { return png.Encode(b, img) })
}

func TestNormalizeImage(t *testing.T) {
	src := testImage(16, 8)
	pngData := pngBytes(t, src)
	got, err := NormalizeImage(pngData)
	if err != nil || got.Type != "PNG" || !bytes.Equal(got.Data, pngData) {
		t.Fatalf("expected PNG passthrough, got %q err=%v", got.Type, err)
	}

	jpegData := encodeWith(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) })
	if got, err := NormalizeImage(jpegData); err != nil || got.Type != "JPG" {
		t.Fatalf("expected JPG, got %q err=%v", got.Type, err)
	}

	bmpData := encodeWith(t, func(b *bytes.Buffer) error { return bmp.Encode(b, src) })
	got, err = NormalizeImage(bmpData)
	if err != nil || got.Type != "PNG" {
		t.Fatalf("expected BMP converted to PNG, got %q err=%v", got.Type, err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(got.Data))
	if err != nil || cfg.Width != 16 || cfg.Height != 8 {
		t.Fatalf("unexpected converted image %+v err=%v", cfg, err)
	}

	wide := image.NewRGBA64(image.Rect(0, 0, 4, 4))
	got, err = NormalizeImage(pngBytes(t, wide))
	if err != nil {
		t.Fatalf("normalize 16-bit: %v", err)
	}
	cfg, err = png.DecodeConfig(bytes.NewReader(got.Data))
	if err != nil || isWideColor(cfg.ColorModel) {
		t.Fatalf("expected 8-bit re-encode, err=%v", err)
	}

	if _, err := NormalizeImage([]byte("not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultImageLoaderLocal(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, testImage(4, 4))
	if err := os.WriteFile(filepath.Join(dir, "a.png"), data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader := DefaultImageLoader{BaseDir: dir}
	ctx := context.Background()
	for _, loc := range []string{"a.png", filepath.Join(dir, "a.png"), "file://" + filepath.ToSlash(filepath.Join(dir, "a.png"))} {
		img, err := loader.LoadImage(ctx, loc)
		if err != nil || img.Type != "PNG" {
			t.Fatalf("load %q: type=%q err=%v", loc, img.Type, err)
		}
	}
	if _, err := loader.LoadImage(ctx, "missing.png"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	small := DefaultImageLoader{BaseDir: dir, MaxBytes: 8}
	if _, err := small.LoadImage(ctx, "a.png"); err == nil {
		t.Fatalf("expected size limit error")
	}
}

func TestDefaultImageLoaderHTTP(t *testing.T) {
	data := pngBytes(t, testImage(4, 4))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/a.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	loader := DefaultImageLoader{Client: srv.Client()}
	img, err := loader.LoadImage(context.Background(), srv.URL+"/a.png")
	if err != nil || img.Type != "PNG" {
		t.Fatalf("load: type=%q err=%v", img.Type, err)
	}
	if _, err := loader.LoadImage(context.Background(), srv.URL+"/missing.png"); err == nil {
		t.Fatalf("expected status error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := loader.LoadImage(ctx, srv.URL+"/a.png"); err == nil {
		t.Fatalf("expected canceled context error")
	}
}
