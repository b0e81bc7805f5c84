package transform

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/kompressor/internal/config"
)

func writeTestImage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 4), 128, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, nil)
	default:
		t.Fatalf("unsupported test extension for %s", path)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestFit(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))

	tests := []struct {
		name       string
		box        config.Box
		wantW      int
		wantH      int
	}{
		{"zero box keeps size", config.Box{}, 100, 80},
		{"scales down to fit", config.Box{Width: 50, Height: 50}, 50, 40},
		{"bounded by height", config.Box{Width: 90, Height: 40}, 50, 40},
		{"never upscales", config.Box{Width: 500, Height: 500}, 100, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(img, tt.box)
			b := got.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Fit(%s) = %dx%d, want %dx%d", tt.box, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Decode(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Decode(missing) expected error, got nil")
	}
	if _, err := Decode(bogus); err == nil {
		t.Error("Decode(bogus) expected error, got nil")
	}
}

func TestRender_ConvertToJPEG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cat.png")
	dest := filepath.Join(dir, "cat.jpg")
	writeTestImage(t, src, 64, 48)

	staging, err := Render(src, dest, config.FormatJPEG, config.Box{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if staging != "" {
		t.Errorf("Render returned staging path %q for JPEG target", staging)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open dest: %v", err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode dest: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("dest format = %q, want jpeg", format)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("dest dimensions = %dx%d, want 64x48", cfg.Width, cfg.Height)
	}
}

func TestRender_ResizeOnly(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.png")
	dest := filepath.Join(dir, "small.png")
	writeTestImage(t, src, 100, 80)

	if _, err := Render(src, dest, config.FormatPNG, config.Box{Width: 50, Height: 50}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	f, err := os.Open(dest)
	if err != nil {
		t.Fatalf("open dest: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode dest: %v", err)
	}
	if cfg.Width != 50 || cfg.Height != 40 {
		t.Errorf("dest dimensions = %dx%d, want 50x40", cfg.Width, cfg.Height)
	}
}

func TestRender_WebpStaging(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cat.png")
	dest := filepath.Join(dir, "cat.webp")
	writeTestImage(t, src, 64, 48)

	staging, err := Render(src, dest, config.FormatWEBP, config.Box{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if staging == "" {
		t.Fatal("Render returned empty staging path for WEBP target")
	}
	defer os.Remove(staging)

	if !strings.HasSuffix(staging, ".png") {
		t.Errorf("staging path %q is not a .png", staging)
	}
	if filepath.Dir(staging) != dir {
		t.Errorf("staging path %q not next to dest", staging)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dest %q should not exist before compression, stat err = %v", dest, err)
	}

	f, err := os.Open(staging)
	if err != nil {
		t.Fatalf("open staging: %v", err)
	}
	defer f.Close()
	if _, format, err := image.DecodeConfig(f); err != nil || format != "png" {
		t.Errorf("staging decodes as (%q, %v), want png", format, err)
	}
}

func TestRender_UnknownTarget(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cat.png")
	writeTestImage(t, src, 8, 8)

	if _, err := Render(src, filepath.Join(dir, "out.bmp"), config.FormatNone, config.Box{}); err == nil {
		t.Error("Render with FormatNone expected error, got nil")
	}
}
