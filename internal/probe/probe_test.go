package probe

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/kompressor/internal/config"
)

// writeTestImage writes a small gradient image so the probed values are
// non-trivial. Encoder is chosen by ext (".png" or ".jpg").
func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 7), uint8(y * 5), 128, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	switch filepath.Ext(path) {
	case ".png":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
	default:
		t.Fatalf("unsupported test image ext: %s", path)
	}
	if err != nil {
		t.Fatal(err)
	}
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name       string
		file       string
		w, h       int
		wantFormat config.Format
	}{
		{"png", "cat.png", 64, 48, config.FormatPNG},
		{"jpeg", "cat.jpg", 32, 32, config.FormatJPEG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			writeTestImage(t, path, tt.w, tt.h)

			info, err := Probe(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", info.Format, tt.wantFormat)
			}
			if info.Width != tt.w || info.Height != tt.h {
				t.Errorf("dimensions = %s, want %dx%d", info.Resolution(), tt.w, tt.h)
			}
			if info.Bytes <= 0 {
				t.Errorf("Bytes = %d, want > 0", info.Bytes)
			}
		})
	}
}

func TestProbe_MismatchedExtension(t *testing.T) {
	// A PNG stored with a .jpg name: format comes from content.
	dir := t.TempDir()
	path := filepath.Join(dir, "actually-png.png")
	writeTestImage(t, path, 16, 16)
	misnamed := filepath.Join(dir, "actually-png.jpg")
	if err := os.Rename(path, misnamed); err != nil {
		t.Fatal(err)
	}

	info, err := Probe(misnamed)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != config.FormatPNG {
		t.Errorf("Format = %q, want png", info.Format)
	}
}

func TestProbe_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Probe(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	text := filepath.Join(dir, "note.png")
	if err := os.WriteFile(text, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Probe(text); err == nil {
		t.Error("expected error for non-image content")
	}
}
