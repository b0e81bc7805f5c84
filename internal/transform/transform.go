// Package transform handles the decode/re-encode path: format conversion
// and resizing. Plain compression never goes through here; the pipeline
// only calls Render when --convert or --dimensions demand new pixels.
package transform

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"

	"github.com/kovidgoyal/imaging"
	_ "golang.org/x/image/webp"

	"github.com/backmassage/kompressor/internal/config"
)

// Intermediate JPEGs are encoded near-lossless; jpegoptim enforces the final
// quality afterwards.
const jpegStagingQuality = 95

// Decode reads and decodes a PNG, JPEG, or WEBP image.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}
	return img, nil
}

// Fit scales img down to fit within box, preserving aspect ratio. Images
// already inside the box are returned unchanged; nothing is ever upscaled.
func Fit(img image.Image, box config.Box) image.Image {
	if box.IsZero() {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= box.Width && b.Dy() <= box.Height {
		return img
	}
	return imaging.Fit(img, box.Width, box.Height, imaging.Lanczos)
}

// Render decodes source, applies the resize box, and encodes the result for
// the target format. PNG and JPEG targets are written directly at dest.
// WEBP cannot be encoded natively, so its pixels are staged as a lossless
// PNG next to dest for cwebp to consume; the staging path is returned and
// the caller is responsible for handing it to the compressor.
func Render(source, dest string, target config.Format, box config.Box) (staging string, err error) {
	img, err := Decode(source)
	if err != nil {
		return "", err
	}
	img = Fit(img, box)

	switch target {
	case config.FormatPNG:
		return "", imaging.Save(img, dest)

	case config.FormatJPEG:
		return "", imaging.Save(img, dest, imaging.JPEGQuality(jpegStagingQuality))

	case config.FormatWEBP:
		tmp, err := os.CreateTemp(filepath.Dir(dest), ".kompressor-*.png")
		if err != nil {
			return "", err
		}
		if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", fmt.Errorf("stage %q: %w", dest, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmp.Name())
			return "", err
		}
		return tmp.Name(), nil

	default:
		return "", fmt.Errorf("cannot encode format %q", target)
	}
}
