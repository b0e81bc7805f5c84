// Package probe inspects image files: byte size, pixel dimensions, and the
// actual encoded format (from file content, not the extension).
package probe

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg" // register decoders for image.DecodeConfig
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/backmassage/kompressor/internal/config"
)

// ImageInfo describes a probed image.
type ImageInfo struct {
	Format config.Format
	Width  int
	Height int
	Bytes  int64
}

// Resolution returns "WxH".
func (i *ImageInfo) Resolution() string {
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}

// Probe stats and decodes the image header at path. The pixel data itself is
// not decoded.
func Probe(path string) (*ImageInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	imgCfg, name, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	format, err := config.ParseFormat(name)
	if err != nil {
		return nil, fmt.Errorf("probe %q: %w", path, err)
	}

	return &ImageInfo{
		Format: format,
		Width:  imgCfg.Width,
		Height: imgCfg.Height,
		Bytes:  fi.Size(),
	}, nil
}
