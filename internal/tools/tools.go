// Package tools invokes the external compressors (pngquant, jpegoptim,
// cwebp): argv construction, execution with stderr capture, and error
// classification. There is no compression logic here; the binaries do all
// the work.
package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/backmassage/kompressor/internal/config"
)

// Compress compresses the image at dest in place using the compressor for
// format. input is the file fed to the compressor: normally dest itself,
// but a convert step targeting WEBP leaves a staging file that cwebp
// consumes instead (and which is removed afterwards).
func Compress(ctx context.Context, format config.Format, quality int, input, dest string, verbose bool) error {
	switch format {
	case config.FormatPNG:
		res := Run(ctx, PngquantArgs(quality, input, dest), verbose)
		return Classify(BinPngquant, res)

	case config.FormatJPEG:
		res := Run(ctx, JpegoptimArgs(quality, dest), verbose)
		return Classify(BinJpegoptim, res)

	case config.FormatWEBP:
		if input != dest {
			res := Run(ctx, CwebpArgs(quality, input, dest), verbose)
			if err := Classify(BinCwebp, res); err != nil {
				return err
			}
			return os.Remove(input)
		}
		return recompressWebp(ctx, quality, dest, verbose)

	default:
		return fmt.Errorf("no compressor for format %q", format)
	}
}

// recompressWebp re-encodes a WEBP in place. cwebp refuses to write its own
// input, so the result goes to a temporary file first and then replaces the
// original.
func recompressWebp(ctx context.Context, quality int, path string, verbose bool) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kompressor-*.webp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	tmp.Close()

	res := Run(ctx, CwebpArgs(quality, path, tmpPath), verbose)
	if err := Classify(BinCwebp, res); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
