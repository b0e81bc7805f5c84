package tools

// This file builds the argv for each external compressor: pngquant
// overwrites its output, jpegoptim works in place and strips EXIF, cwebp
// re-encodes at the requested quality.

import (
	"fmt"

	"github.com/backmassage/kompressor/internal/config"
)

// External compressor binary names.
const (
	BinPngquant  = "pngquant"
	BinJpegoptim = "jpegoptim"
	BinCwebp     = "cwebp"
)

// BinFor returns the compressor binary used for a format.
func BinFor(f config.Format) string {
	switch f {
	case config.FormatPNG:
		return BinPngquant
	case config.FormatJPEG:
		return BinJpegoptim
	default:
		return BinCwebp
	}
}

// PngquantArgs builds the argv for compressing input to output. The two may
// be the same path; --force allows pngquant to overwrite it.
func PngquantArgs(quality int, input, output string) []string {
	return []string{
		BinPngquant, "--force",
		"--quality", fmt.Sprintf("0-%d", quality),
		"--output", output,
		input,
	}
}

// JpegoptimArgs builds the argv for compressing path in place.
func JpegoptimArgs(quality int, path string) []string {
	return []string{
		BinJpegoptim, "--quiet", "--overwrite", "--strip-exif",
		"--max", fmt.Sprintf("%d", quality),
		path,
	}
}

// CwebpArgs builds the argv for encoding input to output as WEBP. cwebp
// refuses input == output, so callers route in-place recompression through a
// temporary file.
func CwebpArgs(quality int, input, output string) []string {
	return []string{
		BinCwebp,
		"-q", fmt.Sprintf("%d", quality),
		input,
		"-o", output,
	}
}
