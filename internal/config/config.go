// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// --- Enum types for validated string fields ---

// Format identifies a supported image format.
type Format string

const (
	FormatNone Format = ""     // No conversion requested.
	FormatPNG  Format = "png"  // Compressed with pngquant.
	FormatJPEG Format = "jpeg" // Compressed with jpegoptim.
	FormatWEBP Format = "webp" // Compressed with cwebp.
)

// Ext returns the canonical file extension for the format, with leading dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Box is a WxH bounding box for --dimensions. The zero value means no resize.
type Box struct {
	Width  int
	Height int
}

// IsZero reports whether no resize was requested.
func (b Box) IsZero() bool { return b.Width == 0 && b.Height == 0 }

func (b Box) String() string {
	if b.IsZero() {
		return ""
	}
	return fmt.Sprintf("%dx%d", b.Width, b.Height)
}

// DefaultQuality is the quality used when --quality is not given.
const DefaultQuality = 80

// DefaultOutputDir is the subdirectory compressed images land in unless
// overridden with --output-dir.
const DefaultOutputDir = "kompressor"

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Sources (set from positional args) and output location.
	Sources   []string
	OutputDir string // Resolved to an absolute path by ParseFlags.

	// Compression settings.
	Quality int // 1-100. Default: 80.

	// Transformation settings.
	DestRename   string // Suffix inserted before the destination extension.
	SourceRename string // Suffix applied to the original file on disk.
	Convert      Format // Target format, or FormatNone.
	Resize       Box    // Bounding box for --dimensions; zero means keep size.

	// Behavior flags.
	DryRun bool
	Force  bool // Overwrite an existing destination instead of failing.

	// Display and logging.
	JSONOutput bool // Machine-readable report instead of the table.
	Verbose    bool
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults set. Used as the base
// before [ParseFlags] applies overrides.
func DefaultConfig() Config {
	return Config{
		OutputDir: DefaultOutputDir,
		Quality:   DefaultQuality,
		Convert:   FormatNone,
		ColorMode: ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks quality bounds, the convert target, the resize box, and
// (when not in CheckOnly mode) that at least one source was given.
func (c *Config) Validate() error {
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be 1-100 (got %d)", c.Quality)
	}

	switch c.Convert {
	case FormatNone, FormatPNG, FormatJPEG, FormatWEBP:
		// valid
	default:
		return errors.New("invalid convert target (use 'png', 'jpeg' or 'webp')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Resize.Width < 0 || c.Resize.Height < 0 {
		return errors.New("dimensions must not be negative")
	}
	if (c.Resize.Width == 0) != (c.Resize.Height == 0) {
		return errors.New("dimensions need both width and height (e.g. 800x600)")
	}

	if c.CheckOnly {
		return nil
	}
	if len(c.Sources) == 0 {
		return errors.New("need at least one source image")
	}
	return nil
}

// ParseFormat canonicalizes a user-supplied format name.
// "jpg" and "jpeg" both map to FormatJPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWEBP, nil
	}
	return FormatNone, fmt.Errorf("unsupported image format %q", s)
}

// FormatForPath returns the format implied by a file's extension, or an
// error for extensions outside the supported set.
func FormatForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return FormatPNG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".webp":
		return FormatWEBP, nil
	}
	return FormatNone, fmt.Errorf("unsupported image type: %s", strings.TrimPrefix(ext, "."))
}

var reDimensions = regexp.MustCompile(`^([0-9]+)\s*[xX]\s*([0-9]+)$`)

// ParseDimensions parses a WxH string (e.g. "800x600") into a Box.
func ParseDimensions(s string) (Box, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Box{}, nil
	}
	m := reDimensions.FindStringSubmatch(s)
	if m == nil {
		return Box{}, fmt.Errorf("invalid dimensions %q (use WxH, e.g. 800x600)", s)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	if w == 0 || h == 0 {
		return Box{}, fmt.Errorf("dimensions must be positive (got %q)", s)
	}
	return Box{Width: w, Height: h}, nil
}
