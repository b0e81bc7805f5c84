// Package naming computes destination and source-rename paths for a single
// image, and enforces the collision policy: a computed destination that
// already exists is an error unless a rename suffix (or --force)
// disambiguates it.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options are the inputs to path computation. OutputDir must be absolute.
type Options struct {
	OutputDir    string
	DestRename   string // Suffix inserted before the destination extension.
	SourceRename string // Suffix applied to the original file, or "".
	TargetExt    string // Destination extension override (with dot), or "".
}

// Paths is the result of [ComputePaths].
type Paths struct {
	Dest      string // Where the compressed image is written.
	NewSource string // Source path after rename; "" when no rename requested.
}

// AppendSuffix inserts suffix between the stem and the extension of a
// basename: AppendSuffix("image.jpg", "-80") == "image-80.jpg".
func AppendSuffix(basename, suffix string) string {
	ext := filepath.Ext(basename)
	return strings.TrimSuffix(basename, ext) + suffix + ext
}

// ComputePaths is a pure function of (source path, options) to (destination
// path, new source path). It touches no filesystem state; existence checks
// live in [CheckDest].
func ComputePaths(source string, opts Options) (Paths, error) {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	destExt := ext
	if opts.TargetExt != "" {
		destExt = opts.TargetExt
	}
	dest := filepath.Join(opts.OutputDir, stem+opts.DestRename+destExt)

	var newSource string
	if opts.SourceRename != "" {
		newSource = filepath.Join(filepath.Dir(source), stem+opts.SourceRename+ext)
	}

	if dest == source {
		return Paths{}, fmt.Errorf(
			"source and destination are the same file: %s (pass --destination-rename or another --output-dir)", dest)
	}
	if newSource != "" && newSource == dest {
		return Paths{}, fmt.Errorf(
			"source rename and destination collide: %s", dest)
	}

	return Paths{Dest: dest, NewSource: newSource}, nil
}

// CheckDest enforces the collision policy against the filesystem: an
// existing destination fails unless force is set.
func CheckDest(dest string, force bool) error {
	if force {
		return nil
	}
	if _, err := os.Stat(dest); err == nil {
		return fmt.Errorf(
			"destination already exists: %s (pass --destination-rename or --force)", dest)
	}
	return nil
}

// EnsureDir creates the destination directory if absent.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
