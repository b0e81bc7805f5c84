package tools

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// pngquant exits 99 when it cannot reach the requested quality range.
const pngquantExitQuality = 99

// Classify turns a raw execution failure into an error with a clear,
// user-facing message. Returns nil when the invocation succeeded.
func Classify(bin string, res ExecResult) error {
	if res.Err == nil {
		return nil
	}

	var execErr *exec.Error
	if errors.As(res.Err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return fmt.Errorf(
			"%s not found on PATH (install with: apt install pngquant jpegoptim webp)", bin)
	}

	var exitErr *exec.ExitError
	if errors.As(res.Err, &exitErr) {
		code := exitErr.ExitCode()
		if bin == BinPngquant && code == pngquantExitQuality {
			return errors.New("pngquant: image cannot be compressed within the requested quality")
		}
		if tail := stderrTail(res.Stderr); tail != "" {
			return fmt.Errorf("%s failed (exit %d): %s", bin, code, tail)
		}
		return fmt.Errorf("%s failed (exit %d)", bin, code)
	}

	return fmt.Errorf("%s: %w", bin, res.Err)
}

// stderrTail returns the last non-empty stderr line, which is where the
// compressors put their actual error message.
func stderrTail(stderr string) string {
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return ""
}
