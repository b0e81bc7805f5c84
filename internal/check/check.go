// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for pngquant, jpegoptim, and cwebp.
package check

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/backmassage/kompressor/internal/config"
	"github.com/backmassage/kompressor/internal/tools"
)

// Sentinel errors returned by CheckDeps when a required compressor is missing.
var (
	ErrPngquantNotFound  = errors.New("pngquant not found on PATH")
	ErrJpegoptimNotFound = errors.New("jpegoptim not found on PATH")
	ErrCwebpNotFound     = errors.New("cwebp not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints availability and
// version of each external compressor. This is informational only, it does
// not stop on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(log, tools.BinPngquant, "--version")
	checkTool(log, tools.BinJpegoptim, "--version")
	checkTool(log, tools.BinCwebp, "-version")
}

// checkTool verifies a compressor is on PATH and logs its version string.
func checkTool(log Logger, bin, versionFlag string) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("%s not found", bin)
		return
	}
	out, err := exec.Command(bin, versionFlag).CombinedOutput()
	if err != nil {
		log.Warn("%s found but %s failed: %v", bin, versionFlag, err)
		return
	}
	log.Success("%s: %s", bin, firstLine(string(out)))
}

// CheckDeps is the pre-pipeline validation: it verifies that every
// compressor the batch will invoke is on PATH. Formats are collected from
// the source files plus the --convert target, so a pure-JPEG run does not
// require pngquant. Returns a sentinel error for the first missing tool.
func CheckDeps(cfg *config.Config) error {
	for format := range requiredFormats(cfg) {
		bin := tools.BinFor(format)
		if _, err := exec.LookPath(bin); err != nil {
			return missingErr(format)
		}
	}
	return nil
}

// requiredFormats collects the formats the batch will hand to a compressor.
// With --convert set, every file ends up compressed as the target format
// (conversion decodes in-process), so only that compressor is needed;
// otherwise one compressor per source extension.
func requiredFormats(cfg *config.Config) map[config.Format]bool {
	needed := make(map[config.Format]bool)
	if cfg.Convert != config.FormatNone {
		needed[cfg.Convert] = true
		return needed
	}
	for _, src := range cfg.Sources {
		if f, err := config.FormatForPath(src); err == nil {
			needed[f] = true
		}
	}
	return needed
}

// missingErr maps a format to the sentinel for its compressor.
func missingErr(format config.Format) error {
	switch format {
	case config.FormatPNG:
		return ErrPngquantNotFound
	case config.FormatJPEG:
		return ErrJpegoptimNotFound
	default:
		return ErrCwebpNotFound
	}
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(s)
}
