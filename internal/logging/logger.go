// Package logging provides the CLI's leveled logger. It is a thin wrapper
// around zap with a console encoder: colored capital levels when the
// resolved color mode allows, errors routed to stderr, and an optional
// plain-text file sink for --log.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/kompressor/internal/config"
	"github.com/backmassage/kompressor/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// Logger wraps a zap SugaredLogger behind printf-style level methods.
type Logger struct {
	sugar *zap.SugaredLogger
	out   *os.File // stream for non-error logs and spacers
	file  *os.File
}

// NewLogger configures colors from cfg, builds the zap cores, and optionally
// opens cfg.LogFile. Call Close() when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
	if term.Enabled() {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	consoleEncoder := zapcore.NewConsoleEncoder(encCfg)

	minLevel := zapcore.InfoLevel
	if cfg.Verbose {
		minLevel = zapcore.DebugLevel
	}

	// Errors go to stderr, everything else to stdout. With --json, stdout
	// is reserved for the report, so progress logs move to stderr too.
	out := os.Stdout
	if cfg.JSONOutput {
		out = os.Stderr
	}
	stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	infoLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= minLevel && lvl < zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), stderrLevel),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(out), infoLevel),
	}

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f

		// The file sink never carries ANSI escapes.
		fileEncCfg := zap.NewDevelopmentEncoderConfig()
		fileEncCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
		fileEncCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		fileLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= minLevel
		})
		cores = append(cores,
			zapcore.NewCore(zapcore.NewConsoleEncoder(fileEncCfg), zapcore.AddSync(f), fileLevel))
	}

	log := zap.New(zapcore.NewTee(cores...))
	return &Logger{sugar: log.Sugar(), out: out, file: file}, nil
}

// Spacer writes a blank line between per-file log blocks, to the same
// stream the progress logs go to.
func (l *Logger) Spacer() {
	fmt.Fprintln(l.out)
}

// Close flushes buffered entries and closes the log file if one was opened.
func (l *Logger) Close() error {
	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Success logs a completed action. Rendered green when colors are on.
func (l *Logger) Success(format string, args ...interface{}) {
	l.sugar.Infof(term.Green+format+term.NC, args...)
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs at ERROR level, routed to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the logger was built with
// Verbose set.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
