package tools

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// ExecResult holds the outcome of a single compressor invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Run executes argv. When verbose is set, stderr is tee'd to os.Stderr in
// real time; otherwise it is captured silently for error classification.
func Run(ctx context.Context, argv []string, verbose bool) ExecResult {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stderrBuf bytes.Buffer
	if verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}
