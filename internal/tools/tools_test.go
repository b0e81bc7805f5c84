package tools

import (
	"context"
	"errors"
	"os/exec"
	"reflect"
	"strings"
	"testing"

	"github.com/backmassage/kompressor/internal/config"
)

func TestBinFor(t *testing.T) {
	tests := []struct {
		format config.Format
		want   string
	}{
		{config.FormatPNG, "pngquant"},
		{config.FormatJPEG, "jpegoptim"},
		{config.FormatWEBP, "cwebp"},
	}
	for _, tt := range tests {
		if got := BinFor(tt.format); got != tt.want {
			t.Errorf("BinFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestPngquantArgs(t *testing.T) {
	got := PngquantArgs(70, "/out/cat.png", "/out/cat.png")
	want := []string{
		"pngquant", "--force",
		"--quality", "0-70",
		"--output", "/out/cat.png",
		"/out/cat.png",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PngquantArgs = %v, want %v", got, want)
	}
}

func TestJpegoptimArgs(t *testing.T) {
	got := JpegoptimArgs(80, "/out/cat.jpg")
	want := []string{
		"jpegoptim", "--quiet", "--overwrite", "--strip-exif",
		"--max", "80",
		"/out/cat.jpg",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("JpegoptimArgs = %v, want %v", got, want)
	}
}

func TestCwebpArgs(t *testing.T) {
	got := CwebpArgs(55, "/out/cat.png", "/out/cat.webp")
	want := []string{
		"cwebp",
		"-q", "55",
		"/out/cat.png",
		"-o", "/out/cat.webp",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CwebpArgs = %v, want %v", got, want)
	}
}

func TestClassify_Success(t *testing.T) {
	if err := Classify(BinPngquant, ExecResult{}); err != nil {
		t.Errorf("Classify on success = %v, want nil", err)
	}
}

func TestClassify_NotFound(t *testing.T) {
	res := ExecResult{Err: &exec.Error{Name: "pngquant", Err: exec.ErrNotFound}}
	err := Classify(BinPngquant, res)
	if err == nil || !strings.Contains(err.Error(), "not found on PATH") {
		t.Errorf("Classify = %v, want not-found message", err)
	}
}

func TestClassify_WrapsOtherErrors(t *testing.T) {
	cause := errors.New("boom")
	err := Classify(BinCwebp, ExecResult{Err: cause})
	if err == nil || !errors.Is(err, cause) {
		t.Errorf("Classify = %v, want wrapped cause", err)
	}
}

func TestClassify_ExitWithStderr(t *testing.T) {
	// Produce a genuine non-zero ExitError without depending on any
	// compressor being installed.
	cmd := exec.Command("sh", "-c", "exit 3")
	runErr := cmd.Run()
	if runErr == nil {
		t.Skip("sh unavailable")
	}

	err := Classify(BinJpegoptim, ExecResult{
		Stderr: "jpegoptim: some noise\njpegoptim: can't open input\n",
		Err:    runErr,
	})
	if err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(err.Error(), "exit 3") || !strings.Contains(err.Error(), "can't open input") {
		t.Errorf("Classify = %v", err)
	}
}

func TestStderrTail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "error: nope\n", "error: nope"},
		{"last non-empty wins", "first\nsecond\n\n", "second"},
		{"whitespace only", "  \n\t\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stderrTail(tt.in); got != tt.want {
				t.Errorf("stderrTail(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRun_MissingBinary(t *testing.T) {
	res := Run(context.Background(), []string{"kompressor-no-such-binary"}, false)
	if res.Err == nil {
		t.Fatal("want error for missing binary")
	}
	if err := Classify("kompressor-no-such-binary", res); err == nil ||
		!strings.Contains(err.Error(), "not found on PATH") {
		t.Errorf("Classify = %v", err)
	}
}

func TestRun_CapturesStderr(t *testing.T) {
	res := Run(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 1"}, false)
	if res.Err == nil {
		t.Fatal("want error")
	}
	if !strings.Contains(res.Stderr, "oops") {
		t.Errorf("Stderr = %q, want to contain 'oops'", res.Stderr)
	}
}
