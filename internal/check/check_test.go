package check

import (
	"reflect"
	"testing"

	"github.com/backmassage/kompressor/internal/config"
)

func TestRequiredFormats(t *testing.T) {
	tests := []struct {
		name    string
		sources []string
		convert config.Format
		want    map[config.Format]bool
	}{
		{
			name:    "single png",
			sources: []string{"/img/cat.png"},
			want:    map[config.Format]bool{config.FormatPNG: true},
		},
		{
			name:    "mixed batch",
			sources: []string{"/img/cat.png", "/img/dog.jpg", "/img/fox.webp"},
			want: map[config.Format]bool{
				config.FormatPNG:  true,
				config.FormatJPEG: true,
				config.FormatWEBP: true,
			},
		},
		{
			name:    "convert needs only the target compressor",
			sources: []string{"/img/cat.png"},
			convert: config.FormatWEBP,
			want:    map[config.Format]bool{config.FormatWEBP: true},
		},
		{
			name:    "convert to jpeg over mixed batch",
			sources: []string{"/img/cat.png", "/img/dog.jpg"},
			convert: config.FormatJPEG,
			want:    map[config.Format]bool{config.FormatJPEG: true},
		},
		{
			name:    "unsupported extensions ignored",
			sources: []string{"/img/notes.txt", "/img/cat.jpeg"},
			want:    map[config.Format]bool{config.FormatJPEG: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Sources = tt.sources
			cfg.Convert = tt.convert
			if got := requiredFormats(&cfg); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("requiredFormats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingErr(t *testing.T) {
	tests := []struct {
		format config.Format
		want   error
	}{
		{config.FormatPNG, ErrPngquantNotFound},
		{config.FormatJPEG, ErrJpegoptimNotFound},
		{config.FormatWEBP, ErrCwebpNotFound},
	}
	for _, tt := range tests {
		if got := missingErr(tt.format); got != tt.want {
			t.Errorf("missingErr(%s) = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pngquant 2.17.0\nother", "pngquant 2.17.0"},
		{"\n  cwebp 1.2.4  \n", "cwebp 1.2.4"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := firstLine(tt.in); got != tt.want {
			t.Errorf("firstLine(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
