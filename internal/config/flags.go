package config

// This file implements CLI flag parsing and help text.
// Flags follow the long/short alias convention; negated flags (e.g.
// --no-color) are applied after Parse so Config defaults hold unless set.
// Environment overrides (KOMPRESSOR_*) are bridged in via envy before Parse.

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamiealquiza/envy"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag, no sources).
// Environment variables with the KOMPRESSOR_ prefix act as flag defaults.
func ParseFlags(cfg *Config, version string) error {
	flag.CommandLine.Init("kompressor", flag.ContinueOnError)
	return parseInto(flag.CommandLine, cfg, os.Args[1:], version, true)
}

// parseInto does the actual work against an explicit FlagSet so tests can
// parse without touching the process-global flag state or the environment.
func parseInto(fs *flag.FlagSet, cfg *Config, args []string, version string, env bool) error {
	var negated negatedFlags
	defineFlags(fs, cfg, &negated)
	fs.Usage = func() { printUsage(version) }

	if env {
		envy.Parse("KOMPRESSOR")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "kompressor v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
// These either invert a default (noColor) or trigger exit (showHelp, showVersion).
type negatedFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineFlags registers all flags on fs. Long and short spellings share the
// same destination, so either may be used.
func defineFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.StringVar(&cfg.OutputDir, "output-dir", cfg.OutputDir, "Output directory (created if missing)")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "Same as --output-dir")
	fs.IntVar(&cfg.Quality, "quality", cfg.Quality, "Compression quality, 1-100")
	fs.IntVar(&cfg.Quality, "q", cfg.Quality, "Same as --quality")
	fs.StringVar(&cfg.DestRename, "destination-rename", "", "Suffix added to compressed filenames")
	fs.StringVar(&cfg.DestRename, "d", "", "Same as --destination-rename")
	fs.StringVar(&cfg.SourceRename, "source-rename", "", "Suffix added to the original filenames")
	fs.StringVar(&cfg.SourceRename, "s", "", "Same as --source-rename")
	fs.Var(&formatValue{&cfg.Convert}, "convert", "Convert to another format: png | jpeg | webp")
	fs.Var(&formatValue{&cfg.Convert}, "c", "Same as --convert")
	fs.Var(&boxValue{&cfg.Resize}, "dimensions", "Fit images within WxH (e.g. 800x600)")
	fs.Var(&boxValue{&cfg.Resize}, "x", "Same as --dimensions")

	fs.BoolVar(&cfg.JSONOutput, "json", false, "Report in JSON instead of a table")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not write any files")
	fs.BoolVar(&cfg.DryRun, "n", false, "Same as --dry-run")
	fs.BoolVar(&cfg.Force, "force", false, "Overwrite existing destination files")
	fs.BoolVar(&cfg.Force, "f", false, "Same as --force")

	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Check compressor availability and exit")

	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs collects source files (absolute paths) and resolves the
// output directory, so all later path math works on absolute paths.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("need at least one source image")
	}

	cfg.Sources = cfg.Sources[:0]
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return fmt.Errorf("cannot resolve source path %q: %w", a, err)
		}
		cfg.Sources = append(cfg.Sources, abs)
	}

	out, err := filepath.Abs(NormalizeDirArg(cfg.OutputDir))
	if err != nil {
		return fmt.Errorf("cannot resolve output dir %q: %w", cfg.OutputDir, err)
	}
	cfg.OutputDir = out
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 32 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "kompressor v" + version + " - minify images with pngquant, jpegoptim and cwebp"},
		{"", ""},
		{"  kompressor [OPTIONS] <image>...", ""},
		{"", ""},
		{"Compression", ""},
		{"  -q, --quality <1-100>", "Compression quality (default: 80)"},
		{"  -c, --convert <png|jpeg|webp>", "Convert to another format first"},
		{"  -x, --dimensions <WxH>", "Fit within WxH, keeping aspect ratio"},
		{"", ""},
		{"Output & naming", ""},
		{"  -o, --output-dir <dir>", "Output directory (default: kompressor)"},
		{"  -d, --destination-rename <sfx>", "Suffix for compressed filenames (image.jpg -> image<sfx>.jpg)"},
		{"  -s, --source-rename <sfx>", "Suffix applied to the original files"},
		{"  -f, --force", "Overwrite existing destination files"},
		{"  -n, --dry-run", "Preview only; do not write any files"},
		{"", ""},
		{"Display", ""},
		{"  --json", "Machine-readable report"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Verbose output"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  --check", "Check pngquant/jpegoptim/cwebp availability"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"", "Install the compressors with: apt install pngquant jpegoptim webp"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so enum-ish types (Format, Box) work with flag.Var.

type formatValue struct{ p *Format }

func (f *formatValue) String() string {
	if f.p == nil {
		return ""
	}
	return string(*f.p)
}

func (f *formatValue) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

type boxValue struct{ p *Box }

func (b *boxValue) String() string {
	if b.p == nil {
		return ""
	}
	return b.p.String()
}

func (b *boxValue) Set(s string) error {
	v, err := ParseDimensions(s)
	if err != nil {
		return err
	}
	*b.p = v
	return nil
}
