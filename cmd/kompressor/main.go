// Command kompressor is the entrypoint for the kompressor image CLI.
// It parses flags, validates config, and either runs system check (--check)
// or the compression pipeline, then prints the batch report.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/kompressor/internal/check"
	"github.com/backmassage/kompressor/internal/config"
	"github.com/backmassage/kompressor/internal/display"
	"github.com/backmassage/kompressor/internal/logging"
	"github.com/backmassage/kompressor/internal/pipeline"
)

// version is set at build time via -ldflags.
var version = "1.0.0-dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "kompressor: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "kompressor: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kompressor: %v\n", err)
		return 1
	}
	defer log.Close()

	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		log.Error("Install with: apt install pngquant jpegoptim webp")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := pipeline.Run(ctx, &cfg, log)

	if cfg.JSONOutput {
		out, err := display.RenderJSON(stats.Results)
		if err != nil {
			log.Error("Cannot render report: %v", err)
			return 1
		}
		fmt.Println(out)
	} else if len(stats.Results) > 0 {
		fmt.Print(display.RenderHuman(stats.Results))
	}

	if stats.Failed > 0 {
		return 1
	}
	return 0
}
