// Package pipeline orchestrates per-file processing and batch summary
// reporting: probe, plan, rename, convert/resize, compress, report.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/backmassage/kompressor/internal/config"
	"github.com/backmassage/kompressor/internal/display"
	"github.com/backmassage/kompressor/internal/logging"
	"github.com/backmassage/kompressor/internal/naming"
	"github.com/backmassage/kompressor/internal/planner"
	"github.com/backmassage/kompressor/internal/probe"
	"github.com/backmassage/kompressor/internal/tools"
	"github.com/backmassage/kompressor/internal/transform"
)

// Run is the top-level batch entry point. Files are processed sequentially
// in argument order; one failure never stops the batch.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var stats RunStats
	stats.Total = len(cfg.Sources)

	logBatchHeader(cfg, log, &stats)

	for i, source := range cfg.Sources {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		if _, err := config.FormatForPath(source); err != nil {
			log.Warn("[%d/%d] Unsupported file type, skipping: %s",
				stats.Current, stats.Total, filepath.Base(source))
			stats.Skipped++
			continue
		}

		processFile(ctx, cfg, log, source, &stats)
	}

	logSummary(log, &stats)
	return stats
}

// processFile handles one image: probe → plan → collision check → rename →
// produce dest content → compress → record result.
func processFile(ctx context.Context, cfg *config.Config, log *logging.Logger, source string, stats *RunStats) {
	basename := filepath.Base(source)
	log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)

	info, err := probe.Probe(source)
	if err != nil {
		log.Error("Cannot probe file: %v", err)
		stats.Failed++
		log.Spacer()
		return
	}

	log.Debug("Probed %s %s (%s)", info.Format, info.Resolution(), display.FormatBytes(info.Bytes))

	plan, err := planner.BuildPlan(cfg, source, info)
	if err != nil {
		log.Error("%v", err)
		stats.Failed++
		log.Spacer()
		return
	}

	if err := naming.EnsureDir(filepath.Dir(plan.Dest)); err != nil {
		log.Error("Cannot create output directory: %v", err)
		stats.Failed++
		log.Spacer()
		return
	}
	if err := naming.CheckDest(plan.Dest, cfg.Force); err != nil {
		log.Error("%v", err)
		stats.Failed++
		log.Spacer()
		return
	}

	log.Info("  -> %s", filepath.Base(plan.Dest))

	if cfg.DryRun {
		if plan.NewSource != "" {
			log.Success("[DRY] Would rename source to %s", filepath.Base(plan.NewSource))
		}
		if plan.Convert {
			log.Success("[DRY] Would convert to %s and compress", plan.DestFormat)
		} else {
			log.Success("[DRY] Would compress")
		}
		stats.Compressed++
		log.Spacer()
		return
	}

	if plan.NewSource != "" {
		if err := os.Rename(plan.Source, plan.NewSource); err != nil {
			log.Error("Cannot rename source: %v", err)
			stats.Failed++
			log.Spacer()
			return
		}
		log.Debug("Renamed source: %s -> %s", basename, filepath.Base(plan.NewSource))
	}
	work := plan.WorkSource()

	start := time.Now()

	// The compressor input is normally dest itself; a WEBP convert leaves a
	// staging file for cwebp instead.
	input := plan.Dest
	if plan.Convert || !plan.Resize.IsZero() {
		staging, err := transform.Render(work, plan.Dest, plan.DestFormat, plan.Resize)
		if err != nil {
			log.Error("Convert failed: %v", err)
			stats.Failed++
			log.Spacer()
			return
		}
		if staging != "" {
			input = staging
		}
	} else {
		if err := copyFile(work, plan.Dest); err != nil {
			log.Error("Cannot copy to destination: %v", err)
			stats.Failed++
			log.Spacer()
			return
		}
	}

	if err := tools.Compress(ctx, plan.DestFormat, plan.Quality, input, plan.Dest, cfg.Verbose); err != nil {
		log.Error("Compression failed: %v", err)
		if input != plan.Dest {
			os.Remove(input)
		}
		os.Remove(plan.Dest)
		stats.Failed++
		log.Spacer()
		return
	}

	out, err := probe.Probe(plan.Dest)
	if err != nil {
		log.Error("Cannot probe output: %v", err)
		stats.Failed++
		log.Spacer()
		return
	}

	elapsed := time.Since(start)
	ratio := int64(100)
	if info.Bytes > 0 {
		ratio = out.Bytes * 100 / info.Bytes
	}

	stats.TotalInputBytes += info.Bytes
	stats.TotalOutputBytes += out.Bytes
	stats.Compressed++

	dims := []display.Dimensions{{Width: info.Width, Height: info.Height}}
	if !plan.Resize.IsZero() {
		dims = append(dims, display.Dimensions{Width: out.Width, Height: out.Height})
	}
	stats.Results = append(stats.Results, display.Result{
		Name:            filepath.Base(plan.Dest),
		OriginalBytes:   info.Bytes,
		CompressedBytes: out.Bytes,
		Dims:            dims,
	})

	log.Success("Compressed in %.1fs (%d%% of original)", elapsed.Seconds(), ratio)
	log.Spacer()
}

// logBatchHeader prints the run parameters once before the first file.
func logBatchHeader(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("Found %d files", stats.Total)
	log.Info("Output dir: %s", cfg.OutputDir)
	log.Info("Quality: %d", cfg.Quality)
	if cfg.Convert != config.FormatNone {
		log.Info("Convert to: %s", cfg.Convert)
	}
	if !cfg.Resize.IsZero() {
		log.Info("Max dimensions: %s", cfg.Resize)
	}
	if cfg.DryRun {
		log.Warn("Dry run, nothing will be written")
	}
	log.Spacer()
}

// logSummary prints aggregate counters and the byte totals for the batch.
func logSummary(log *logging.Logger, stats *RunStats) {
	log.Info("Done: %d compressed, %d skipped, %d failed",
		stats.Compressed, stats.Skipped, stats.Failed)

	if stats.TotalInputBytes > 0 {
		delta := stats.TotalOutputBytes - stats.TotalInputBytes
		if delta <= 0 {
			log.Success("Total: %s -> %s (%s)",
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes),
				display.FormatBytesWithSign(delta))
		} else {
			log.Warn("Total: %s -> %s (%s)",
				display.FormatBytes(stats.TotalInputBytes),
				display.FormatBytes(stats.TotalOutputBytes),
				display.FormatBytesWithSign(delta))
		}
	}
}

// copyFile copies src to dst, truncating dst if it exists.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
