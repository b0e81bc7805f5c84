// Package planner turns config plus a probed source image into a concrete
// per-file plan: which paths are involved, whether a decode/re-encode is
// needed, and which format the destination is compressed as.
package planner

import (
	"fmt"

	"github.com/backmassage/kompressor/internal/config"
	"github.com/backmassage/kompressor/internal/naming"
	"github.com/backmassage/kompressor/internal/probe"
)

// FilePlan describes everything the pipeline needs to process one image.
type FilePlan struct {
	Source    string
	NewSource string // Source after --source-rename, or "".
	Dest      string

	SourceFormat config.Format
	DestFormat   config.Format // Format dest is encoded and compressed as.
	Convert      bool          // True when a decode/re-encode is required.
	Resize       config.Box
	Quality      int
}

// WorkSource returns the path the source is read from once any rename has
// been applied.
func (p *FilePlan) WorkSource() string {
	if p.NewSource != "" {
		return p.NewSource
	}
	return p.Source
}

// BuildPlan computes the plan for one source file. It is pure: filesystem
// checks (collision, mkdir) are the pipeline's job. info must be the probed
// source image; a mismatch between the extension and the encoded format is
// rejected here so the wrong compressor is never invoked.
func BuildPlan(cfg *config.Config, source string, info *probe.ImageInfo) (*FilePlan, error) {
	srcFormat, err := config.FormatForPath(source)
	if err != nil {
		return nil, err
	}
	if info.Format != srcFormat {
		return nil, fmt.Errorf("%s: extension says %s but content is %s",
			source, srcFormat, info.Format)
	}

	destFormat := srcFormat
	convert := false
	targetExt := ""
	if cfg.Convert != config.FormatNone && cfg.Convert != srcFormat {
		destFormat = cfg.Convert
		convert = true
		targetExt = cfg.Convert.Ext()
	}

	paths, err := naming.ComputePaths(source, naming.Options{
		OutputDir:    cfg.OutputDir,
		DestRename:   cfg.DestRename,
		SourceRename: cfg.SourceRename,
		TargetExt:    targetExt,
	})
	if err != nil {
		return nil, err
	}

	return &FilePlan{
		Source:       source,
		NewSource:    paths.NewSource,
		Dest:         paths.Dest,
		SourceFormat: srcFormat,
		DestFormat:   destFormat,
		Convert:      convert,
		Resize:       cfg.Resize,
		Quality:      cfg.Quality,
	}, nil
}
