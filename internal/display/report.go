package display

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Dimensions is a width/height pair. It marshals as a two-element array so
// the JSON report reads as [[w, h], [w, h]].
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{d.Width, d.Height})
}

// Result holds the before/after numbers for one compressed image.
// Dims has one entry when the image kept its size, two (before, after)
// when it was resized.
type Result struct {
	Name            string
	OriginalBytes   int64
	CompressedBytes int64
	Dims            []Dimensions
}

type jsonSizes struct {
	OriginalSize   int64 `json:"original_size"`
	CompressedSize int64 `json:"compressed_size"`
}

type jsonHuman struct {
	OriginalSize   string `json:"original_size"`
	CompressedSize string `json:"compressed_size"`
}

type jsonEntry struct {
	Bytes      jsonSizes    `json:"bytes"`
	Human      jsonHuman    `json:"human"`
	Dimensions []Dimensions `json:"dimensions"`
}

// RenderJSON returns the report as a JSON object keyed by output filename.
func RenderJSON(results []Result) (string, error) {
	report := make(map[string]jsonEntry, len(results))
	for _, r := range results {
		report[r.Name] = jsonEntry{
			Bytes: jsonSizes{
				OriginalSize:   r.OriginalBytes,
				CompressedSize: r.CompressedBytes,
			},
			Human: jsonHuman{
				OriginalSize:   FormatBytes(r.OriginalBytes),
				CompressedSize: FormatBytes(r.CompressedBytes),
			},
			Dimensions: r.Dims,
		}
	}
	out, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// RenderHuman returns the report as an aligned table, one image per line:
// name, human sizes, raw byte counts, and dimensions. The name column is
// left-justified, every other column right-justified.
func RenderHuman(results []Result) string {
	const (
		arrow = " -> "
		sep   = " | "
		times = " x "
	)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		cells := []string{
			r.Name,
			"   ",
			FormatBytes(r.OriginalBytes),
			arrow,
			FormatBytes(r.CompressedBytes),
			sep,
			fmt.Sprintf("%d", r.OriginalBytes),
			arrow,
			fmt.Sprintf("%d", r.CompressedBytes),
		}
		if len(r.Dims) > 0 {
			d := r.Dims[0]
			cells = append(cells, sep,
				fmt.Sprintf("%d", d.Width), times, fmt.Sprintf("%d", d.Height))
		}
		if len(r.Dims) > 1 {
			d := r.Dims[1]
			cells = append(cells, arrow,
				fmt.Sprintf("%d", d.Width), times, fmt.Sprintf("%d", d.Height))
		}
		rows = append(rows, cells)
	}

	widths := columnWidths(rows)
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == 0 {
				b.WriteString(padRight(cell, widths[i]))
			} else {
				b.WriteString(padLeft(cell, widths[i]))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// columnWidths returns the maximum cell width per column across all rows.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func padRight(s string, width int) string {
	return s + strings.Repeat(" ", width-len(s))
}

func padLeft(s string, width int) string {
	return strings.Repeat(" ", width-len(s)) + s
}
