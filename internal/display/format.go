package display

import (
	"fmt"
)

// FormatBytes returns a compact human-readable size (B, K, M, G; 1024-based).
// Below a mebibyte the value is rounded to a whole number, above it one
// decimal is kept.
func FormatBytes(bytes int64) string {
	const unit = 1024
	units := []string{"B", "K", "M", "G"}
	size := float64(bytes)
	index := 0
	for size >= unit && index < len(units)-1 {
		size /= unit
		index++
	}
	if index >= 2 {
		return fmt.Sprintf("%.1f%s", size, units[index])
	}
	return fmt.Sprintf("%.0f%s", size, units[index])
}

// FormatBytesWithSign prefixes a delta with + or - (e.g. "- 1.2M").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + FormatBytes(bytes)
}
