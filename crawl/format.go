package crawl

import (
	"fmt"
	"slices"
	"strings"
)

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatCounts renders symbol counts as "type: n" lines sorted by type.
func FormatCounts(counts map[string]int) string {
	types := make([]string, 0, len(counts))
	width := 0
	for typ := range counts {
		types = append(types, typ)
		width = max(width, len(typ))
	}
	slices.Sort(types)

	var b strings.Builder
	for _, typ := range types {
		fmt.Fprintf(&b, "  %-*s %d\n", width+1, typ+":", counts[typ])
	}
	return b.String()
}
