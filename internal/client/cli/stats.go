package cli

import (
	"fmt"
	"sort"
	"strings"
)

const barWidth = 30

// renderDistribution draws one bar per sentiment, Positive and Negative first.
func renderDistribution(counts map[string]int) []string {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return []string{"No posts yet."}
	}

	labels := make([]string, 0, len(counts))
	for k := range counts {
		if k != "Positive" && k != "Negative" {
			labels = append(labels, k)
		}
	}
	sort.Strings(labels)
	labels = append([]string{"Positive", "Negative"}, labels...)

	lines := make([]string, 0, len(labels))
	for _, l := range labels {
		n := counts[l]
		filled := n * barWidth / total
		pct := float64(n) * 100 / float64(total)
		lines = append(lines, fmt.Sprintf("%-9s %-*s %3d (%5.1f%%)",
			l, barWidth, strings.Repeat("#", filled), n, pct))
	}
	return lines
}
