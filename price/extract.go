// Package price extracts numeric price values from text fragments and
// matched DOM elements.
package price

import (
	"regexp"
	"strconv"
	"strings"
)

// numberPattern matches one or more digits optionally followed by a single
// comma- or dot-separated digit group. Multi-group thousands separators
// like 1,234,567 split into multiple matches; this is a known limitation.
var numberPattern = regexp.MustCompile(`[0-9]+(?:[,.][0-9]+)?`)

// ExtractNumbers scans text for numeric tokens, tolerant of comma
// thousands separators, and returns them as floats in left-to-right order
// of appearance. Duplicates are kept. No matches yields an empty slice,
// not an error.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
