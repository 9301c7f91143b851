package overlay

import "strings"

// Wrap breaks text into lines no wider than maxWidth, greedily filling each line with
// whitespace-separated words. A word that alone exceeds maxWidth is not split and gets a
// line of its own. Empty or whitespace-only text yields no lines.
func Wrap(text string, maxWidth float64, measure MeasureFunc) []string {
	lines := []string{}
	words := strings.Fields(text)
	if len(words) == 0 {
		return lines
	}

	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}
