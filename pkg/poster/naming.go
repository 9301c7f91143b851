package poster

import (
	"strings"
	"unicode/utf8"
)

const (
	filenamePrefixLength = 30
	filenameSuffix       = "_poster.png"
	titleFallbackLength  = 30
)

// Filename derives the download name of a poster from the query that produced it: the first
// characters of the query with anything but ASCII letters and digits replaced by underscores.
func Filename(query string) string {
	var sb strings.Builder
	for i, r := range []rune(query) {
		if i >= filenamePrefixLength {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r - 'A' + 'a')
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String() + filenameSuffix
}

// FallbackTitle is used when no summarized title is available.
func FallbackTitle(idea string) string {
	idea = strings.TrimSpace(idea)
	if utf8.RuneCountInString(idea) <= titleFallbackLength {
		return idea
	}
	return string([]rune(idea)[:titleFallbackLength]) + "..."
}
