package notify

import "strings"

// DefaultPushLimit is the Pushover message ceiling in characters.
const DefaultPushLimit = 1024

const truncatedSuffix = "\n… (truncated)"

// Truncate cuts s to at most limit runes, marking the cut when there is
// room for the marker.
func Truncate(s string, limit int) string {
	s = strings.TrimRight(s, "\n")
	if limit <= 0 {
		limit = DefaultPushLimit
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	suffix := []rune(truncatedSuffix)
	keep := limit - len(suffix)
	if keep < 1 {
		return string(runes[:limit])
	}
	return string(runes[:keep]) + truncatedSuffix
}
