package strx

// Truncate cuts s to at most n runes, marking the cut with a trailing '~'.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n-1 {
			if len([]rune(s[i:])) > 1 {
				return s[:i] + "~"
			}
			return s
		}
		count++
	}
	return s
}
