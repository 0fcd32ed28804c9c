// Package text provides rune-aware string helpers and HTML clean-up for article bodies.
package text

// CountRunes counts Unicode characters rather than bytes.
//
//	CountRunes("hello")  // 5
//	CountRunes("日本語")   // 3
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes cuts s to at most n runes. Multi-byte characters are never split.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
