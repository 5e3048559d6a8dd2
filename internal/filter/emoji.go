// Package filter holds the content checks applied to replies: emoji
// detection and stripping, and the forbidden-word denylist.
package filter

import (
	"strings"
	"unicode"
)

// emojiTable covers the code points the responder treats as emoji:
// regional-indicator flags, symbols & pictographs, emoticons, and
// transport & map symbols. Later pictograph blocks (U+1F900 and up) are
// outside the table, so characters like 🥺 are not detected; persisted
// emoji flags depend on that.
var emojiTable = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1}, // regional indicators (flags)
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols & pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport & map symbols
	},
}

// ContainsEmoji reports whether text contains at least one emoji code point.
func ContainsEmoji(text string) bool {
	for _, r := range text {
		if unicode.Is(emojiTable, r) {
			return true
		}
	}
	return false
}

// StripEmojis removes every emoji code point and trims the surrounding
// whitespace. Applying it twice gives the same result as applying it once.
func StripEmojis(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.Is(emojiTable, r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(stripped)
}
