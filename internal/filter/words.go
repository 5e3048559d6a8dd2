package filter

import (
	"regexp"
)

// Denylist matches configured forbidden words, case-insensitively and on
// word boundaries, so "sexi" matches "muy SEXI no?" but not "sexista".
type Denylist struct {
	words    []string
	patterns []*regexp.Regexp
}

// NewDenylist compiles a denylist from the given words. Empty entries are
// skipped. Words are matched in the order given.
func NewDenylist(words []string) *Denylist {
	d := &Denylist{}
	for _, w := range words {
		if w == "" {
			continue
		}
		d.words = append(d.words, w)
		d.patterns = append(d.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(w)+`\b`))
	}
	return d
}

// Match returns the first configured word found in text, if any.
func (d *Denylist) Match(text string) (string, bool) {
	for i, p := range d.patterns {
		if p.MatchString(text) {
			return d.words[i], true
		}
	}
	return "", false
}
