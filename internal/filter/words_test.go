package filter_test

import (
	"testing"

	"github.com/tventura/mibot/internal/filter"
)

func TestDenylistMatch(t *testing.T) {
	d := filter.NewDenylist([]string{"sexi", "hago"})

	tests := []struct {
		name     string
		text     string
		wantWord string
		wantHit  bool
	}{
		{name: "clean text", text: "hola como estas", wantHit: false},
		{name: "simple hit", text: "eres muy sexi jaja", wantWord: "sexi", wantHit: true},
		{name: "case insensitive", text: "SEXI total", wantWord: "sexi", wantHit: true},
		{name: "word boundary blocks prefix", text: "una mirada sexista", wantHit: false},
		{name: "word boundary blocks suffix", text: "los hagos de antes", wantHit: false},
		{name: "second word", text: "no se que hago aqui", wantWord: "hago", wantHit: true},
		{name: "first configured word wins", text: "hago cosas sexi", wantWord: "sexi", wantHit: true},
		{name: "punctuation still bounds", text: "sexi, verdad?", wantWord: "sexi", wantHit: true},
		{name: "empty text", text: "", wantHit: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			word, hit := d.Match(tc.text)
			if hit != tc.wantHit {
				t.Fatalf("Match(%q) hit = %v, want %v", tc.text, hit, tc.wantHit)
			}
			if word != tc.wantWord {
				t.Errorf("Match(%q) word = %q, want %q", tc.text, word, tc.wantWord)
			}
		})
	}
}

func TestDenylistSkipsEmptyEntries(t *testing.T) {
	d := filter.NewDenylist([]string{"", "sexi", ""})

	if _, hit := d.Match("cualquier cosa"); hit {
		t.Error("empty entries should not match everything")
	}
	if word, hit := d.Match("que sexi"); !hit || word != "sexi" {
		t.Errorf("Match = (%q, %v), want (\"sexi\", true)", word, hit)
	}
}

func TestDenylistEmpty(t *testing.T) {
	d := filter.NewDenylist(nil)
	if word, hit := d.Match("sexi hago lo que sea"); hit {
		t.Errorf("empty denylist matched %q", word)
	}
}
