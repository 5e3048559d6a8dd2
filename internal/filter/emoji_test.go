package filter_test

import (
	"testing"

	"github.com/tventura/mibot/internal/filter"
)

func TestContainsEmoji(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "plain text", text: "hola como estas", want: false},
		{name: "empty", text: "", want: false},
		{name: "emoticon", text: "hola 😉", want: true},
		{name: "pictograph", text: "puro 🔥 hoy", want: true},
		{name: "transport", text: "🚀", want: true},
		{name: "flag", text: "soy de 🇻🇪", want: true},
		{name: "pleading face outside ranges", text: "busco novio 🥺", want: false},
		{name: "thinking face outside ranges", text: "mmm 🤔", want: false},
		{name: "accents are not emoji", text: "qué harás mañana", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := filter.ContainsEmoji(tc.text); got != tc.want {
				t.Errorf("ContainsEmoji(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestStripEmojis(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "no emoji", text: "hola", want: "hola"},
		{name: "trailing emoji", text: "hola 😉", want: "hola"},
		{name: "leading emoji", text: "😘 hola", want: "hola"},
		{name: "only emoji", text: "😊", want: ""},
		{name: "interior spacing kept", text: "a 😊 b", want: "a  b"},
		{name: "undetected emoji survives", text: "lindo 🥺", want: "lindo 🥺"},
		{name: "empty", text: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := filter.StripEmojis(tc.text); got != tc.want {
				t.Errorf("StripEmojis(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestStripEmojisIdempotent(t *testing.T) {
	inputs := []string{"hola 😉", "  😘 😊 ", "texto sin nada", "🚀🚀🚀", "novio 🥺"}

	for _, in := range inputs {
		once := filter.StripEmojis(in)
		twice := filter.StripEmojis(once)
		if once != twice {
			t.Errorf("StripEmojis not idempotent for %q: first %q, second %q", in, once, twice)
		}
		if filter.ContainsEmoji(once) {
			t.Errorf("StripEmojis(%q) = %q still contains a detectable emoji", in, once)
		}
	}
}
