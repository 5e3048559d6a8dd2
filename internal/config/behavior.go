package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed behavior.yaml
var defaultBehaviorYAML []byte

// TriggerRule maps an inbound substring to a canned reply.
type TriggerRule struct {
	Contains string `yaml:"contains"`
	Reply    string `yaml:"reply"`
}

// Behavior is the bot's conversational configuration: the persona
// preamble sent to the model, the canned lines and the word lists the
// pipeline consults.
type Behavior struct {
	PersonaPreamble     string        `yaml:"persona_preamble"`
	Opener              string        `yaml:"opener"`
	IgnoredReply        string        `yaml:"ignored_reply"`
	IgnoredUsers        []string      `yaml:"ignored_users"`
	ForbiddenWords      []string      `yaml:"forbidden_words"`
	Triggers            []TriggerRule `yaml:"triggers"`
	Fillers             []string      `yaml:"fillers"`
	Emojis              []string      `yaml:"emojis"`
	FallbackUnavailable string        `yaml:"fallback_unavailable"`
	FallbackError       string        `yaml:"fallback_error"`
}

// DefaultBehavior parses the compiled-in behavior pack.
func DefaultBehavior() (*Behavior, error) {
	return parseBehavior(defaultBehaviorYAML)
}

// LoadBehavior reads a behavior pack from path, or returns the
// compiled-in default when path is empty.
func LoadBehavior(path string) (*Behavior, error) {
	if path == "" {
		return DefaultBehavior()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading behavior pack: %w", err)
	}
	b, err := parseBehavior(raw)
	if err != nil {
		return nil, fmt.Errorf("behavior pack %s: %w", path, err)
	}
	return b, nil
}

func parseBehavior(raw []byte) (*Behavior, error) {
	var b Behavior
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("parsing behavior pack: %w", err)
	}
	if b.IgnoredReply == "" {
		b.IgnoredReply = "Ignorado"
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks that every field the pipeline reads unconditionally is
// present.
func (b *Behavior) Validate() error {
	if strings.TrimSpace(b.PersonaPreamble) == "" {
		return fmt.Errorf("behavior: persona_preamble cannot be empty")
	}
	if strings.TrimSpace(b.Opener) == "" {
		return fmt.Errorf("behavior: opener cannot be empty")
	}
	if len(b.Fillers) == 0 {
		return fmt.Errorf("behavior: at least one filler is required")
	}
	if len(b.Emojis) == 0 {
		return fmt.Errorf("behavior: at least one emoji is required")
	}
	if b.FallbackUnavailable == "" {
		return fmt.Errorf("behavior: fallback_unavailable cannot be empty")
	}
	if b.FallbackError == "" {
		return fmt.Errorf("behavior: fallback_error cannot be empty")
	}
	for i, tr := range b.Triggers {
		if tr.Contains == "" || tr.Reply == "" {
			return fmt.Errorf("behavior: trigger %d needs both contains and reply", i)
		}
	}
	return nil
}

// IsIgnoredUser reports whether id is on the ignore list. The comparison
// trims whitespace and ignores case, matching how upstream callers spell
// these ids.
func (b *Behavior) IsIgnoredUser(id string) bool {
	needle := strings.ToLower(strings.TrimSpace(id))
	for _, u := range b.IgnoredUsers {
		if needle == strings.ToLower(strings.TrimSpace(u)) {
			return true
		}
	}
	return false
}
