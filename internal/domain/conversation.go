package domain

// Turn is a single message in a conversation. Immutable once appended.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"message"`
}

// Session is the whole per-user conversation state: the ordered history
// plus the flag that drives emoji alternation. EmojiLastMessage is true
// when the most recently appended agent turn carried an emoji.
type Session struct {
	History          []Turn `json:"history"`
	EmojiLastMessage bool   `json:"emoji_last_message"`
}

// NewSession returns the state of a user the system has never seen.
func NewSession() *Session {
	return &Session{}
}

// FirstContact reports whether the user has no prior history.
func (s *Session) FirstContact() bool {
	return len(s.History) == 0
}

// Append adds a turn to the history.
func (s *Session) Append(role Role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
}

// LastAgentText returns the text of the most recent agent turn, if any.
func (s *Session) LastAgentText() (string, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].Role == RoleAgent {
			return s.History[i].Text, true
		}
	}
	return "", false
}

// Clone returns a deep copy. Stores hand out clones so callers can mutate
// a session freely before saving it back.
func (s *Session) Clone() *Session {
	c := &Session{EmojiLastMessage: s.EmojiLastMessage}
	if len(s.History) > 0 {
		c.History = make([]Turn, len(s.History))
		copy(c.History, s.History)
	}
	return c
}
