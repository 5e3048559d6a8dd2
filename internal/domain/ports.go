package domain

import (
	"context"
	"errors"
)

// ErrModelUnavailable marks the "requested model or resource not found"
// provider failure class. The pipeline answers it with a fixed line and
// keeps the current credential; any other provider error rotates it.
var ErrModelUnavailable = errors.New("generation model unavailable")

// GenerateRequest carries one provider invocation: the fixed persona
// preamble, the session history in order, the new user message, and the
// credential chosen by the caller for this call.
type GenerateRequest struct {
	Preamble   string
	History    []Turn
	Message    string
	Credential string
}

// Generator defines how the core application talks to the external
// language-generation provider. An empty reply with a nil error is a
// valid outcome (the provider answered with nothing).
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// SessionStore defines per-user conversation persistence. Load returns a
// fresh empty session when no record exists; it never returns nil along
// with a nil error. Save is an upsert keyed by user id.
type SessionStore interface {
	Load(ctx context.Context, userID UserID) (*Session, error)
	Save(ctx context.Context, userID UserID, session *Session) error
	Close() error
}
