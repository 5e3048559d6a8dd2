// Package chat implements the response pipeline: trigger interception,
// provider invocation with credential failover, reply post-processing
// and history persistence, serialized per user.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/tventura/mibot/internal/config"
	"github.com/tventura/mibot/internal/creds"
	"github.com/tventura/mibot/internal/domain"
	"github.com/tventura/mibot/internal/filter"
	"github.com/tventura/mibot/internal/observability"
	"github.com/tventura/mibot/internal/userlock"
)

// ErrInvalidInput rejects requests missing a user id or message. No lock
// is taken and no state is touched for these.
var ErrInvalidInput = errors.New("user id and message are required")

type Service struct {
	gen      domain.Generator
	store    domain.SessionStore
	ring     *creds.Ring
	locks    *userlock.Registry
	behavior *config.Behavior
	denylist *filter.Denylist

	// pick returns a uniform int in [0, n); replaced in tests.
	pick func(n int) int
}

func NewService(
	gen domain.Generator,
	store domain.SessionStore,
	ring *creds.Ring,
	behavior *config.Behavior,
) *Service {
	return &Service{
		gen:      gen,
		store:    store,
		ring:     ring,
		locks:    userlock.NewRegistry(),
		behavior: behavior,
		denylist: filter.NewDenylist(behavior.ForbiddenWords),
		pick:     rand.IntN,
	}
}

type TurnInput struct {
	UserID  domain.UserID
	Message string
}

type TurnOutput struct {
	Reply string
	// Ignored marks acknowledgements for ignore-listed users; nothing
	// was generated or persisted for them.
	Ignored bool
}

// HandleTurn runs one inbound message through the pipeline and returns
// the reply to send back. Requests for the same user are serialized;
// requests for different users run concurrently.
func (s *Service) HandleTurn(ctx context.Context, in TurnInput) (*TurnOutput, error) {
	if in.UserID == "" || in.Message == "" {
		return nil, ErrInvalidInput
	}

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	if s.behavior.IsIgnoredUser(string(in.UserID)) {
		log.Info("user is on the ignore list, acknowledging without processing")
		return &TurnOutput{Reply: s.behavior.IgnoredReply, Ignored: true}, nil
	}

	release := s.locks.Acquire(string(in.UserID))
	defer release()

	session, err := s.store.Load(ctx, in.UserID)
	if err != nil {
		log.Error("failed to load session", "error", err)
		return nil, err
	}

	if session.FirstContact() {
		log.Info("first contact, sending the opener")
		return s.respondFixed(ctx, log, in, session, s.behavior.Opener), nil
	}

	if rule, ok := s.matchTrigger(in.Message); ok {
		log.Info("trigger matched, sending canned reply", "trigger", rule.Contains)
		return s.respondFixed(ctx, log, in, session, rule.Reply), nil
	}

	candidate := s.generate(ctx, log, session.History, in.Message)
	reply := s.postprocess(log, session, candidate)

	s.persist(ctx, log, in, session, reply)
	log.Info("chat turn completed")
	return &TurnOutput{Reply: reply}, nil
}

// respondFixed sends text verbatim. Fixed lines skip the repeat and
// denylist checks, and set the emoji flag from their own literal content
// instead of forced alternation.
func (s *Service) respondFixed(
	ctx context.Context,
	log *slog.Logger,
	in TurnInput,
	session *domain.Session,
	text string,
) *TurnOutput {
	session.EmojiLastMessage = filter.ContainsEmoji(text)
	s.persist(ctx, log, in, session, text)
	return &TurnOutput{Reply: text}
}

// matchTrigger scans the trigger table in insertion order; the first rule
// whose substring appears in the message wins.
func (s *Service) matchTrigger(message string) (config.TriggerRule, bool) {
	for _, rule := range s.behavior.Triggers {
		if strings.Contains(message, rule.Contains) {
			return rule, true
		}
	}
	return config.TriggerRule{}, false
}

// generate invokes the provider with the current credential and folds its
// failure classes into fixed in-persona lines. Provider errors never
// propagate past this point.
func (s *Service) generate(
	ctx context.Context,
	log *slog.Logger,
	history []domain.Turn,
	message string,
) string {
	req := domain.GenerateRequest{
		Preamble:   s.behavior.PersonaPreamble,
		History:    history,
		Message:    message,
		Credential: s.ring.Current(),
	}

	text, err := s.gen.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			// The model is missing, not the credential: rotating would
			// not help.
			log.Warn("model unavailable, using the apologetic fallback", "error", err)
			return s.behavior.FallbackUnavailable
		}
		s.ring.Advance()
		log.Warn("provider call failed, credential rotated",
			"error", err,
			"pool_size", s.ring.Size(),
		)
		return s.behavior.FallbackError
	}

	return strings.TrimSpace(text)
}

// postprocess applies the candidate checks (empty, repeated, forbidden)
// and then the emoji-alternation invariant, updating the session flag.
func (s *Service) postprocess(log *slog.Logger, session *domain.Session, candidate string) string {
	lastAgent, _ := session.LastAgentText()

	switch {
	case candidate == "":
		log.Info("empty candidate, substituting a filler")
		candidate = s.pickFrom(s.behavior.Fillers)
	case candidate == lastAgent:
		log.Info("candidate repeats the previous reply, substituting a filler")
		candidate = s.pickFrom(s.behavior.Fillers)
	default:
		if word, ok := s.denylist.Match(candidate); ok {
			log.Warn("forbidden word in candidate, substituting a filler", "word", word)
			candidate = s.pickFrom(s.behavior.Fillers)
		}
	}

	if session.EmojiLastMessage {
		candidate = filter.StripEmojis(candidate)
		session.EmojiLastMessage = false
	} else {
		if !filter.ContainsEmoji(candidate) {
			candidate += s.pickFrom(s.behavior.Emojis)
		}
		session.EmojiLastMessage = true
	}

	return candidate
}

// persist appends both turns and saves. Save failures are logged and
// swallowed: the reply is already computed and still goes out.
func (s *Service) persist(
	ctx context.Context,
	log *slog.Logger,
	in TurnInput,
	session *domain.Session,
	reply string,
) {
	session.Append(domain.RoleUser, in.Message)
	session.Append(domain.RoleAgent, reply)

	if err := s.store.Save(ctx, in.UserID, session); err != nil {
		log.Error("failed to save session, reply still sent", "error", err)
	}
}

func (s *Service) pickFrom(options []string) string {
	return options[s.pick(len(options))]
}
