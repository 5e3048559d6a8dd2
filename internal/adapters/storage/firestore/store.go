package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tventura/mibot/internal/domain"
)

type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store.
// Uses the project passed (MIBOT_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) conversationsCol() *firestore.CollectionRef {
	return s.client.Collection("conversations")
}

func (s *Store) conversationDoc(userID domain.UserID) *firestore.DocumentRef {
	return s.conversationsCol().Doc(string(userID))
}

// ─────────────────────────────────────────
// Firestore Types
// ─────────────────────────────────────────

type turnDoc struct {
	Role string `firestore:"role"`
	Text string `firestore:"message"`
}

type conversationDoc struct {
	History          []turnDoc `firestore:"history"`
	EmojiLastMessage bool      `firestore:"emoji_last_message"`
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) Load(ctx context.Context, userID domain.UserID) (*domain.Session, error) {
	snap, err := s.conversationDoc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.NewSession(), nil
		}
		return nil, fmt.Errorf("firestore Load: %w", err)
	}

	var doc conversationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore Load decode: %w", err)
	}

	sess := domain.NewSession()
	for _, t := range doc.History {
		sess.Append(domain.Role(t.Role), t.Text)
	}
	sess.EmojiLastMessage = doc.EmojiLastMessage
	return sess, nil
}

// Save overwrites the whole document, so history and emoji flag always
// land together.
func (s *Store) Save(ctx context.Context, userID domain.UserID, session *domain.Session) error {
	doc := conversationDoc{
		History:          make([]turnDoc, 0, len(session.History)),
		EmojiLastMessage: session.EmojiLastMessage,
	}
	for _, t := range session.History {
		doc.History = append(doc.History, turnDoc{Role: string(t.Role), Text: t.Text})
	}

	if _, err := s.conversationDoc(userID).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore Save: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
