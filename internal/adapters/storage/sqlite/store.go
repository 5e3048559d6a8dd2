// Package sqlite persists sessions in a local SQLite database, for
// single-node deployments that need state to survive restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tventura/mibot/internal/domain"
)

type Store struct {
	db *sql.DB
}

// NewStore opens the database at path, creating the file and its parent
// directory if needed, and ensures the schema exists.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS conversation_histories (
		user_id            TEXT PRIMARY KEY,
		history_json       TEXT NOT NULL,
		emoji_last_message INTEGER NOT NULL DEFAULT 0
	)`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, userID domain.UserID) (*domain.Session, error) {
	query := `SELECT history_json, emoji_last_message FROM conversation_histories WHERE user_id = ?`

	var historyJSON string
	var emojiLast int
	err := s.db.QueryRowContext(ctx, query, string(userID)).Scan(&historyJSON, &emojiLast)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite Load: %w", err)
	}

	sess := domain.NewSession()
	if err := json.Unmarshal([]byte(historyJSON), &sess.History); err != nil {
		return nil, fmt.Errorf("sqlite Load decode: %w", err)
	}
	sess.EmojiLastMessage = emojiLast != 0
	return sess, nil
}

// Save upserts the row, replacing history and emoji flag together.
func (s *Store) Save(ctx context.Context, userID domain.UserID, session *domain.Session) error {
	raw, err := json.Marshal(session.History)
	if err != nil {
		return fmt.Errorf("sqlite Save encode: %w", err)
	}

	emojiLast := 0
	if session.EmojiLastMessage {
		emojiLast = 1
	}

	query := `
	INSERT INTO conversation_histories (user_id, history_json, emoji_last_message)
	VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		history_json = excluded.history_json,
		emoji_last_message = excluded.emoji_last_message`

	if _, err := s.db.ExecContext(ctx, query, string(userID), string(raw), emojiLast); err != nil {
		return fmt.Errorf("sqlite Save: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
