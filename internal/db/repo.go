package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medassist/pkg"
)

// Store wraps database operations for conversation turns.  Rows are
// partitioned by session_id; the store never coordinates concurrent
// writers to the same session, the last write simply lands last.
type Store struct {
	DB *sql.DB
}

// NewStore constructs a Store from an existing sql.DB.  The caller is
// responsible for managing the connection lifecycle.
func NewStore(db *sql.DB) *Store { return &Store{DB: db} }

// AppendTurn writes one finished turn: a fresh UUID, the current UTC
// time, and the given message/response pair.  Errors are returned to the
// caller, which decides whether they are fatal for the turn.
func (s *Store) AppendTurn(ctx context.Context, sessionID, message, response string, msgType pkg.MessageType) (*pkg.Turn, error) {
	turn := pkg.Turn{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Message:   message,
		Response:  response,
		Type:      msgType,
		Timestamp: time.Now().UTC(),
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO chat_conversations (id, session_id, message, response, message_type, "timestamp")
         VALUES ($1, $2, $3, $4, $5, $6)`,
		turn.ID, turn.SessionID, turn.Message, turn.Response, string(turn.Type), turn.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("append turn: %w", err)
	}
	return &turn, nil
}

// History returns at most limit turns for the session in ascending
// chronological order.  The newest rows are selected first so the limit
// keeps the most recent context, then the slice is reversed before
// returning.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]pkg.Turn, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, session_id, message, response, message_type, "timestamp"
         FROM chat_conversations
         WHERE session_id = $1
         ORDER BY "timestamp" DESC
         LIMIT $2`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var turns []pkg.Turn
	for rows.Next() {
		var t pkg.Turn
		var msgType string
		if err := rows.Scan(&t.ID, &t.SessionID, &t.Message, &t.Response, &msgType, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		t.Type = pkg.MessageType(msgType)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	// Reverse to oldest-first so the assembler can replay the turns as a
	// transcript.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// ClearHistory deletes every turn belonging to the session.  Deleting an
// empty session is still a success; zero rows removed is not an error.
func (s *Store) ClearHistory(ctx context.Context, sessionID string) error {
	_, err := s.DB.ExecContext(ctx,
		`DELETE FROM chat_conversations WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
