package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/harshulchawla1408/Astrousers-sub000/src/db"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// MessageRepository is the append-only chat transcript log in PostgreSQL.
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(database *db.DB) *MessageRepository {
	return &MessageRepository{db: database.Sqlx()}
}

// Append inserts one transcript entry. Messages are never updated afterwards
// except for the delivered flag.
func (r *MessageRepository) Append(ctx context.Context, m *models.Message) error {
	query := `
		INSERT INTO consult_messages (message_id, session_id, from_id, to_id, text, delivered, sent_at)
		VALUES (:message_id, :session_id, :from_id, :to_id, :text, :delivered, :sent_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListBySession returns the transcript in send order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]models.Message, error) {
	query := `
		SELECT message_id, session_id, from_id, to_id, text, delivered, sent_at
		FROM consult_messages
		WHERE session_id = $1
		ORDER BY sent_at ASC
	`
	var messages []models.Message
	if err := r.db.SelectContext(ctx, &messages, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// MarkDelivered flips the delivered flag on every undelivered message
// addressed to recipientID in the session.
func (r *MessageRepository) MarkDelivered(ctx context.Context, sessionID, recipientID string) error {
	query := `
		UPDATE consult_messages
		SET delivered = TRUE
		WHERE session_id = $1 AND to_id = $2 AND delivered = FALSE
	`
	if _, err := r.db.ExecContext(ctx, query, sessionID, recipientID); err != nil {
		return fmt.Errorf("failed to mark messages delivered: %w", err)
	}
	return nil
}
