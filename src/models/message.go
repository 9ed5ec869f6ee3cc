package models

import "time"

// Message is one entry of a session chat transcript. Messages are append-only:
// after creation only the Delivered flag may change.
type Message struct {
	MessageID string    `json:"message_id" db:"message_id"`
	SessionID string    `json:"session_id" db:"session_id"`
	FromID    string    `json:"from_id" db:"from_id"`
	ToID      string    `json:"to_id" db:"to_id"`
	Text      string    `json:"text" db:"text"`
	Delivered bool      `json:"delivered" db:"delivered"`
	SentAt    time.Time `json:"sent_at" db:"sent_at"`
}
