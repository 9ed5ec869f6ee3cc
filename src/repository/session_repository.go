package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/harshulchawla1408/Astrousers-sub000/src/db"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// SessionRepository handles all database operations for consultation sessions
type SessionRepository struct {
	db *db.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(database *db.DB) *SessionRepository {
	return &SessionRepository{
		db: database,
	}
}

const sessionColumns = `session_id, requester_id, advisor_id, channel, status, channel_token,
	rate_per_minute, start_time, accepted_at, end_time,
	billed_duration_seconds, amount_debited, ended_by`

func scanSession(row interface{ Scan(...any) error }) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.SessionID,
		&s.RequesterID,
		&s.AdvisorID,
		&s.Channel,
		&s.Status,
		&s.ChannelToken,
		&s.RatePerMinute,
		&s.StartTime,
		&s.AcceptedAt,
		&s.EndTime,
		&s.BilledDurationSeconds,
		&s.AmountDebited,
		&s.EndedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a PENDING session. The partial unique index on live pairs
// makes the single-live-session invariant atomic: a conflicting insert turns
// into a DuplicateSessionError carrying the existing live session.
func (r *SessionRepository) Create(ctx context.Context, s *models.Session) error {
	query := `
		INSERT INTO consult_sessions
		(session_id, requester_id, advisor_id, channel, status, channel_token,
		 rate_per_minute, start_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (requester_id, advisor_id) WHERE status IN ('PENDING', 'ACTIVE')
		DO NOTHING
	`

	result, err := r.db.GetConnection().ExecContext(ctx, query,
		s.SessionID,
		s.RequesterID,
		s.AdvisorID,
		s.Channel,
		s.Status,
		s.ChannelToken,
		s.RatePerMinute,
		s.StartTime,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		existing, err := r.liveSessionForPair(ctx, s.RequesterID, s.AdvisorID)
		if err != nil {
			return fmt.Errorf("failed to load conflicting session: %w", err)
		}
		return &models.DuplicateSessionError{
			ExistingSessionID: existing.SessionID,
			Status:            existing.Status,
		}
	}

	slog.Info("Created new session",
		"session_id", s.SessionID,
		"requester_id", s.RequesterID,
		"advisor_id", s.AdvisorID)

	return nil
}

func (r *SessionRepository) liveSessionForPair(ctx context.Context, requesterID, advisorID string) (*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM consult_sessions
		WHERE requester_id = $1 AND advisor_id = $2 AND status IN ('PENDING', 'ACTIVE')
		LIMIT 1
	`
	s, err := scanSession(r.db.GetConnection().QueryRowContext(ctx, query, requesterID, advisorID))
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	return s, err
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM consult_sessions
		WHERE session_id = $1
	`
	s, err := scanSession(r.db.GetConnection().QueryRowContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// ListFor retrieves every session the identity is a party to, newest first
func (r *SessionRepository) ListFor(ctx context.Context, identityID string) ([]models.Session, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM consult_sessions
		WHERE requester_id = $1 OR advisor_id = $1
		ORDER BY start_time DESC
	`
	rows, err := r.db.GetConnection().QueryContext(ctx, query, identityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Resolve runs fn on the row while holding its row lock and persists the
// mutation when fn succeeds. SELECT FOR UPDATE serializes racing transitions
// on the same session to exactly one winner. fn receives a context carrying
// this transaction, so any repository writes it issues (the end-of-session
// debit) ride the same connection and commit or roll back with the status
// flip.
func (r *SessionRepository) Resolve(ctx context.Context, sessionID string, fn func(ctx context.Context, s *models.Session) error) (*models.Session, error) {
	tx, err := r.db.Sqlx().BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT ` + sessionColumns + `
		FROM consult_sessions
		WHERE session_id = $1
		FOR UPDATE
	`
	s, err := scanSession(tx.QueryRowxContext(ctx, query, sessionID))
	if err == sql.ErrNoRows {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := fn(db.WithTx(ctx, tx), s); err != nil {
		return s, err
	}

	update := `
		UPDATE consult_sessions
		SET status = $2, accepted_at = $3, end_time = $4,
		    billed_duration_seconds = $5, amount_debited = $6, ended_by = $7
		WHERE session_id = $1
	`
	if _, err := tx.ExecContext(ctx, update,
		s.SessionID,
		s.Status,
		s.AcceptedAt,
		s.EndTime,
		s.BilledDurationSeconds,
		s.AmountDebited,
		s.EndedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session update: %w", err)
	}

	slog.Info("Updated session status",
		"session_id", sessionID,
		"status", s.Status)

	return s, nil
}
