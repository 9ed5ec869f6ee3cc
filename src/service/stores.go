package service

import (
	"context"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// SessionStore owns session records and guards their state machine. All
// status transitions go through Resolve so that racing callers on the same
// record serialize to exactly one winner.
type SessionStore interface {
	// Create inserts a PENDING session, enforcing the single-live-session
	// invariant per (requester, advisor) pair atomically. A live pair yields
	// *models.DuplicateSessionError carrying the existing session id.
	Create(ctx context.Context, s *models.Session) error

	// Get returns the session or models.ErrSessionNotFound.
	Get(ctx context.Context, sessionID string) (*models.Session, error)

	// ListFor returns every session the identity is a party to, newest first.
	ListFor(ctx context.Context, identityID string) ([]models.Session, error)

	// Resolve runs fn on the current record while holding the record's write
	// lock. If fn returns nil the mutated record is stored; otherwise the
	// record is left unchanged. The record as last read is returned either
	// way so callers can surface terminal state to losing racers. fn receives
	// a context scoped to the store's write unit, so ledger writes issued
	// under it share the transition's atomicity (and, for SQL stores, its
	// connection).
	Resolve(ctx context.Context, sessionID string, fn func(ctx context.Context, s *models.Session) error) (*models.Session, error)
}

// MessageStore is the append-only chat transcript log.
type MessageStore interface {
	Append(ctx context.Context, m *models.Message) error
	ListBySession(ctx context.Context, sessionID string) ([]models.Message, error)
	// MarkDelivered flips the delivered flag on every message addressed to
	// recipientID in the session.
	MarkDelivered(ctx context.Context, sessionID, recipientID string) error
}

// LedgerStore owns prepaid balances and their transaction history.
type LedgerStore interface {
	// Credit adds amount to the account, creating it on first use, and
	// appends a CREDIT transaction.
	Credit(ctx context.Context, accountID string, amount int64, reason string) (*models.Transaction, error)

	// Debit atomically subtracts up to amount from the account, clamped so
	// the balance never goes negative, appends a DEBIT transaction and
	// returns the amount actually debited. A missing account debits zero.
	Debit(ctx context.Context, accountID string, amount int64, reason string) (int64, error)

	// Balance returns the current balance; a missing account reads as zero.
	Balance(ctx context.Context, accountID string) (int64, error)

	Transactions(ctx context.Context, accountID string) ([]models.Transaction, error)
}

// PresenceView is the coordinator's read-only window into the presence
// registry.
type PresenceView interface {
	Get(identityID string) (*models.PresenceEntry, bool)
}

// Notifier delivers events to broadcast groups, best-effort and at most once
// per connected handle. Subscribe and Unsubscribe act on the live handles of
// the given identities.
type Notifier interface {
	Publish(groupKey, event string, payload any)
	Subscribe(groupKey string, identityIDs ...string)
	Unsubscribe(groupKey string, identityIDs ...string)
}

// AuditFeed receives session-lifecycle and wallet records for out-of-band
// consumers. Emission is fire-and-forget.
type AuditFeed interface {
	Emit(event string, payload any)
}
