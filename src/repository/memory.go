package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// In-memory implementations of the store contracts. They back tests and
// broker-less local runs, and carry the same atomicity guarantees as the
// PostgreSQL repositories: transitions and balance mutations are
// read-modify-write under a lock, never check-then-act across it.

// MemorySessionStore keeps session records and the live-pair index under one
// mutex, so Create's duplicate check and Resolve's compare-and-set are
// atomic.
type MemorySessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*models.Session
	livePairs map[string]string // requesterID|advisorID -> live session id
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions:  make(map[string]*models.Session),
		livePairs: make(map[string]string),
	}
}

func pairKey(requesterID, advisorID string) string {
	return requesterID + "|" + advisorID
}

// Create inserts a PENDING session, enforcing the single-live-session
// invariant for the pair.
func (m *MemorySessionStore) Create(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := pairKey(s.RequesterID, s.AdvisorID)
	if existingID, ok := m.livePairs[key]; ok {
		existing := m.sessions[existingID]
		return &models.DuplicateSessionError{
			ExistingSessionID: existing.SessionID,
			Status:            existing.Status,
		}
	}

	stored := *s
	m.sessions[s.SessionID] = &stored
	m.livePairs[key] = s.SessionID
	return nil
}

// Get returns a copy of the session record.
func (m *MemorySessionStore) Get(_ context.Context, sessionID string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	out := *s
	return &out, nil
}

// ListFor returns every session the identity is a party to, newest first.
func (m *MemorySessionStore) ListFor(_ context.Context, identityID string) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sessions []models.Session
	for _, s := range m.sessions {
		if s.IsParty(identityID) {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions, nil
}

// Resolve runs fn on the record under the store lock and keeps the mutation
// only when fn succeeds. A session leaving the live set also leaves the
// live-pair index.
func (m *MemorySessionStore) Resolve(ctx context.Context, sessionID string, fn func(ctx context.Context, s *models.Session) error) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	working := *s
	if err := fn(ctx, &working); err != nil {
		snapshot := *s
		return &snapshot, err
	}

	*s = working
	if s.Status.Terminal() {
		key := pairKey(s.RequesterID, s.AdvisorID)
		if m.livePairs[key] == sessionID {
			delete(m.livePairs, key)
		}
	}

	out := working
	return &out, nil
}

// MemoryMessageStore is the in-memory transcript log.
type MemoryMessageStore struct {
	mu       sync.Mutex
	messages map[string][]models.Message
}

// NewMemoryMessageStore creates an empty in-memory message store.
func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{messages: make(map[string][]models.Message)}
}

// Append adds one transcript entry.
func (m *MemoryMessageStore) Append(_ context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.SessionID] = append(m.messages[msg.SessionID], *msg)
	return nil
}

// ListBySession returns the transcript in send order.
func (m *MemoryMessageStore) ListBySession(_ context.Context, sessionID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Message, len(m.messages[sessionID]))
	copy(out, m.messages[sessionID])
	return out, nil
}

// MarkDelivered flips the delivered flag on messages addressed to recipientID.
func (m *MemoryMessageStore) MarkDelivered(_ context.Context, sessionID, recipientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.messages[sessionID]
	for i := range msgs {
		if msgs[i].ToID == recipientID {
			msgs[i].Delivered = true
		}
	}
	return nil
}

// MemoryLedger keeps wallet balances and histories under one mutex so every
// debit and credit is an atomic read-modify-write.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	history  map[string][]models.Transaction
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[string]int64),
		history:  make(map[string][]models.Transaction),
	}
}

// Credit adds amount to the account, creating it on first use.
func (m *MemoryLedger) Credit(_ context.Context, accountID string, amount int64, reason string) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[accountID] += amount
	record := models.Transaction{
		TxID:         uuid.New().String(),
		AccountID:    accountID,
		Type:         models.TxCredit,
		Amount:       amount,
		Reason:       reason,
		BalanceAfter: m.balances[accountID],
		CreatedAt:    time.Now().UTC(),
	}
	m.history[accountID] = append(m.history[accountID], record)
	out := record
	return &out, nil
}

// Debit subtracts up to amount, clamped so the balance never goes negative,
// and returns the amount actually debited.
func (m *MemoryLedger) Debit(_ context.Context, accountID string, amount int64, reason string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance := m.balances[accountID]
	debited := amount
	if debited > balance {
		debited = balance
	}
	if debited < 0 {
		debited = 0
	}
	m.balances[accountID] = balance - debited

	record := models.Transaction{
		TxID:         uuid.New().String(),
		AccountID:    accountID,
		Type:         models.TxDebit,
		Amount:       debited,
		Reason:       reason,
		BalanceAfter: m.balances[accountID],
		CreatedAt:    time.Now().UTC(),
	}
	m.history[accountID] = append(m.history[accountID], record)
	return debited, nil
}

// Balance returns the current balance; a missing account reads as zero.
func (m *MemoryLedger) Balance(_ context.Context, accountID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[accountID], nil
}

// Transactions returns the account history in append order.
func (m *MemoryLedger) Transactions(_ context.Context, accountID string) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Transaction, len(m.history[accountID]))
	copy(out, m.history[accountID])
	return out, nil
}
