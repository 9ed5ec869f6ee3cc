package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/harshulchawla1408/Astrousers-sub000/src/directory"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

// Coordinator orchestrates the consultation lifecycle: it validates requests
// against the presence registry, directory and ledger, drives the session
// state machine and fans events out to both parties. All collaborators are
// injected at construction; the coordinator holds no process-wide state.
type Coordinator struct {
	sessions SessionStore
	messages MessageStore
	ledger   LedgerStore
	dir      directory.Directory
	presence PresenceView
	notifier Notifier
	audit    AuditFeed // optional, nil disables the feed

	now func() time.Time
}

// NewCoordinator creates a session coordinator. audit may be nil.
func NewCoordinator(sessions SessionStore, messages MessageStore, ledger LedgerStore, dir directory.Directory, presence PresenceView, notifier Notifier, audit AuditFeed) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		messages: messages,
		ledger:   ledger,
		dir:      dir,
		presence: presence,
		notifier: notifier,
		audit:    audit,
		now:      time.Now,
	}
}

// Create validates a consultation request and inserts a PENDING session.
// Preconditions are checked in order, first failure wins: advisor exists and
// is online, advisor serves the channel, requester can afford one minute,
// no live session already exists for the pair.
func (c *Coordinator) Create(ctx context.Context, requesterID, advisorID string, channel models.Channel) (*models.Session, error) {
	info, err := c.dir.Lookup(ctx, advisorID)
	if err != nil {
		return nil, err
	}
	if !info.IsAdvisor {
		return nil, models.ErrNotAnAdvisor
	}

	entry, ok := c.presence.Get(advisorID)
	if !ok || !entry.Online {
		return nil, models.ErrAdvisorOffline
	}
	if !entry.Availability.For(channel) {
		return nil, models.ErrAdvisorUnavailable
	}

	balance, err := c.ledger.Balance(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to read requester balance: %w", err)
	}
	if balance < info.RatePerMinute {
		return nil, &models.InsufficientBalanceError{
			Required: info.RatePerMinute,
			Current:  balance,
		}
	}

	session := &models.Session{
		SessionID:     uuid.New().String(),
		RequesterID:   requesterID,
		AdvisorID:     advisorID,
		Channel:       channel,
		Status:        models.StatusPending,
		ChannelToken:  "consult-" + uuid.New().String(),
		RatePerMinute: info.RatePerMinute,
		StartTime:     c.now().UTC(),
	}

	if err := c.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	slog.Info("Created consultation request",
		"session_id", session.SessionID,
		"requester_id", requesterID,
		"advisor_id", advisorID,
		"channel", channel)

	event := schemas.IncomingRequestEvent{
		SessionID:   session.SessionID,
		RequesterID: requesterID,
		Channel:     string(channel),
	}
	c.notifier.Publish(schemas.GroupForIdentity(advisorID), schemas.EventIncomingRequest, event)
	c.notifier.Publish(schemas.GroupAdvisorsOnline, schemas.EventIncomingRequest, event)
	c.emit("session.created", session)

	return session, nil
}

// Accept moves a pending session to ACTIVE. Only the target advisor may
// accept; a race with Reject or another Accept resolves to one winner and
// later callers observe AlreadyResolvedError.
func (c *Coordinator) Accept(ctx context.Context, sessionID, acceptingAdvisorID string) (*models.Session, error) {
	now := c.now().UTC()
	session, err := c.sessions.Resolve(ctx, sessionID, func(_ context.Context, s *models.Session) error {
		if s.AdvisorID != acceptingAdvisorID {
			return models.ErrForbidden
		}
		if s.Status != models.StatusPending {
			return &models.AlreadyResolvedError{Status: s.Status}
		}
		s.Status = models.StatusActive
		s.AcceptedAt = &now
		return nil
	})
	if err != nil {
		return session, err
	}

	slog.Info("Session accepted", "session_id", sessionID, "advisor_id", acceptingAdvisorID)

	// Both parties join the session group for the message stream.
	c.notifier.Subscribe(schemas.GroupForSession(sessionID), session.RequesterID, session.AdvisorID)
	c.notifier.Publish(schemas.GroupForIdentity(session.RequesterID), schemas.EventSessionAccepted, schemas.SessionAcceptedEvent{
		SessionID:    session.SessionID,
		AdvisorID:    session.AdvisorID,
		Channel:      string(session.Channel),
		ChannelToken: session.ChannelToken,
	})
	c.emit("session.accepted", session)

	return session, nil
}

// Reject resolves a pending session to REJECTED. Guards match Accept.
func (c *Coordinator) Reject(ctx context.Context, sessionID, rejectingAdvisorID string) (*models.Session, error) {
	now := c.now().UTC()
	session, err := c.sessions.Resolve(ctx, sessionID, func(_ context.Context, s *models.Session) error {
		if s.AdvisorID != rejectingAdvisorID {
			return models.ErrForbidden
		}
		if s.Status != models.StatusPending {
			return &models.AlreadyResolvedError{Status: s.Status}
		}
		s.Status = models.StatusRejected
		s.EndTime = &now
		return nil
	})
	if err != nil {
		return session, err
	}

	slog.Info("Session rejected", "session_id", sessionID, "advisor_id", rejectingAdvisorID)

	c.notifier.Publish(schemas.GroupForIdentity(session.RequesterID), schemas.EventSessionRejected, schemas.SessionRejectedEvent{
		SessionID: session.SessionID,
		AdvisorID: session.AdvisorID,
	})
	c.emit("session.rejected", session)

	return session, nil
}

// End closes a pending or active session, bills the requester and notifies
// both parties. Either party may end. Racing End calls bill exactly once: the
// losing caller observes AlreadyEndedError carrying the winner's outcome.
func (c *Coordinator) End(ctx context.Context, sessionID, endingIdentityID string) (*models.Session, error) {
	now := c.now().UTC()
	var debited int64
	session, err := c.sessions.Resolve(ctx, sessionID, func(txCtx context.Context, s *models.Session) error {
		if !s.IsParty(endingIdentityID) {
			return models.ErrForbidden
		}
		switch s.Status {
		case models.StatusEnded:
			return &models.AlreadyEndedError{
				BilledDurationSeconds: s.BilledDurationSeconds,
				AmountDebited:         s.AmountDebited,
				EndedBy:               s.EndedBy,
			}
		case models.StatusRejected:
			return models.ErrInvalidTransition
		}

		durationSeconds := int64(now.Sub(s.StartTime) / time.Second)
		if durationSeconds < 0 {
			durationSeconds = 0
		}
		_, amount := ComputeBill(s.Channel, durationSeconds, s.RatePerMinute)

		// The debit clamps at the current balance, so ending never fails on
		// an underfunded wallet; the shortfall is simply capped. txCtx ties
		// the debit to the same write unit as the status flip.
		actual, derr := c.ledger.Debit(txCtx, s.RequesterID, amount, "consultation "+s.SessionID)
		if derr != nil {
			return fmt.Errorf("failed to debit requester: %w", derr)
		}
		debited = actual

		s.Status = models.StatusEnded
		s.EndTime = &now
		s.EndedBy = endingIdentityID
		s.BilledDurationSeconds = durationSeconds
		s.AmountDebited = actual
		return nil
	})
	if err != nil {
		return session, err
	}

	slog.Info("Session ended",
		"session_id", sessionID,
		"ended_by", endingIdentityID,
		"billed_duration_seconds", session.BilledDurationSeconds,
		"amount_debited", debited)

	ended := schemas.SessionEndedEvent{
		SessionID:             session.SessionID,
		EndedBy:               session.EndedBy,
		BilledDurationSeconds: session.BilledDurationSeconds,
		AmountDebited:         session.AmountDebited,
	}
	c.notifier.Publish(schemas.GroupForIdentity(session.RequesterID), schemas.EventSessionEnded, ended)
	c.notifier.Publish(schemas.GroupForIdentity(session.AdvisorID), schemas.EventSessionEnded, ended)
	c.notifier.Unsubscribe(schemas.GroupForSession(sessionID), session.RequesterID, session.AdvisorID)
	c.emit("session.ended", session)
	c.emit("wallet.debit", map[string]any{
		"account_id": session.RequesterID,
		"session_id": session.SessionID,
		"amount":     session.AmountDebited,
	})

	return session, nil
}

// Get returns a session to one of its parties.
func (c *Coordinator) Get(ctx context.Context, sessionID, callerID string) (*models.Session, error) {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParty(callerID) {
		return nil, models.ErrForbidden
	}
	return session, nil
}

// ListFor returns every session the identity is a party to.
func (c *Coordinator) ListFor(ctx context.Context, identityID string) ([]models.Session, error) {
	return c.sessions.ListFor(ctx, identityID)
}

// SendMessage appends a chat message to an active session's transcript and
// pushes it to the session group.
func (c *Coordinator) SendMessage(ctx context.Context, sessionID, fromID, text string) (*models.Message, error) {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParty(fromID) {
		return nil, models.ErrForbidden
	}
	if session.Status != models.StatusActive {
		return nil, models.ErrSessionNotActive
	}

	message := &models.Message{
		MessageID: uuid.New().String(),
		SessionID: sessionID,
		FromID:    fromID,
		ToID:      session.OtherParty(fromID),
		Text:      text,
		SentAt:    c.now().UTC(),
	}
	if err := c.messages.Append(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	c.notifier.Publish(schemas.GroupForSession(sessionID), schemas.EventMessageReceived, message)

	return message, nil
}

// Messages returns the session transcript to one of its parties. Transcripts
// stay readable after the session ends.
func (c *Coordinator) Messages(ctx context.Context, sessionID, callerID string) ([]models.Message, error) {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsParty(callerID) {
		return nil, models.ErrForbidden
	}
	return c.messages.ListBySession(ctx, sessionID)
}

// MarkDelivered flags every message addressed to the caller in the session as
// delivered.
func (c *Coordinator) MarkDelivered(ctx context.Context, sessionID, callerID string) error {
	session, err := c.sessions.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if !session.IsParty(callerID) {
		return models.ErrForbidden
	}
	return c.messages.MarkDelivered(ctx, sessionID, callerID)
}

func (c *Coordinator) emit(event string, payload any) {
	if c.audit != nil {
		c.audit.Emit(event, payload)
	}
}
