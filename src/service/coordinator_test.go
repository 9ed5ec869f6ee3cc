package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/harshulchawla1408/Astrousers-sub000/src/directory"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/presence"
	"github.com/harshulchawla1408/Astrousers-sub000/src/repository"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

type publishedEvent struct {
	Group   string
	Event   string
	Payload any
}

// fakeNotifier records fan-out traffic so tests can assert on it.
type fakeNotifier struct {
	mu        sync.Mutex
	published []publishedEvent
	groups    map[string][]string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{groups: make(map[string][]string)}
}

func (f *fakeNotifier) Publish(groupKey, event string, payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedEvent{Group: groupKey, Event: event, Payload: payload})
}

func (f *fakeNotifier) Subscribe(groupKey string, identityIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[groupKey] = append(f.groups[groupKey], identityIDs...)
}

func (f *fakeNotifier) Unsubscribe(groupKey string, identityIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	remaining := f.groups[groupKey][:0]
	for _, member := range f.groups[groupKey] {
		keep := true
		for _, id := range identityIDs {
			if member == id {
				keep = false
				break
			}
		}
		if keep {
			remaining = append(remaining, member)
		}
	}
	f.groups[groupKey] = remaining
}

func (f *fakeNotifier) eventsFor(groupKey string) []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []publishedEvent
	for _, e := range f.published {
		if e.Group == groupKey {
			out = append(out, e)
		}
	}
	return out
}

type testHandle string

func (h testHandle) ID() string { return string(h) }

const (
	requesterID = "user-1"
	advisorID   = "adv-1"
	advisorRate = 5
)

type CoordinatorSuite struct {
	suite.Suite

	ctx      context.Context
	dir      *directory.StaticDirectory
	sessions *repository.MemorySessionStore
	messages *repository.MemoryMessageStore
	ledger   *repository.MemoryLedger
	notifier *fakeNotifier
	registry *presence.Registry
	coord    *Coordinator

	clock time.Time
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	s.dir = directory.NewStaticDirectory()
	s.dir.Put(directory.AdvisorInfo{
		IdentityID:    advisorID,
		IsAdvisor:     true,
		RatePerMinute: advisorRate,
		Channels:      models.Availability{Text: true, Audio: true, Video: true},
	})
	s.dir.Put(directory.AdvisorInfo{IdentityID: requesterID})

	s.sessions = repository.NewMemorySessionStore()
	s.messages = repository.NewMemoryMessageStore()
	s.ledger = repository.NewMemoryLedger()
	s.notifier = newFakeNotifier()
	s.registry = presence.NewRegistry(s.dir, s.notifier)
	s.registry.Connect(s.ctx, advisorID, testHandle("h-adv"))

	_, err := s.ledger.Credit(s.ctx, requesterID, 100, "topup")
	s.Require().NoError(err)

	s.coord = NewCoordinator(s.sessions, s.messages, s.ledger, s.dir, s.registry, s.notifier, nil)
	s.coord.now = func() time.Time { return s.clock }
}

func (s *CoordinatorSuite) advance(d time.Duration) {
	s.clock = s.clock.Add(d)
}

// TestEndToEndTextConsultation walks the full happy path: request, accept,
// talk for four minutes, end, verify billing with the free text allowance.
func (s *CoordinatorSuite) TestEndToEndTextConsultation() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, session.Status)
	s.NotEmpty(session.ChannelToken)
	s.Equal(int64(advisorRate), session.RatePerMinute)

	// The advisor is told about the request.
	incoming := s.notifier.eventsFor(schemas.GroupForIdentity(advisorID))
	s.Require().Len(incoming, 1)
	s.Equal(schemas.EventIncomingRequest, incoming[0].Event)

	accepted, err := s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)
	s.Equal(models.StatusActive, accepted.Status)
	s.Require().NotNil(accepted.AcceptedAt)

	// The requester learns the channel token.
	reqEvents := s.notifier.eventsFor(schemas.GroupForIdentity(requesterID))
	s.Require().Len(reqEvents, 1)
	s.Equal(schemas.EventSessionAccepted, reqEvents[0].Event)
	payload := reqEvents[0].Payload.(schemas.SessionAcceptedEvent)
	s.Equal(session.ChannelToken, payload.ChannelToken)

	s.advance(4 * time.Minute)

	ended, err := s.coord.End(s.ctx, session.SessionID, requesterID)
	s.Require().NoError(err)
	s.Equal(models.StatusEnded, ended.Status)
	s.Equal(int64(240), ended.BilledDurationSeconds)
	s.Equal(int64(5), ended.AmountDebited) // one billable minute past the allowance
	s.Equal(requesterID, ended.EndedBy)

	balance, err := s.ledger.Balance(s.ctx, requesterID)
	s.Require().NoError(err)
	s.Equal(int64(95), balance)

	// Both parties get the ended event.
	s.Len(s.notifier.eventsFor(schemas.GroupForIdentity(requesterID)), 2)
	advEvents := s.notifier.eventsFor(schemas.GroupForIdentity(advisorID))
	s.Equal(schemas.EventSessionEnded, advEvents[len(advEvents)-1].Event)
}

func (s *CoordinatorSuite) TestCreateUnknownAdvisor() {
	_, err := s.coord.Create(s.ctx, requesterID, "nobody", models.ChannelText)
	s.ErrorIs(err, models.ErrIdentityNotFound)
}

func (s *CoordinatorSuite) TestCreateTargetNotAnAdvisor() {
	_, err := s.coord.Create(s.ctx, advisorID, requesterID, models.ChannelText)
	s.ErrorIs(err, models.ErrNotAnAdvisor)
}

func (s *CoordinatorSuite) TestCreateAdvisorOffline() {
	s.registry.Disconnect(advisorID, testHandle("h-adv"))

	_, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.ErrorIs(err, models.ErrAdvisorOffline)
}

func (s *CoordinatorSuite) TestCreateChannelUnavailable() {
	s.Require().NoError(s.registry.SetAvailability(advisorID, models.ChannelVideo, false))

	_, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelVideo)
	s.ErrorIs(err, models.ErrAdvisorUnavailable)
}

func (s *CoordinatorSuite) TestCreateInsufficientBalance() {
	_, err := s.coord.Create(s.ctx, "broke-user", advisorID, models.ChannelText)

	var insuf *models.InsufficientBalanceError
	s.Require().ErrorAs(err, &insuf)
	s.Equal(int64(advisorRate), insuf.Required)
	s.Equal(int64(0), insuf.Current)
}

func (s *CoordinatorSuite) TestCreateDuplicateReturnsExistingID() {
	first, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelAudio)
	var dup *models.DuplicateSessionError
	s.Require().ErrorAs(err, &dup)
	s.Equal(first.SessionID, dup.ExistingSessionID)
}

// TestConcurrentCreateSingleWinner checks the single-live-session invariant
// under racing Create calls: exactly one wins, every loser is pointed at the
// winner's session id.
func (s *CoordinatorSuite) TestConcurrentCreateSingleWinner() {
	const callers = 16

	var wg sync.WaitGroup
	var mu sync.Mutex
	var winners []*models.Session
	var duplicates []*models.DuplicateSessionError

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				winners = append(winners, session)
				return
			}
			var dup *models.DuplicateSessionError
			if s.Assert().ErrorAs(err, &dup) {
				duplicates = append(duplicates, dup)
			}
		}()
	}
	wg.Wait()

	s.Require().Len(winners, 1)
	s.Len(duplicates, callers-1)
	for _, dup := range duplicates {
		s.Equal(winners[0].SessionID, dup.ExistingSessionID)
	}
}

func (s *CoordinatorSuite) TestAcceptWrongAdvisorForbidden() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.Accept(s.ctx, session.SessionID, "adv-2")
	s.ErrorIs(err, models.ErrForbidden)

	unchanged, err := s.coord.Get(s.ctx, session.SessionID, requesterID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, unchanged.Status)
}

func (s *CoordinatorSuite) TestAcceptTwiceAlreadyResolved() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	var resolved *models.AlreadyResolvedError
	s.Require().ErrorAs(err, &resolved)
	s.Equal(models.StatusActive, resolved.Status)
}

func (s *CoordinatorSuite) TestRejectAfterAcceptAlreadyResolved() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	_, err = s.coord.Reject(s.ctx, session.SessionID, advisorID)
	var resolved *models.AlreadyResolvedError
	s.Require().ErrorAs(err, &resolved)
	s.Equal(models.StatusActive, resolved.Status)
}

func (s *CoordinatorSuite) TestRejectNotifiesRequester() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	rejected, err := s.coord.Reject(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)
	s.Equal(models.StatusRejected, rejected.Status)
	s.Require().NotNil(rejected.EndTime)

	events := s.notifier.eventsFor(schemas.GroupForIdentity(requesterID))
	s.Require().Len(events, 1)
	s.Equal(schemas.EventSessionRejected, events[0].Event)
}

func (s *CoordinatorSuite) TestEndByStrangerForbidden() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.End(s.ctx, session.SessionID, "stranger")
	s.ErrorIs(err, models.ErrForbidden)
}

func (s *CoordinatorSuite) TestEndMissingSessionNotFound() {
	_, err := s.coord.End(s.ctx, "no-such-session", requesterID)
	s.ErrorIs(err, models.ErrSessionNotFound)
}

func (s *CoordinatorSuite) TestEndPendingSessionBillsFromStart() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelAudio)
	s.Require().NoError(err)

	s.advance(125 * time.Second)

	ended, err := s.coord.End(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)
	s.Equal(int64(125), ended.BilledDurationSeconds)
	// Audio has no free allowance: 125s rounds up to 3 minutes.
	s.Equal(int64(3*advisorRate), ended.AmountDebited)
}

func (s *CoordinatorSuite) TestEndRejectedSessionInvalidTransition() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	_, err = s.coord.Reject(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	_, err = s.coord.End(s.ctx, session.SessionID, requesterID)
	s.ErrorIs(err, models.ErrInvalidTransition)
}

func (s *CoordinatorSuite) TestEndClampsDebitToBalance() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelVideo)
	s.Require().NoError(err)
	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	// 100 in the wallet covers 20 minutes at rate 5; run for an hour.
	s.advance(time.Hour)

	ended, err := s.coord.End(s.ctx, session.SessionID, requesterID)
	s.Require().NoError(err)
	s.Equal(int64(100), ended.AmountDebited)

	balance, err := s.ledger.Balance(s.ctx, requesterID)
	s.Require().NoError(err)
	s.Equal(int64(0), balance)
}

// TestConcurrentEndBillsOnce races two End calls: one wins, the loser
// observes the winner's billing outcome, and exactly one debit lands.
func (s *CoordinatorSuite) TestConcurrentEndBillsOnce() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelAudio)
	s.Require().NoError(err)
	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	s.advance(10 * time.Minute)

	type outcome struct {
		session *models.Session
		err     error
	}
	results := make(chan outcome, 2)
	for _, caller := range []string{requesterID, advisorID} {
		caller := caller
		go func() {
			ended, err := s.coord.End(s.ctx, session.SessionID, caller)
			results <- outcome{session: ended, err: err}
		}()
	}

	var wins, losses int
	var winnerAmount, winnerDuration int64
	var loser *models.AlreadyEndedError
	for i := 0; i < 2; i++ {
		res := <-results
		if res.err == nil {
			wins++
			winnerAmount = res.session.AmountDebited
			winnerDuration = res.session.BilledDurationSeconds
			continue
		}
		var already *models.AlreadyEndedError
		s.Require().ErrorAs(res.err, &already)
		losses++
		loser = already
	}

	s.Equal(1, wins)
	s.Equal(1, losses)
	s.Equal(winnerAmount, loser.AmountDebited)
	s.Equal(winnerDuration, loser.BilledDurationSeconds)

	// Exactly one billing computation reached the ledger.
	txs, err := s.ledger.Transactions(s.ctx, requesterID)
	s.Require().NoError(err)
	var debits int
	for _, tx := range txs {
		if tx.Type == models.TxDebit {
			debits++
		}
	}
	s.Equal(1, debits)
}

func (s *CoordinatorSuite) TestCreateAllowedAfterSessionEnds() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	_, err = s.coord.End(s.ctx, session.SessionID, requesterID)
	s.Require().NoError(err)

	again, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	s.NotEqual(session.SessionID, again.SessionID)
}

func (s *CoordinatorSuite) TestSendMessageRequiresActiveSession() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.SendMessage(s.ctx, session.SessionID, requesterID, "hello")
	s.ErrorIs(err, models.ErrSessionNotActive)
}

func (s *CoordinatorSuite) TestSendMessageStrangerForbidden() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	_, err = s.coord.SendMessage(s.ctx, session.SessionID, "stranger", "hi")
	s.ErrorIs(err, models.ErrForbidden)
}

func (s *CoordinatorSuite) TestTranscriptSurvivesSessionEnd() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	sent, err := s.coord.SendMessage(s.ctx, session.SessionID, requesterID, "what does my chart say")
	s.Require().NoError(err)
	s.Equal(advisorID, sent.ToID)
	s.False(sent.Delivered)

	// The message is pushed to the session group.
	events := s.notifier.eventsFor(schemas.GroupForSession(session.SessionID))
	s.Require().Len(events, 1)
	s.Equal(schemas.EventMessageReceived, events[0].Event)

	_, err = s.coord.End(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	transcript, err := s.coord.Messages(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)
	s.Require().Len(transcript, 1)
	s.Equal("what does my chart say", transcript[0].Text)

	// New messages can no longer be appended.
	_, err = s.coord.SendMessage(s.ctx, session.SessionID, requesterID, "one more")
	s.ErrorIs(err, models.ErrSessionNotActive)
}

func (s *CoordinatorSuite) TestMarkDeliveredOnlyFlipsRecipientMessages() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)
	_, err = s.coord.Accept(s.ctx, session.SessionID, advisorID)
	s.Require().NoError(err)

	_, err = s.coord.SendMessage(s.ctx, session.SessionID, requesterID, "to advisor")
	s.Require().NoError(err)
	_, err = s.coord.SendMessage(s.ctx, session.SessionID, advisorID, "to requester")
	s.Require().NoError(err)

	s.Require().NoError(s.coord.MarkDelivered(s.ctx, session.SessionID, advisorID))

	transcript, err := s.coord.Messages(s.ctx, session.SessionID, requesterID)
	s.Require().NoError(err)
	s.Require().Len(transcript, 2)
	for _, msg := range transcript {
		if msg.ToID == advisorID {
			s.True(msg.Delivered)
		} else {
			s.False(msg.Delivered)
		}
	}
}

func (s *CoordinatorSuite) TestGetForbiddenForStranger() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	_, err = s.coord.Get(s.ctx, session.SessionID, "stranger")
	s.ErrorIs(err, models.ErrForbidden)
}

func (s *CoordinatorSuite) TestListForReturnsBothSides() {
	session, err := s.coord.Create(s.ctx, requesterID, advisorID, models.ChannelText)
	s.Require().NoError(err)

	mine, err := s.coord.ListFor(s.ctx, requesterID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Equal(session.SessionID, mine[0].SessionID)

	theirs, err := s.coord.ListFor(s.ctx, advisorID)
	s.Require().NoError(err)
	s.Len(theirs, 1)
}
