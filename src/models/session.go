package models

import "time"

// Channel is the consultation medium for a session.
type Channel string

const (
	ChannelText  Channel = "text"
	ChannelAudio Channel = "audio"
	ChannelVideo Channel = "video"
)

// Valid reports whether c is one of the supported consultation channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelText, ChannelAudio, ChannelVideo:
		return true
	}
	return false
}

// SessionStatus represents the status of a consultation session
type SessionStatus string

const (
	StatusPending  SessionStatus = "PENDING"
	StatusActive   SessionStatus = "ACTIVE"
	StatusEnded    SessionStatus = "ENDED"
	StatusRejected SessionStatus = "REJECTED"
)

// Terminal reports whether the status admits no further transitions.
func (s SessionStatus) Terminal() bool {
	return s == StatusEnded || s == StatusRejected
}

// Session represents a consultation session between a requester and an advisor.
// A session is mutated only by the coordinator; once terminal it is immutable.
type Session struct {
	SessionID     string        `json:"session_id" db:"session_id"`
	RequesterID   string        `json:"requester_id" db:"requester_id"`
	AdvisorID     string        `json:"advisor_id" db:"advisor_id"`
	Channel       Channel       `json:"channel" db:"channel"`
	Status        SessionStatus `json:"status" db:"status"`
	ChannelToken  string        `json:"channel_token" db:"channel_token"`
	RatePerMinute int64         `json:"rate_per_minute" db:"rate_per_minute"`
	StartTime     time.Time     `json:"start_time" db:"start_time"`
	AcceptedAt    *time.Time    `json:"accepted_at,omitempty" db:"accepted_at"`
	EndTime       *time.Time    `json:"end_time,omitempty" db:"end_time"`

	// Billing outcome, zero until the session is ended.
	BilledDurationSeconds int64  `json:"billed_duration_seconds" db:"billed_duration_seconds"`
	AmountDebited         int64  `json:"amount_debited" db:"amount_debited"`
	EndedBy               string `json:"ended_by,omitempty" db:"ended_by"`
}

// IsParty reports whether identityID is the requester or the advisor of the session.
func (s *Session) IsParty(identityID string) bool {
	return identityID == s.RequesterID || identityID == s.AdvisorID
}

// OtherParty returns the counterpart of identityID in the session.
func (s *Session) OtherParty(identityID string) string {
	if identityID == s.RequesterID {
		return s.AdvisorID
	}
	return s.RequesterID
}
