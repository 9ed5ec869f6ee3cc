package schemas

import (
	"time"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// CreateSessionRequest represents the body of a consultation request.
type CreateSessionRequest struct {
	AdvisorID string `json:"advisor_id" binding:"required"`
	Channel   string `json:"channel" binding:"required"`
}

// SessionResponse is the canonical wire form of a session record.
type SessionResponse struct {
	SessionID             string     `json:"session_id"`
	RequesterID           string     `json:"requester_id"`
	AdvisorID             string     `json:"advisor_id"`
	Channel               string     `json:"channel"`
	Status                string     `json:"status"`
	ChannelToken          string     `json:"channel_token,omitempty"`
	StartTime             time.Time  `json:"start_time"`
	AcceptedAt            *time.Time `json:"accepted_at,omitempty"`
	EndTime               *time.Time `json:"end_time,omitempty"`
	BilledDurationSeconds int64      `json:"billed_duration_seconds"`
	AmountDebited         int64      `json:"amount_debited"`
	EndedBy               string     `json:"ended_by,omitempty"`
}

// NewSessionResponse maps a domain session onto its wire form. The channel
// token is only disclosed to parties of the session; callers pass
// includeToken accordingly.
func NewSessionResponse(s *models.Session, includeToken bool) SessionResponse {
	resp := SessionResponse{
		SessionID:             s.SessionID,
		RequesterID:           s.RequesterID,
		AdvisorID:             s.AdvisorID,
		Channel:               string(s.Channel),
		Status:                string(s.Status),
		StartTime:             s.StartTime,
		AcceptedAt:            s.AcceptedAt,
		EndTime:               s.EndTime,
		BilledDurationSeconds: s.BilledDurationSeconds,
		AmountDebited:         s.AmountDebited,
		EndedBy:               s.EndedBy,
	}
	if includeToken {
		resp.ChannelToken = s.ChannelToken
	}
	return resp
}

// SessionListResponse wraps the sessions an identity is a party to.
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}
