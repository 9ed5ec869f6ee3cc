package schemas

// Event names pushed to connected client handles.
const (
	EventIncomingRequest       = "incoming-request"
	EventSessionAccepted       = "session-accepted"
	EventSessionRejected       = "session-rejected"
	EventSessionEnded          = "session-ended"
	EventAdvisorsOnlineChanged = "advisors-online-changed"
	EventMessageReceived       = "message-received"
)

// Well-known broadcast group keys. Identity and session groups are derived
// with the GroupFor helpers.
const (
	GroupAdvisorsOnline = "advisors-online"
)

// GroupForIdentity returns the per-identity broadcast group key.
func GroupForIdentity(identityID string) string {
	return "identity:" + identityID
}

// GroupForSession returns the per-session broadcast group key.
func GroupForSession(sessionID string) string {
	return "session:" + sessionID
}

// Envelope is the wire frame for every pushed event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// IncomingRequestEvent notifies an advisor of a new pending consultation.
type IncomingRequestEvent struct {
	SessionID   string `json:"session_id"`
	RequesterID string `json:"requester_id"`
	Channel     string `json:"channel"`
}

// SessionAcceptedEvent notifies the requester that the advisor accepted,
// carrying the channel token that binds both parties to the media stream.
type SessionAcceptedEvent struct {
	SessionID    string `json:"session_id"`
	AdvisorID    string `json:"advisor_id"`
	Channel      string `json:"channel"`
	ChannelToken string `json:"channel_token"`
}

// SessionRejectedEvent notifies the requester that the advisor declined.
type SessionRejectedEvent struct {
	SessionID string `json:"session_id"`
	AdvisorID string `json:"advisor_id"`
}

// SessionEndedEvent notifies both parties of the final billing outcome.
type SessionEndedEvent struct {
	SessionID             string `json:"session_id"`
	EndedBy               string `json:"ended_by"`
	BilledDurationSeconds int64  `json:"billed_duration_seconds"`
	AmountDebited         int64  `json:"amount_debited"`
}
