package models

import "time"

// Availability holds an advisor's per-channel availability flags.
type Availability struct {
	Text  bool `json:"text"`
	Audio bool `json:"audio"`
	Video bool `json:"video"`
}

// For returns the flag for the given channel.
func (a Availability) For(c Channel) bool {
	switch c {
	case ChannelText:
		return a.Text
	case ChannelAudio:
		return a.Audio
	case ChannelVideo:
		return a.Video
	}
	return false
}

// PresenceEntry is the registry's view of one identity. An identity has at
// most one live connection handle; a new connection supersedes the old one.
// Entries are never deleted, LastSeen is retained for audit.
type PresenceEntry struct {
	IdentityID   string       `json:"identity_id"`
	Online       bool         `json:"online"`
	HandleID     string       `json:"-"`
	IsAdvisor    bool         `json:"is_advisor"`
	Availability Availability `json:"availability"`
	LastSeen     time.Time    `json:"last_seen"`
}
