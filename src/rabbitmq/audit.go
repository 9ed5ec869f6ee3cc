package rabbitmq

import (
	"encoding/json"
	"log/slog"
	"time"
)

// AuditExchange is the fanout exchange carrying session-lifecycle and wallet
// records for out-of-band consumers (analytics, reconciliation).
const AuditExchange = "consult.audit"

// AuditFeed publishes audit records through a Publisher. Emission is
// fire-and-forget: a broker failure is logged and never surfaces to the
// operation that produced the record.
type AuditFeed struct {
	publisher Publisher
}

// NewAuditFeed wraps a publisher as an audit feed.
func NewAuditFeed(publisher Publisher) *AuditFeed {
	return &AuditFeed{publisher: publisher}
}

type auditRecord struct {
	Event string    `json:"event"`
	At    time.Time `json:"at"`
	Data  any       `json:"data"`
}

// Emit publishes one audit record.
func (f *AuditFeed) Emit(event string, payload any) {
	body, err := json.Marshal(auditRecord{
		Event: event,
		At:    time.Now().UTC(),
		Data:  payload,
	})
	if err != nil {
		slog.Error("Failed to marshal audit record", "event", event, "error", err)
		return
	}
	if err := f.publisher.Publish(body); err != nil {
		slog.Error("Failed to publish audit record", "event", event, "error", err)
	}
}
