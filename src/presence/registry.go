package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/harshulchawla1408/Astrousers-sub000/src/directory"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

// Handle identifies one live client connection. The registry never touches
// the connection itself, it only compares handle ids so a stale disconnect
// from a superseded connection is a no-op.
type Handle interface {
	ID() string
}

// Notifier is the fan-out sink for advisors-online snapshots.
type Notifier interface {
	Publish(groupKey, event string, payload any)
}

// Registry maps identities to online state and at most one live connection
// handle, and tracks advisor availability per channel. Every change that
// affects the advisor-visible online list pushes the full current snapshot
// to the shared advisors group; a dropped update is corrected by the next one.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*models.PresenceEntry

	dir      directory.Directory
	notifier Notifier
	now      func() time.Time
}

// NewRegistry creates a presence registry.
func NewRegistry(dir directory.Directory, notifier Notifier) *Registry {
	return &Registry{
		entries:  make(map[string]*models.PresenceEntry),
		dir:      dir,
		notifier: notifier,
		now:      time.Now,
	}
}

// Connect registers a live handle for the identity, superseding any prior
// handle. First connection of an advisor seeds its availability from the
// directory's channel capabilities.
func (r *Registry) Connect(ctx context.Context, identityID string, h Handle) {
	// Directory lookup is external I/O, keep it outside the lock.
	isAdvisor := false
	var channels models.Availability
	if info, err := r.dir.Lookup(ctx, identityID); err == nil {
		isAdvisor = info.IsAdvisor
		channels = info.Channels
	} else {
		slog.Warn("Directory lookup failed on connect", "identity_id", identityID, "error", err)
	}

	r.mu.Lock()
	entry, ok := r.entries[identityID]
	if !ok {
		entry = &models.PresenceEntry{
			IdentityID:   identityID,
			IsAdvisor:    isAdvisor,
			Availability: channels,
		}
		r.entries[identityID] = entry
	}
	entry.Online = true
	entry.HandleID = h.ID()
	entry.LastSeen = r.now().UTC()
	advisorVisible := entry.IsAdvisor
	var snapshot *schemas.OnlineAdvisorsSnapshot
	if advisorVisible {
		snapshot = r.snapshotLocked()
	}
	r.mu.Unlock()

	slog.Info("Identity connected", "identity_id", identityID, "handle_id", h.ID(), "is_advisor", advisorVisible)

	if snapshot != nil {
		r.publishSnapshot(snapshot)
	}
}

// Disconnect clears the identity's handle if, and only if, h is still the
// registered handle. A disconnect from a connection that was already
// superseded by a newer Connect changes nothing.
func (r *Registry) Disconnect(identityID string, h Handle) {
	r.mu.Lock()
	entry, ok := r.entries[identityID]
	if !ok || entry.HandleID != h.ID() {
		r.mu.Unlock()
		return
	}
	entry.Online = false
	entry.HandleID = ""
	entry.LastSeen = r.now().UTC()
	var snapshot *schemas.OnlineAdvisorsSnapshot
	if entry.IsAdvisor {
		snapshot = r.snapshotLocked()
	}
	r.mu.Unlock()

	slog.Info("Identity disconnected", "identity_id", identityID, "handle_id", h.ID())

	if snapshot != nil {
		r.publishSnapshot(snapshot)
	}
}

// SetAvailability toggles one channel flag for an advisor.
func (r *Registry) SetAvailability(advisorID string, channel models.Channel, enabled bool) error {
	r.mu.Lock()
	entry, ok := r.entries[advisorID]
	if !ok || !entry.IsAdvisor {
		r.mu.Unlock()
		return models.ErrIdentityNotFound
	}
	switch channel {
	case models.ChannelText:
		entry.Availability.Text = enabled
	case models.ChannelAudio:
		entry.Availability.Audio = enabled
	case models.ChannelVideo:
		entry.Availability.Video = enabled
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	slog.Info("Advisor availability changed",
		"advisor_id", advisorID,
		"channel", channel,
		"enabled", enabled)

	r.publishSnapshot(snapshot)
	return nil
}

// Get returns a copy of the identity's presence entry.
func (r *Registry) Get(identityID string) (*models.PresenceEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[identityID]
	if !ok {
		return nil, false
	}
	out := *entry
	return &out, true
}

// ListOnlineAdvisors returns every advisor with a live handle.
func (r *Registry) ListOnlineAdvisors() []models.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.PresenceEntry
	for _, entry := range r.entries {
		if entry.IsAdvisor && entry.Online {
			out = append(out, *entry)
		}
	}
	return out
}

// snapshotLocked builds the full advisors-online snapshot. Callers hold r.mu.
func (r *Registry) snapshotLocked() *schemas.OnlineAdvisorsSnapshot {
	snapshot := &schemas.OnlineAdvisorsSnapshot{Advisors: []schemas.OnlineAdvisor{}}
	for _, entry := range r.entries {
		if entry.IsAdvisor && entry.Online {
			snapshot.Advisors = append(snapshot.Advisors, schemas.OnlineAdvisor{
				AdvisorID:    entry.IdentityID,
				Availability: entry.Availability,
			})
		}
	}
	return snapshot
}

func (r *Registry) publishSnapshot(snapshot *schemas.OnlineAdvisorsSnapshot) {
	r.notifier.Publish(schemas.GroupAdvisorsOnline, schemas.EventAdvisorsOnlineChanged, snapshot)
}
