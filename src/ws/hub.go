package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

// Hub is the notification fan-out: it maps broadcast group keys to the live
// client handles that belong to them. Delivery is best-effort and at most
// once per connected handle; a slow or gone client simply misses the event
// and reconciles on reconnect by fetching current state.
type Hub struct {
	mu         sync.RWMutex
	groups     map[string]map[*Client]bool
	identities map[string]map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		groups:     make(map[string]map[*Client]bool),
		identities: make(map[string]map[*Client]bool),
	}
}

// Register adds a connected client to its identity group and the shared
// advisors-online group.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.identities[c.identity] == nil {
		h.identities[c.identity] = make(map[*Client]bool)
	}
	h.identities[c.identity][c] = true
	h.joinLocked(schemas.GroupForIdentity(c.identity), c)
	h.joinLocked(schemas.GroupAdvisorsOnline, c)
}

// Unregister removes the client from every group and closes its send queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	for group := range c.groups {
		h.leaveLocked(group, c)
	}
	if m := h.identities[c.identity]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.identities, c.identity)
		}
	}
	h.mu.Unlock()

	c.shutdown()
}

// Join adds a single handle to a group.
func (h *Hub) Join(groupKey string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(groupKey, c)
}

// Leave removes a single handle from a group.
func (h *Hub) Leave(groupKey string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(groupKey, c)
}

// Subscribe adds the live handles of the given identities to a group.
func (h *Hub) Subscribe(groupKey string, identityIDs ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range identityIDs {
		for c := range h.identities[id] {
			h.joinLocked(groupKey, c)
		}
	}
}

// Unsubscribe removes the live handles of the given identities from a group.
func (h *Hub) Unsubscribe(groupKey string, identityIDs ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range identityIDs {
		for c := range h.identities[id] {
			h.leaveLocked(groupKey, c)
		}
	}
}

// Publish sends a named event to every handle in the group. A handle whose
// send queue is full drops the event rather than blocking the publisher.
func (h *Hub) Publish(groupKey, event string, payload any) {
	frame, err := json.Marshal(schemas.Envelope{Event: event, Data: payload})
	if err != nil {
		slog.Error("Failed to marshal event", "event", event, "error", err)
		return
	}

	h.mu.RLock()
	members := make([]*Client, 0, len(h.groups[groupKey]))
	for c := range h.groups[groupKey] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		select {
		case c.send <- frame:
		default:
			slog.Warn("Dropping event for slow client",
				"event", event,
				"identity_id", c.identity,
				"handle_id", c.id)
		}
	}
}

func (h *Hub) joinLocked(groupKey string, c *Client) {
	if h.groups[groupKey] == nil {
		h.groups[groupKey] = make(map[*Client]bool)
	}
	h.groups[groupKey][c] = true
	c.groups[groupKey] = true
}

func (h *Hub) leaveLocked(groupKey string, c *Client) {
	if m := h.groups[groupKey]; m != nil {
		delete(m, c)
		if len(m) == 0 {
			delete(h.groups, groupKey)
		}
	}
	delete(c.groups, groupKey)
}
