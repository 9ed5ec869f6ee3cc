package directory

import (
	"context"
	"sync"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// StaticDirectory is an in-memory Directory used by tests and local runs.
type StaticDirectory struct {
	mu      sync.RWMutex
	entries map[string]AdvisorInfo
}

// NewStaticDirectory creates an empty in-memory directory.
func NewStaticDirectory() *StaticDirectory {
	return &StaticDirectory{entries: make(map[string]AdvisorInfo)}
}

// Put registers or replaces an identity entry.
func (d *StaticDirectory) Put(info AdvisorInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[info.IdentityID] = info
}

// Lookup returns the stored capability set for an identity.
func (d *StaticDirectory) Lookup(_ context.Context, identityID string) (*AdvisorInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	info, ok := d.entries[identityID]
	if !ok {
		return nil, models.ErrIdentityNotFound
	}
	out := info
	return &out, nil
}
