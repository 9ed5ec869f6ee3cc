package presence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshulchawla1408/Astrousers-sub000/src/directory"
	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
	"github.com/harshulchawla1408/Astrousers-sub000/src/schemas"
)

type handle string

func (h handle) ID() string { return string(h) }

type captureNotifier struct {
	mu        sync.Mutex
	snapshots []*schemas.OnlineAdvisorsSnapshot
}

func (n *captureNotifier) Publish(groupKey, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if groupKey == schemas.GroupAdvisorsOnline && event == schemas.EventAdvisorsOnlineChanged {
		n.snapshots = append(n.snapshots, payload.(*schemas.OnlineAdvisorsSnapshot))
	}
}

func (n *captureNotifier) last() *schemas.OnlineAdvisorsSnapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.snapshots) == 0 {
		return nil
	}
	return n.snapshots[len(n.snapshots)-1]
}

func (n *captureNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.snapshots)
}

func newTestRegistry() (*Registry, *captureNotifier) {
	dir := directory.NewStaticDirectory()
	dir.Put(directory.AdvisorInfo{
		IdentityID:    "adv-1",
		IsAdvisor:     true,
		RatePerMinute: 5,
		Channels:      models.Availability{Text: true, Audio: true},
	})
	dir.Put(directory.AdvisorInfo{IdentityID: "user-1"})
	notifier := &captureNotifier{}
	return NewRegistry(dir, notifier), notifier
}

func TestConnectSeedsAvailabilityFromDirectory(t *testing.T) {
	r, notifier := newTestRegistry()

	r.Connect(context.Background(), "adv-1", handle("h1"))

	entry, ok := r.Get("adv-1")
	require.True(t, ok)
	assert.True(t, entry.Online)
	assert.True(t, entry.IsAdvisor)
	assert.Equal(t, "h1", entry.HandleID)
	assert.True(t, entry.Availability.Text)
	assert.True(t, entry.Availability.Audio)
	assert.False(t, entry.Availability.Video)

	snapshot := notifier.last()
	require.NotNil(t, snapshot)
	require.Len(t, snapshot.Advisors, 1)
	assert.Equal(t, "adv-1", snapshot.Advisors[0].AdvisorID)
}

func TestConnectNonAdvisorDoesNotPublish(t *testing.T) {
	r, notifier := newTestRegistry()

	r.Connect(context.Background(), "user-1", handle("h1"))

	entry, ok := r.Get("user-1")
	require.True(t, ok)
	assert.True(t, entry.Online)
	assert.False(t, entry.IsAdvisor)
	assert.Zero(t, notifier.count())
}

func TestStaleDisconnectIsNoOp(t *testing.T) {
	r, _ := newTestRegistry()
	ctx := context.Background()

	r.Connect(ctx, "adv-1", handle("h1"))
	// A reconnect supersedes h1 before the old connection's teardown runs.
	r.Connect(ctx, "adv-1", handle("h2"))
	r.Disconnect("adv-1", handle("h1"))

	entry, ok := r.Get("adv-1")
	require.True(t, ok)
	assert.True(t, entry.Online)
	assert.Equal(t, "h2", entry.HandleID)

	// The current handle still disconnects normally.
	r.Disconnect("adv-1", handle("h2"))
	entry, ok = r.Get("adv-1")
	require.True(t, ok)
	assert.False(t, entry.Online)
}

func TestDisconnectUnknownIdentity(t *testing.T) {
	r, notifier := newTestRegistry()
	r.Disconnect("ghost", handle("h1"))
	assert.Zero(t, notifier.count())
}

func TestSetAvailabilityTogglesChannel(t *testing.T) {
	r, notifier := newTestRegistry()
	ctx := context.Background()
	r.Connect(ctx, "adv-1", handle("h1"))

	require.NoError(t, r.SetAvailability("adv-1", models.ChannelText, false))

	entry, ok := r.Get("adv-1")
	require.True(t, ok)
	assert.False(t, entry.Availability.Text)
	assert.True(t, entry.Availability.Audio)

	snapshot := notifier.last()
	require.NotNil(t, snapshot)
	require.Len(t, snapshot.Advisors, 1)
	assert.False(t, snapshot.Advisors[0].Availability.Text)
}

func TestSetAvailabilityRequiresKnownAdvisor(t *testing.T) {
	r, _ := newTestRegistry()
	ctx := context.Background()
	r.Connect(ctx, "user-1", handle("h1"))

	assert.ErrorIs(t, r.SetAvailability("ghost", models.ChannelText, true), models.ErrIdentityNotFound)
	assert.ErrorIs(t, r.SetAvailability("user-1", models.ChannelText, true), models.ErrIdentityNotFound)
}

func TestListOnlineAdvisorsExcludesOffline(t *testing.T) {
	r, _ := newTestRegistry()
	ctx := context.Background()

	r.Connect(ctx, "adv-1", handle("h1"))
	r.Connect(ctx, "user-1", handle("h2"))
	assert.Len(t, r.ListOnlineAdvisors(), 1)

	r.Disconnect("adv-1", handle("h1"))
	assert.Empty(t, r.ListOnlineAdvisors())
}

func TestDisconnectPublishesShrunkenSnapshot(t *testing.T) {
	r, notifier := newTestRegistry()
	ctx := context.Background()

	r.Connect(ctx, "adv-1", handle("h1"))
	r.Disconnect("adv-1", handle("h1"))

	snapshot := notifier.last()
	require.NotNil(t, snapshot)
	assert.Empty(t, snapshot.Advisors)
}
