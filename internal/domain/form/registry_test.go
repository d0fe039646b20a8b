package form

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func okSubmit(ctx context.Context, mode Mode, s string) (id.ID, error) {
	return id.New(), nil
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(id.New())
	assert.True(t, apperror.HasCode(err, apperror.CodeSessionNotFound))
}

func TestRegistry_ClosedSessionIsDropped(t *testing.T) {
	r := NewRegistry()
	f := newNoteForm(okSubmit)
	sid := r.Put(f)

	require.NoError(t, f.Cancel())

	_, err := r.Get(sid)
	assert.True(t, apperror.HasCode(err, apperror.CodeSessionNotFound))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_SweepDismissesIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	var expired []id.ID
	r := NewRegistry(
		WithClock(clock.Now),
		WithExpireHook(func(sid id.ID, s Session) { expired = append(expired, sid) }),
	)

	idle := newNoteForm(okSubmit)
	busy := newNoteForm(okSubmit)
	idleID := r.Put(idle)
	busyID := r.Put(busy)

	clock.Advance(10 * time.Minute)
	_, err := r.Get(busyID)
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)

	n := r.Sweep(15 * time.Minute)
	assert.Equal(t, 1, n)
	assert.Equal(t, []id.ID{idleID}, expired)
	assert.True(t, idle.Closed())
	assert.False(t, busy.Closed())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SweepKeepsInFlight(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	r := NewRegistry(WithClock(clock.Now))

	f := newNoteForm(okSubmit)
	f.lc.mutating = true
	r.Put(f)

	clock.Advance(time.Hour)
	assert.Equal(t, 0, r.Sweep(time.Minute))
	assert.Equal(t, 1, r.Len())
}

type otherForm struct{ noteForm }

func TestLookup_WrongKind(t *testing.T) {
	r := NewRegistry()
	sid := r.Put(newNoteForm(okSubmit))

	got, err := Lookup[*noteForm](r, sid)
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = Lookup[*otherForm](r, sid)
	assert.True(t, apperror.HasCode(err, apperror.CodeSessionNotFound))
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
