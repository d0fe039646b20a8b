package form

import (
	"context"
	"sync"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
)

// Lifecycle tracks the submission state of one dialog session:
// open -> mutating -> (closed | open again on failure), or open -> closed on cancel.
// It holds no lock; Base serializes access.
type Lifecycle struct {
	kind     string
	mutating bool
	closed   bool
}

// NewLifecycle returns an open lifecycle for the given form kind.
func NewLifecycle(kind string) Lifecycle {
	return Lifecycle{kind: kind}
}

// Mutating reports whether a submission is in flight.
func (l *Lifecycle) Mutating() bool { return l.mutating }

// Closed reports whether the session has ended.
func (l *Lifecycle) Closed() bool { return l.closed }

// Reopen starts a new session. Fails while a submission is in flight.
func (l *Lifecycle) Reopen() error {
	if l.mutating {
		return apperror.NewFormInFlight(l.kind)
	}
	l.closed = false
	return nil
}

// BeginSubmit marks the form as mutating when ready is true.
func (l *Lifecycle) BeginSubmit(ready bool) error {
	switch {
	case l.closed:
		return apperror.NewFormClosed(l.kind)
	case l.mutating:
		return apperror.NewFormInFlight(l.kind)
	case !ready:
		return apperror.NewFormNotSubmittable(l.kind)
	}
	l.mutating = true
	return nil
}

// EndSubmit completes a submission: success closes the session,
// failure returns it to the editable state with fields untouched.
func (l *Lifecycle) EndSubmit(err error) {
	l.mutating = false
	if err == nil {
		l.closed = true
	}
}

// Cancel closes the session without submitting.
func (l *Lifecycle) Cancel() error {
	switch {
	case l.closed:
		return apperror.NewFormClosed(l.kind)
	case l.mutating:
		return apperror.NewFormInFlight(l.kind)
	}
	l.closed = true
	return nil
}

// Dismiss closes the session unless a submission is in flight.
func (l *Lifecycle) Dismiss() bool {
	if l.mutating {
		return false
	}
	l.closed = true
	return true
}

// Base is embedded by the concrete forms. It owns the form mutex, the mode
// and the lifecycle, and runs submissions against a Submitter.
//
// Field state stays in the embedding form and is only touched inside Edit,
// Read and the callbacks passed to Open and Submit.
type Base[S any] struct {
	mu        sync.Mutex
	kind      string
	mode      Mode
	lc        Lifecycle
	submitter Submitter[S]
}

// Init sets the form kind and submitter. Must be called before first use.
func (b *Base[S]) Init(kind string, submitter Submitter[S]) {
	b.kind = kind
	b.lc = NewLifecycle(kind)
	b.submitter = submitter
}

// Kind returns the form kind ("unit", "warehouse", "location").
func (b *Base[S]) Kind() string { return b.kind }

// Mode returns the session mode.
func (b *Base[S]) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// Mutating reports whether a submission is in flight.
func (b *Base[S]) Mutating() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lc.Mutating()
}

// Closed reports whether the session has ended.
func (b *Base[S]) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lc.Closed()
}

// Open fixes the mode and replaces the field state through reset.
func (b *Base[S]) Open(mode Mode, reset func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.lc.Reopen(); err != nil {
		return err
	}
	b.mode = mode
	reset()
	return nil
}

// Edit applies fn to the field state. Edits to a closed session are dropped.
func (b *Base[S]) Edit(fn func(mode Mode)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lc.Closed() {
		return
	}
	fn(b.mode)
}

// Read runs fn with the form locked. fn receives the mode and mutating flag.
func (b *Base[S]) Read(fn func(mode Mode, mutating bool)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b.mode, b.lc.Mutating())
}

// Submit checks ready, takes the snapshot and hands it to the submitter.
// The form is unlocked while the submitter runs, so setters and reads stay
// responsive; the snapshot is already detached from the field state.
func (b *Base[S]) Submit(ctx context.Context, ready func() bool, snapshot func(mode Mode) S) (id.ID, error) {
	b.mu.Lock()
	if err := b.lc.BeginSubmit(ready()); err != nil {
		b.mu.Unlock()
		return id.Nil(), err
	}
	mode := b.mode
	snap := snapshot(mode)
	b.mu.Unlock()

	entityID, err := b.submitter.Submit(ctx, mode, snap)

	b.mu.Lock()
	b.lc.EndSubmit(err)
	b.mu.Unlock()

	if err != nil {
		return id.Nil(), err
	}
	return entityID, nil
}

// Cancel discards the session.
func (b *Base[S]) Cancel() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lc.Cancel()
}

// Dismiss closes the session on behalf of the host.
func (b *Base[S]) Dismiss() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lc.Dismiss()
}
