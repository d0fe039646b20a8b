// Package form holds the shared machinery of the setup dialogs: add/edit mode,
// the submission lifecycle and the registry of open dialog sessions.
//
// Each entity kind (unit, warehouse, location) defines its own Form type with
// explicit setters; the types here only cover what the kinds have in common.
package form

import (
	"context"
	"strings"

	"depo/internal/core/id"
)

// Mode is fixed when a session is opened and never changes for its lifetime.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// String returns "add" or "edit".
func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "add"
}

// Header is the dialog title key: "new" in add mode, "edit" in edit mode.
func (m Mode) Header() string {
	if m == ModeEdit {
		return "edit"
	}
	return "new"
}

// Editing reports whether the session edits an existing entity.
func (m Mode) Editing() bool {
	return m == ModeEdit
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Submitter receives the final snapshot of a form and persists it.
// A nil error closes the session; any error keeps it open for retry.
type Submitter[S any] interface {
	Submit(ctx context.Context, mode Mode, snapshot S) (id.ID, error)
}

// SubmitFunc adapts a function to Submitter.
type SubmitFunc[S any] func(ctx context.Context, mode Mode, snapshot S) (id.ID, error)

// Submit implements Submitter.
func (f SubmitFunc[S]) Submit(ctx context.Context, mode Mode, snapshot S) (id.ID, error) {
	return f(ctx, mode, snapshot)
}

// Session is the kind-independent view of an open form used by the registry.
type Session interface {
	Kind() string
	Mode() Mode
	Mutating() bool
	Closed() bool

	// Submit hands the current snapshot to the form's submitter.
	Submit(ctx context.Context) (id.ID, error)

	// Cancel discards the session. Rejected while a submission is in flight.
	Cancel() error

	// Dismiss closes the session on behalf of the host (idle expiry).
	// Returns false, leaving the session open, while a submission is in flight.
	Dismiss() bool
}
