package location

import (
	"context"
	"strings"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/domain/form"
)

// Kind is the form kind of the location dialog.
const Kind = "location"

// State is the editable field state of one location dialog session.
type State struct {
	ID      id.ID
	Version int
	Code    string
	Name    string
}

// CanSubmit requires a non-blank name and no submission in flight.
func CanSubmit(s State, mutating bool) bool {
	return !mutating && !form.Blank(s.Name)
}

// Snapshot is the immutable result handed to the submitter.
type Snapshot struct {
	ID      id.ID
	Version int
	Code    string
	Name    string
}

// View is the read-only projection rendered by the dialog.
type View struct {
	Header    string `json:"header"`
	Editing   bool   `json:"editing"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name"`
	Mutating  bool   `json:"mutating"`
	CanSubmit bool   `json:"canSubmit"`
}

// Form is the location dialog controller.
type Form struct {
	form.Base[Snapshot]
	state State
}

var _ form.Session = (*Form)(nil)

// NewForm creates a form in add mode.
func NewForm(submitter form.Submitter[Snapshot]) *Form {
	f := &Form{}
	f.Init(Kind, submitter)
	return f
}

// Open replaces the state: empty in add mode, the seed location in edit mode.
func (f *Form) Open(mode form.Mode, seed *Location) error {
	if mode.Editing() && seed == nil {
		return apperror.NewInvalidInput("edit mode requires a location")
	}
	return f.Base.Open(mode, func() {
		f.state = State{}
		if mode.Editing() {
			f.state = State{ID: seed.ID, Version: seed.Version, Code: seed.Code, Name: seed.Name}
		}
	})
}

// SetName sets the location name.
func (f *Form) SetName(v string) {
	f.Edit(func(form.Mode) { f.state.Name = v })
}

// CanSubmit reports whether Submit would be accepted now.
func (f *Form) CanSubmit() bool {
	var ok bool
	f.Read(func(_ form.Mode, mutating bool) { ok = CanSubmit(f.state, mutating) })
	return ok && !f.Closed()
}

// View returns the current projection.
func (f *Form) View() View {
	var v View
	f.Read(func(mode form.Mode, mutating bool) {
		v = View{
			Header:    mode.Header(),
			Editing:   mode.Editing(),
			Code:      f.state.Code,
			Name:      f.state.Name,
			Mutating:  mutating,
			CanSubmit: CanSubmit(f.state, mutating),
		}
	})
	return v
}

// Submit hands the trimmed snapshot to the submitter.
func (f *Form) Submit(ctx context.Context) (id.ID, error) {
	return f.Base.Submit(ctx,
		func() bool { return CanSubmit(f.state, false) },
		func(form.Mode) Snapshot {
			return Snapshot{
				ID:      f.state.ID,
				Version: f.state.Version,
				Code:    f.state.Code,
				Name:    strings.TrimSpace(f.state.Name),
			}
		})
}
