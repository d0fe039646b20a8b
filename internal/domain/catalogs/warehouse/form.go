package warehouse

import (
	"context"
	"strings"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/domain/form"
)

// Kind is the form kind of the warehouse dialog.
const Kind = "warehouse"

// State is the editable field state of one warehouse dialog session.
// Unset selections are nil.
type State struct {
	ID      id.ID
	Version int
	Code    string

	Name            string
	WarehouseTypeID *id.ID
	LocationID      *id.ID
}

// CanSubmit requires a name, both selections and no submission in flight.
func CanSubmit(s State, mutating bool) bool {
	return !mutating &&
		!form.Blank(s.Name) &&
		s.WarehouseTypeID != nil &&
		s.LocationID != nil
}

// Snapshot is the immutable result handed to the submitter.
type Snapshot struct {
	ID              id.ID
	Version         int
	Code            string
	Name            string
	WarehouseTypeID id.ID
	LocationID      id.ID
}

// View is the read-only projection rendered by the dialog.
type View struct {
	Header          string `json:"header"`
	Editing         bool   `json:"editing"`
	Code            string `json:"code,omitempty"`
	Name            string `json:"name"`
	WarehouseTypeID *id.ID `json:"warehouseTypeId"`
	LocationID      *id.ID `json:"locationId"`
	Mutating        bool   `json:"mutating"`
	CanSubmit       bool   `json:"canSubmit"`
}

// Form is the warehouse dialog controller.
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

// Open replaces the state: empty in add mode, the seed warehouse in edit mode.
func (f *Form) Open(mode form.Mode, seed *Warehouse) error {
	if mode.Editing() && seed == nil {
		return apperror.NewInvalidInput("edit mode requires a warehouse")
	}
	return f.Base.Open(mode, func() {
		f.state = State{}
		if mode.Editing() {
			f.state = State{
				ID:              seed.ID,
				Version:         seed.Version,
				Code:            seed.Code,
				Name:            seed.Name,
				WarehouseTypeID: id.Ptr(seed.WarehouseTypeID),
				LocationID:      id.Ptr(seed.LocationID),
			}
		}
	})
}

// SetName sets the warehouse name.
func (f *Form) SetName(v string) {
	f.Edit(func(form.Mode) { f.state.Name = v })
}

// SetWarehouseType selects the warehouse type; nil clears the selection.
func (f *Form) SetWarehouseType(v *id.ID) {
	f.Edit(func(form.Mode) { f.state.WarehouseTypeID = copyID(v) })
}

// SetLocation selects the location; nil clears the selection.
func (f *Form) SetLocation(v *id.ID) {
	f.Edit(func(form.Mode) { f.state.LocationID = copyID(v) })
}

func copyID(v *id.ID) *id.ID {
	if v == nil || id.IsNil(*v) {
		return nil
	}
	return id.Ptr(*v)
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
		s := f.state
		v = View{
			Header:          mode.Header(),
			Editing:         mode.Editing(),
			Code:            s.Code,
			Name:            s.Name,
			WarehouseTypeID: copyID(s.WarehouseTypeID),
			LocationID:      copyID(s.LocationID),
			Mutating:        mutating,
			CanSubmit:       CanSubmit(s, mutating),
		}
	})
	return v
}

// Submit hands the trimmed snapshot to the submitter.
func (f *Form) Submit(ctx context.Context) (id.ID, error) {
	return f.Base.Submit(ctx,
		func() bool { return CanSubmit(f.state, false) },
		func(form.Mode) Snapshot {
			s := f.state
			return Snapshot{
				ID:              s.ID,
				Version:         s.Version,
				Code:            s.Code,
				Name:            strings.TrimSpace(s.Name),
				WarehouseTypeID: *s.WarehouseTypeID,
				LocationID:      *s.LocationID,
			}
		})
}
