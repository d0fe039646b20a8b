package unit

import (
	"context"
	"strings"

	"depo/internal/core/apperror"
	"depo/internal/core/id"
	"depo/internal/domain/form"
)

// Kind is the form kind of the unit dialog.
const Kind = "unit"

// State is the editable field state of one unit dialog session.
type State struct {
	// Seed identity, edit mode only
	ID         id.ID
	Version    int
	StoredCode string
	SeedEnName string

	TrName   string
	EnName   string
	TrSymbol string
	EnSymbol string
	Active   bool

	// Derived on every change of EnName
	DerivedCode string
	IsPieceUnit bool
}

// EffectiveCode is the code the unit will be saved with: the stored code while an
// edited unit keeps its English name, the derived code otherwise.
func (s State) EffectiveCode(mode form.Mode) string {
	if mode.Editing() && s.EnName == s.SeedEnName && s.StoredCode != "" {
		return s.StoredCode
	}
	return s.DerivedCode
}

// CanSubmit is the submit gate: both names present, no leftover symbol on a piece
// unit and no submission in flight.
func CanSubmit(s State, mutating bool) bool {
	if mutating {
		return false
	}
	if form.Blank(s.TrName) || form.Blank(s.EnName) {
		return false
	}
	if s.IsPieceUnit && (s.TrSymbol != "" || s.EnSymbol != "") {
		return false
	}
	return true
}

// Snapshot is the immutable result handed to the submitter.
type Snapshot struct {
	ID       id.ID
	Version  int
	Code     string
	TrName   string
	EnName   string
	TrSymbol string
	EnSymbol string
	Active   bool
}

// View is the read-only projection rendered by the dialog.
type View struct {
	Header          string `json:"header"`
	Editing         bool   `json:"editing"`
	Code            string `json:"code"`
	DerivedCode     string `json:"derivedCode"`
	TrName          string `json:"trName"`
	EnName          string `json:"enName"`
	TrSymbol        string `json:"trSymbol"`
	EnSymbol        string `json:"enSymbol"`
	IsPieceUnit     bool   `json:"isPieceUnit"`
	SymbolsDisabled bool   `json:"symbolsDisabled"`
	Active          bool   `json:"active"`
	ShowActive      bool   `json:"showActive"`
	Mutating        bool   `json:"mutating"`
	CanSubmit       bool   `json:"canSubmit"`
}

// FormConfig wires the derivation rules and the submitter.
type FormConfig struct {
	Derive    CodeDeriver
	IsPiece   PieceDetector
	Submitter form.Submitter[Snapshot]
}

// Form is the unit dialog controller. One Form per open dialog.
type Form struct {
	form.Base[Snapshot]

	derive  CodeDeriver
	isPiece PieceDetector
	state   State
}

var _ form.Session = (*Form)(nil)

// NewForm creates a form in add mode with empty defaults.
func NewForm(cfg FormConfig) *Form {
	f := &Form{
		derive:  cfg.Derive,
		isPiece: cfg.IsPiece,
	}
	if f.derive == nil {
		f.derive = SlugCode
	}
	if f.isPiece == nil {
		f.isPiece = SentinelDetector(DefaultPieceSentinel)
	}
	f.Init(Kind, cfg.Submitter)
	f.state = f.seed(form.ModeAdd, nil)
	return f
}

// Open replaces the whole state: empty defaults in add mode, the seed unit in edit mode.
func (f *Form) Open(mode form.Mode, seed *Unit) error {
	if mode.Editing() && seed == nil {
		return apperror.NewInvalidInput("edit mode requires a unit")
	}
	return f.Base.Open(mode, func() {
		f.state = f.seed(mode, seed)
	})
}

func (f *Form) seed(mode form.Mode, u *Unit) State {
	s := State{Active: true}
	if mode.Editing() && u != nil {
		s = State{
			ID:         u.ID,
			Version:    u.Version,
			StoredCode: u.Code,
			SeedEnName: u.EnName,
			TrName:     u.TrName,
			EnName:     u.EnName,
			TrSymbol:   u.TrSymbol,
			EnSymbol:   u.EnSymbol,
			Active:     u.Active,
		}
	}
	f.recompute(&s, mode)
	return s
}

// recompute derives the code and piece flag from the current English name.
// A piece unit loses its symbols in the same step.
func (f *Form) recompute(s *State, mode form.Mode) {
	s.DerivedCode = f.derive(s.EnName)
	s.IsPieceUnit = f.isPiece(s.EffectiveCode(mode))
	if s.IsPieceUnit {
		s.TrSymbol = ""
		s.EnSymbol = ""
	}
}

// SetTrName sets the Turkish name.
func (f *Form) SetTrName(v string) {
	f.Edit(func(form.Mode) { f.state.TrName = v })
}

// SetEnName sets the English name and recomputes the derived fields.
func (f *Form) SetEnName(v string) {
	f.Edit(func(mode form.Mode) {
		f.state.EnName = v
		f.recompute(&f.state, mode)
	})
}

// SetTrSymbol sets the Turkish symbol. Ignored for the piece unit.
func (f *Form) SetTrSymbol(v string) {
	f.Edit(func(form.Mode) {
		if !f.state.IsPieceUnit {
			f.state.TrSymbol = v
		}
	})
}

// SetEnSymbol sets the English symbol. Ignored for the piece unit.
func (f *Form) SetEnSymbol(v string) {
	f.Edit(func(form.Mode) {
		if !f.state.IsPieceUnit {
			f.state.EnSymbol = v
		}
	})
}

// SetActive sets the active flag. Only editable in edit mode.
func (f *Form) SetActive(v bool) {
	f.Edit(func(mode form.Mode) {
		if mode.Editing() {
			f.state.Active = v
		}
	})
}

// State returns a copy of the field state.
func (f *Form) State() State {
	var s State
	f.Read(func(form.Mode, bool) { s = f.state })
	return s
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
			Code:            s.EffectiveCode(mode),
			DerivedCode:     s.DerivedCode,
			TrName:          s.TrName,
			EnName:          s.EnName,
			TrSymbol:        s.TrSymbol,
			EnSymbol:        s.EnSymbol,
			IsPieceUnit:     s.IsPieceUnit,
			SymbolsDisabled: s.IsPieceUnit,
			Active:          s.Active,
			ShowActive:      mode.Editing(),
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
		f.snapshot)
}

// snapshot is called with the form locked.
func (f *Form) snapshot(mode form.Mode) Snapshot {
	s := f.state
	snap := Snapshot{
		ID:       s.ID,
		Version:  s.Version,
		Code:     s.EffectiveCode(mode),
		TrName:   strings.TrimSpace(s.TrName),
		EnName:   strings.TrimSpace(s.EnName),
		TrSymbol: strings.TrimSpace(s.TrSymbol),
		EnSymbol: strings.TrimSpace(s.EnSymbol),
		Active:   s.Active,
	}
	if !mode.Editing() {
		snap.Active = true
	}
	return snap
}
