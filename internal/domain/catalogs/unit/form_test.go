package unit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	"depo/internal/core/entity"
	"depo/internal/core/id"
	"depo/internal/domain/form"
)

type capture struct {
	calls int
	mode  form.Mode
	snap  Snapshot
	err   error
}

func (c *capture) Submit(ctx context.Context, mode form.Mode, snap Snapshot) (id.ID, error) {
	c.calls++
	c.mode = mode
	c.snap = snap
	if c.err != nil {
		return id.Nil(), c.err
	}
	return id.New(), nil
}

func newTestForm(sub *capture) *Form {
	return NewForm(FormConfig{Submitter: sub})
}

func storedUnit(code, trName, enName, trSymbol, enSymbol string) *Unit {
	u := &Unit{
		Catalog:  entity.NewCatalog(code),
		TrName:   trName,
		EnName:   enName,
		TrSymbol: trSymbol,
		EnSymbol: enSymbol,
		Active:   false,
	}
	u.Version = 4
	return u
}

func TestForm_AddDefaults(t *testing.T) {
	f := newTestForm(&capture{})
	v := f.View()

	assert.Equal(t, "new", v.Header)
	assert.False(t, v.Editing)
	assert.False(t, v.ShowActive)
	assert.True(t, v.Active)
	assert.Empty(t, v.DerivedCode)
	assert.False(t, v.CanSubmit)
}

func TestForm_EnNameDerivesCode(t *testing.T) {
	f := newTestForm(&capture{})

	f.SetEnName("Square metre")
	first := f.View().DerivedCode
	assert.Equal(t, "SQUARE_METRE", first)

	f.SetEnName("Square metre")
	assert.Equal(t, first, f.View().DerivedCode)

	f.SetTrName("Metrekare")
	assert.Equal(t, first, f.View().DerivedCode, "only enName drives the code")
}

func TestForm_PieceClearsSymbols(t *testing.T) {
	f := newTestForm(&capture{})
	f.SetTrName("Adet")
	f.SetTrSymbol("ad")
	f.SetEnSymbol("pc")

	f.SetEnName("Piece")

	v := f.View()
	assert.True(t, v.IsPieceUnit)
	assert.True(t, v.SymbolsDisabled)
	assert.Empty(t, v.TrSymbol)
	assert.Empty(t, v.EnSymbol)
	assert.True(t, v.CanSubmit)

	// symbol edits are ignored while the unit is a piece unit
	f.SetEnSymbol("pcs")
	assert.Empty(t, f.View().EnSymbol)

	// leaving the piece code re-enables symbols but does not restore old values
	f.SetEnName("Pieces box")
	v = f.View()
	assert.False(t, v.IsPieceUnit)
	assert.Empty(t, v.TrSymbol)
	f.SetEnSymbol("box")
	assert.Equal(t, "box", f.View().EnSymbol)
}

func TestCanSubmit(t *testing.T) {
	valid := State{TrName: "Kilogram", EnName: "Kilogram", TrSymbol: "kg", EnSymbol: "kg"}

	tests := []struct {
		name     string
		mutate   func(s *State)
		mutating bool
		want     bool
	}{
		{"valid", func(s *State) {}, false, true},
		{"blank trName", func(s *State) { s.TrName = "   " }, false, false},
		{"empty enName", func(s *State) { s.EnName = "" }, false, false},
		{"mutating", func(s *State) {}, true, false},
		{"piece with leftover symbol", func(s *State) { s.IsPieceUnit = true }, false, false},
		{"piece without symbols", func(s *State) {
			s.IsPieceUnit = true
			s.TrSymbol, s.EnSymbol = "", ""
		}, false, true},
		{"no symbols needed", func(s *State) { s.TrSymbol, s.EnSymbol = "", "" }, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			assert.Equal(t, tt.want, CanSubmit(s, tt.mutating))
		})
	}
}

func TestForm_EditSeedReproducesEntity(t *testing.T) {
	f := newTestForm(&capture{})
	u := storedUnit("KG", "Kilogram", "Kilogram", "kg", "kg")

	require.NoError(t, f.Open(form.ModeEdit, u))
	v := f.View()

	assert.Equal(t, "edit", v.Header)
	assert.True(t, v.Editing)
	assert.True(t, v.ShowActive)
	assert.Equal(t, "KG", v.Code)
	assert.Equal(t, "KILOGRAM", v.DerivedCode)
	assert.Equal(t, "Kilogram", v.TrName)
	assert.Equal(t, "Kilogram", v.EnName)
	assert.Equal(t, "kg", v.TrSymbol)
	assert.Equal(t, "kg", v.EnSymbol)
	assert.False(t, v.Active)
	assert.False(t, v.IsPieceUnit)
}

func TestForm_EditStoredPieceCode(t *testing.T) {
	f := newTestForm(&capture{})
	u := storedUnit("PIECE", "Adet", "Each", "", "")

	require.NoError(t, f.Open(form.ModeEdit, u))
	assert.True(t, f.View().IsPieceUnit, "stored code decides while enName is unchanged")

	f.SetEnName("Each one")
	v := f.View()
	assert.False(t, v.IsPieceUnit)
	assert.Equal(t, "EACH_ONE", v.Code)

	f.SetEnName("Each")
	assert.True(t, f.View().IsPieceUnit)
	assert.Equal(t, "PIECE", f.View().Code)
}

func TestForm_SetActiveOnlyInEdit(t *testing.T) {
	f := newTestForm(&capture{})
	f.SetActive(false)
	assert.True(t, f.View().Active)

	require.NoError(t, f.Open(form.ModeEdit, storedUnit("KG", "Kilogram", "Kilogram", "", "")))
	f.SetActive(true)
	assert.True(t, f.View().Active)
}

func TestForm_OpenEditWithoutSeed(t *testing.T) {
	f := newTestForm(&capture{})
	err := f.Open(form.ModeEdit, nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
}

func TestForm_SubmitTrimsAndCloses(t *testing.T) {
	sub := &capture{}
	f := newTestForm(sub)
	f.SetTrName("  Litre ")
	f.SetEnName(" Litre  ")
	f.SetTrSymbol(" lt ")
	f.SetEnSymbol("l")

	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sub.calls)
	assert.Equal(t, form.ModeAdd, sub.mode)
	assert.Equal(t, Snapshot{
		Code:     "LITRE",
		TrName:   "Litre",
		EnName:   "Litre",
		TrSymbol: "lt",
		EnSymbol: "l",
		Active:   true,
	}, sub.snap)
	assert.True(t, f.Closed())
}

func TestForm_SubmitFailureKeepsDialogOpen(t *testing.T) {
	sub := &capture{err: errors.New("duplicate")}
	f := newTestForm(sub)
	f.SetTrName("Koli")
	f.SetEnName("Case")

	_, err := f.Submit(context.Background())
	require.Error(t, err)

	v := f.View()
	assert.False(t, v.Mutating)
	assert.True(t, v.CanSubmit)
	assert.Equal(t, "Koli", v.TrName)
	assert.False(t, f.Closed())

	sub.err = nil
	_, err = f.Submit(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, sub.calls)
}

func TestForm_SubmitNotReady(t *testing.T) {
	sub := &capture{}
	f := newTestForm(sub)
	f.SetEnName("Gram")

	_, err := f.Submit(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeFormNotSubmittable))
	assert.Equal(t, 0, sub.calls)
	assert.False(t, f.CanSubmit())
}

func TestForm_CancelDiscardsEdits(t *testing.T) {
	sub := &capture{}
	f := newTestForm(sub)
	u := storedUnit("KG", "Kilogram", "Kilogram", "kg", "kg")

	require.NoError(t, f.Open(form.ModeEdit, u))
	f.SetTrName("Changed")
	f.SetEnName("Changed")
	require.NoError(t, f.Cancel())

	_, err := f.Submit(context.Background())
	assert.True(t, apperror.HasCode(err, apperror.CodeFormClosed))

	require.NoError(t, f.Open(form.ModeEdit, u))
	v := f.View()
	assert.Equal(t, "Kilogram", v.TrName)
	assert.Equal(t, "KG", v.Code)
	assert.Equal(t, 0, sub.calls)
}

func TestForm_EditSnapshotCarriesVersion(t *testing.T) {
	sub := &capture{}
	f := newTestForm(sub)
	u := storedUnit("KG", "Kilogram", "Kilogram", "kg", "kg")

	require.NoError(t, f.Open(form.ModeEdit, u))
	f.SetActive(true)
	_, err := f.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, form.ModeEdit, sub.mode)
	assert.Equal(t, u.ID, sub.snap.ID)
	assert.Equal(t, 4, sub.snap.Version)
	assert.Equal(t, "KG", sub.snap.Code)
	assert.True(t, sub.snap.Active)
}

func TestForm_CustomRules(t *testing.T) {
	isPiece, err := CELDetector(`code == "ADET"`)
	require.NoError(t, err)

	f := NewForm(FormConfig{
		Derive:    func(s string) string { return "ADET" },
		IsPiece:   isPiece,
		Submitter: &capture{},
	})
	f.SetTrSymbol("ad")
	f.SetEnName("anything")

	v := f.View()
	assert.Equal(t, "ADET", v.DerivedCode)
	assert.True(t, v.IsPieceUnit)
	assert.Empty(t, v.TrSymbol)
}
