package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	"depo/internal/domain/domaintest"
	"depo/internal/domain/form"
)

func newTestService() (*Service, *domaintest.MemRepo[*Location], *domaintest.SeqNumerator) {
	repo := domaintest.NewMemRepo(Kind, (*Location).Clone)
	num := domaintest.NewSeqNumerator()
	return NewService(repo, nil, nil, num), repo, num
}

func TestCanSubmit(t *testing.T) {
	assert.True(t, CanSubmit(State{Name: "Merkez"}, false))
	assert.False(t, CanSubmit(State{Name: "  "}, false))
	assert.False(t, CanSubmit(State{Name: "Merkez"}, true))
}

func TestForm_AddNumbersCode(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	f, err := svc.OpenForm(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "new", f.View().Header)
	assert.False(t, f.CanSubmit())

	f.SetName("  Gebze Fabrika ")
	assert.True(t, f.CanSubmit())

	locID, err := f.Submit(ctx)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, locID)
	require.NoError(t, err)
	assert.Equal(t, "LOC-00001", got.Code)
	assert.Equal(t, "Gebze Fabrika", got.Name)
	assert.True(t, f.Closed())
}

func TestForm_EditRenames(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	l := NewLocation("LOC-00007", "Depo")
	repo.Seed(l)

	f, err := svc.OpenForm(ctx, &l.ID)
	require.NoError(t, err)
	v := f.View()
	assert.Equal(t, "edit", v.Header)
	assert.Equal(t, "LOC-00007", v.Code)
	assert.Equal(t, "Depo", v.Name)

	f.SetName("Ana Depo")
	_, err = f.Submit(ctx)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Depo", got.Name)
	assert.Equal(t, "LOC-00007", got.Code)
}

func TestForm_NumeratorFailureKeepsFormOpen(t *testing.T) {
	svc, repo, num := newTestService()
	num.Err = errors.New("sequence table locked")

	f, err := svc.OpenForm(context.Background(), nil)
	require.NoError(t, err)
	f.SetName("Depo")

	_, err = f.Submit(context.Background())
	require.Error(t, err)
	assert.False(t, f.Closed())
	assert.True(t, f.CanSubmit())
	assert.Equal(t, 0, repo.Len())
}

func TestForm_CancelThenReopen(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	l := NewLocation("LOC-00001", "Depo")
	repo.Seed(l)

	f, err := svc.OpenForm(ctx, &l.ID)
	require.NoError(t, err)
	f.SetName("Discarded")
	require.NoError(t, f.Cancel())
	assert.True(t, apperror.HasCode(f.Cancel(), apperror.CodeFormClosed))

	require.NoError(t, f.Open(form.ModeEdit, l))
	assert.Equal(t, "Depo", f.View().Name)
}
