package warehousetype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	"depo/internal/domain/domaintest"
)

func TestService_Options(t *testing.T) {
	repo := domaintest.NewMemRepo(Kind, (*WarehouseType).Clone)
	repo.Seed(
		NewWarehouseType("RAW", "Hammadde Deposu"),
		NewWarehouseType("GEN", "Genel"),
	)
	svc := NewService(repo, nil, nil)

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	require.Len(t, opts, 2)

	assert.Equal(t, "GEN", opts[0].Code)
	assert.Equal(t, IconDefault, opts[0].Icon)
	assert.Equal(t, "RAW", opts[1].Code)
	assert.Equal(t, IconRawMaterial, opts[1].Icon)
}

func TestService_DuplicateCode(t *testing.T) {
	repo := domaintest.NewMemRepo(Kind, (*WarehouseType).Clone)
	repo.Seed(NewWarehouseType("RAW", "Hammadde Deposu"))
	svc := NewService(repo, nil, nil)

	err := svc.Create(context.Background(), NewWarehouseType("RAW", "Raw 2"))
	assert.True(t, apperror.HasCode(err, apperror.CodeDuplicate))
}
