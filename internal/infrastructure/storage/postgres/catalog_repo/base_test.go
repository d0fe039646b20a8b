package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/apperror"
	"depo/internal/domain"
	"depo/internal/domain/catalogs/unit"
	"depo/internal/infrastructure/storage/postgres"
)

func testUnitRepo() *BaseCatalogRepo[*unit.Unit] {
	return NewUnitRepo(nil).BaseCatalogRepo
}

func TestFilteredSelect(t *testing.T) {
	repo := NewBaseCatalogRepo(nil, BaseConfig{
		Table:      "test_table",
		EntityName: "test",
		Columns:    []string{"id", "code", "name", "active", "deletion_mark"},
		SearchCols: []string{"code", "name"},
	}, func() *unit.Unit { return &unit.Unit{} })

	tests := []struct {
		name     string
		filter   domain.ListFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "defaults hide deleted",
			filter:   domain.ListFilter{},
			wantSQL:  "SELECT id, code, name, active, deletion_mark FROM test_table WHERE deletion_mark = $1",
			wantArgs: []any{false},
		},
		{
			name:     "include deleted",
			filter:   domain.ListFilter{IncludeDeleted: true},
			wantSQL:  "SELECT id, code, name, active, deletion_mark FROM test_table",
			wantArgs: nil,
		},
		{
			name:    "active and search",
			filter:  domain.ListFilter{ActiveOnly: true, Search: " main "},
			wantSQL: "SELECT id, code, name, active, deletion_mark FROM test_table WHERE deletion_mark = $1 AND active = $2 AND (code ILIKE $3 OR name ILIKE $4)",
			wantArgs: []any{false, true, "%main%", "%main%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := repo.filteredSelect(tt.filter)
			require.NoError(t, err)

			sql, args, err := q.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestFilteredSelect_ActiveOnlyIgnoredWithoutColumn(t *testing.T) {
	repo := NewLocationRepo(nil)

	q, err := repo.filteredSelect(domain.ListFilter{ActiveOnly: true, IncludeDeleted: true})
	require.NoError(t, err)

	sql, _, err := q.ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "active")
}

func TestPagedSelect(t *testing.T) {
	repo := testUnitRepo()

	sql, args, err := repo.pagedSelect(repo.baseSelect(), domain.ListFilter{OrderBy: "-en_name", Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY en_name DESC LIMIT 10 OFFSET 20")
	assert.Empty(t, args)
}

func TestParseOrderBy(t *testing.T) {
	repo := testUnitRepo()

	got, err := repo.parseOrderBy("")
	require.NoError(t, err)
	assert.Equal(t, "code ASC", got)

	got, err = repo.parseOrderBy("+tr_name")
	require.NoError(t, err)
	assert.Equal(t, "tr_name ASC", got)

	_, err = repo.parseOrderBy("code; DROP TABLE cat_units")
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	_, err = repo.parseOrderBy("-")
	assert.Error(t, err)
}

func TestInsertQuery(t *testing.T) {
	repo := testUnitRepo()
	u := unit.NewUnit("KG", "Kilogram", "Kilogram")

	sql, args, err := repo.insertQuery(u)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO cat_units (active,code,deletion_mark,en_name,en_symbol,id,tr_name,tr_symbol,version) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)",
		sql)
	assert.Equal(t, []any{true, "KG", false, "Kilogram", "", u.ID, "Kilogram", "", 1}, args)
}

func TestUpdateQuery_OptimisticLock(t *testing.T) {
	repo := testUnitRepo()
	u := unit.NewUnit("KG", "Kilogram", "Kilogram")
	u.Version = 3

	sql, args, entityID, err := repo.updateQuery(u)
	require.NoError(t, err)

	assert.Equal(t, u.ID, entityID)
	assert.Equal(t,
		"UPDATE cat_units SET active = $1, code = $2, deletion_mark = $3, en_name = $4, en_symbol = $5, tr_name = $6, tr_symbol = $7, version = version + 1 WHERE id = $8 AND version = $9",
		sql)
	assert.Equal(t, u.ID, args[7])
	assert.Equal(t, 3, args[8])
}

func TestColumnsCoverModel(t *testing.T) {
	cols := postgres.ExtractDBColumns[unit.Unit]()
	assert.Equal(t, []string{
		"id", "deletion_mark", "version", "code",
		"tr_name", "en_name", "tr_symbol", "en_symbol", "active",
	}, cols)
	assert.True(t, testUnitRepo().hasColumn("active"))
	assert.False(t, testUnitRepo().hasColumn("name"))
}
