package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depo/internal/core/id"
)

func TestWarehousePatch_OptionalID(t *testing.T) {
	typeID := id.New()

	tests := []struct {
		name    string
		body    string
		wantSet bool
		wantVal *id.ID
	}{
		{"absent", `{"name":"Main"}`, false, nil},
		{"null clears", `{"warehouseTypeId":null}`, true, nil},
		{"empty string clears", `{"warehouseTypeId":""}`, true, nil},
		{"value", `{"warehouseTypeId":"` + typeID.String() + `"}`, true, &typeID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p WarehousePatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.wantSet, p.WarehouseTypeID.Set)
			assert.Equal(t, tt.wantVal, p.WarehouseTypeID.Value)
			assert.False(t, p.LocationID.Set)
		})
	}
}

func TestOptionalID_Invalid(t *testing.T) {
	var p WarehousePatch
	assert.Error(t, json.Unmarshal([]byte(`{"locationId":"nope"}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"locationId":42}`), &p))
}
