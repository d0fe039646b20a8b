package warehousetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Icon
	}{
		{"Hammadde Deposu", "RAW", IconRawMaterial},
		{"Yedek Parca", "SPARE", IconSpareParts},
		{"Bitmis Urun", "FG", IconFinished},
		{"Genel", "GEN", IconDefault},
		{"Yedek Parça", "YP", IconSpareParts},
		{"Mamul Deposu", "MM", IconFinished},
		{"Finished goods", "", IconFinished},
		{"", "", IconDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.name, tt.code))
		})
	}
}

func TestClassify_FirstGroupWins(t *testing.T) {
	// matches both raw and spare keywords
	assert.Equal(t, IconRawMaterial, Classify("Spare raw stock", "X"))
	// code is matched too
	assert.Equal(t, IconSpareParts, Classify("Depo 2", "SPARE-FINISHED"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, IconRawMaterial, Classify("HAMMADDE", "H1"))
	assert.Equal(t, IconSpareParts, Classify("", "spare"))
}

func TestWarehouseType_Icon(t *testing.T) {
	wt := NewWarehouseType("RAW", "Hammadde Deposu")
	assert.Equal(t, IconRawMaterial, wt.Icon())
}
