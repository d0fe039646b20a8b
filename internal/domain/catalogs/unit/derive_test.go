package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Piece", "PIECE"},
		{"Kilogram", "KILOGRAM"},
		{"Square metre", "SQUARE_METRE"},
		{"  cubic   metre  ", "CUBIC_METRE"},
		{"Şişe (cam)", "SISE_CAM"},
		{"Kasık", "KASIK"},
		{"İğne", "IGNE"},
		{"Box-12", "BOX_12"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugCode(tt.in))
		})
	}
}

func TestSlugCode_Idempotent(t *testing.T) {
	for _, s := range []string{"Litre", "Çuval", "pack of 6"} {
		first := SlugCode(s)
		assert.Equal(t, first, SlugCode(s))
		assert.Equal(t, first, SlugCode(first))
	}
}

func TestSentinelDetector(t *testing.T) {
	isPiece := SentinelDetector(DefaultPieceSentinel)

	assert.True(t, isPiece("PIECE"))
	assert.True(t, isPiece(" piece "))
	assert.False(t, isPiece("PIECES"))
	assert.False(t, isPiece(""))

	assert.False(t, SentinelDetector("")(""))
}

func TestCELDetector(t *testing.T) {
	isPiece, err := CELDetector(`code in ["PIECE", "ADET"]`)
	require.NoError(t, err)

	assert.True(t, isPiece("ADET"))
	assert.True(t, isPiece("PIECE"))
	assert.False(t, isPiece("KG"))
}

func TestCELDetector_RejectsNonBool(t *testing.T) {
	_, err := CELDetector(`code + "X"`)
	assert.Error(t, err)

	_, err = CELDetector(`code ==`)
	assert.Error(t, err)
}
