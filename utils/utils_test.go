package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []uint
		wantErr bool
	}{
		{"single", "4", []uint{4}, false},
		{"several", "1,2,3", []uint{1, 2, 3}, false},
		{"spaces and blanks", " 5, ,6,", []uint{5, 6}, false},
		{"empty", "", nil, false},
		{"letters", "1,abc", nil, true},
		{"negative", "-1", nil, true},
		{"zero", "0", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIDList(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	_, err = ParseID("twelve")
	assert.Error(t, err)
	_, err = ParseID("0")
	assert.Error(t, err)
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, UniqueIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, UniqueIDs(nil))
}

func TestIDGenerators(t *testing.T) {
	_, err := uuid.Parse(NewUUID())
	assert.NoError(t, err)
	assert.NotEqual(t, NewUUID(), NewUUID())

	gen := StaticID("fixed")
	assert.Equal(t, "fixed", gen())
}
