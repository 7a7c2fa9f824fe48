package sessionid

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		require.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, Generate())
		time.Sleep(time.Millisecond)
	}
	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "ids not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestGenerateFrom(t *testing.T) {
	id, err := GenerateFrom(bytes.NewReader(bytes.Repeat([]byte{0xab}, 64)))
	require.NoError(t, err)
	assert.NoError(t, Validate(id))

	_, err = GenerateFrom(bytes.NewReader(nil))
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	assert.Equal(t, strings.Repeat("0", Length), Encode(uuid.UUID{}))

	var max uuid.UUID
	for i := range max {
		max[i] = 0xff
	}
	assert.Equal(t, "7"+strings.Repeat("z", Length-1), Encode(max))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abcu", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
