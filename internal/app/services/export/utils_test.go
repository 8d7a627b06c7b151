package export

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUint64(t *testing.T) {
	tests := []struct {
		name string
		val  interface{}
		want uint64
	}{
		{"json number", json.Number("890489483418274098"), 890489483418274098},
		{"float", float64(42), 42},
		{"int64", int64(7), 7},
		{"string", "15", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUint64(tt.val)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ToUint64(nil)
	assert.Error(t, err)
	_, err = ToUint64([]string{"1"})
	assert.Error(t, err)
	_, err = ToUint64(json.Number("-1"))
	assert.Error(t, err)
}
