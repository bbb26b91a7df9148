package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		region   string
		expected string
		wantErr  bool
	}{
		{"national German number", "030 12345678", "DE", "+493012345678", false},
		{"international format", "+49 89 1234567", "", "+49891234567", false},
		{"empty stays empty", "   ", "DE", "", false},
		{"garbage", "not a phone", "DE", "", true},
		{"too short", "123", "DE", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.raw, tt.region)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
