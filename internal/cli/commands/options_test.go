package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *int
		wantErr bool
	}{
		{name: "absent", text: "", want: nil},
		{name: "zero", text: "0", want: intPtr(0)},
		{name: "positive", text: "10000", want: intPtr(10000)},
		{name: "padded", text: " 42 ", want: intPtr(42)},
		{name: "negative", text: "-5", want: intPtr(-5)},
		{name: "word", text: "lots", wantErr: true},
		{name: "float", text: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.text, "num-chars")
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "num-chars", verr.Field)
				assert.Equal(t, tt.text, verr.Value)
				assert.ErrorIs(t, err, ErrNotInteger)
				assert.Contains(t, err.Error(), "num-chars")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func intPtr(n int) *int { return &n }
