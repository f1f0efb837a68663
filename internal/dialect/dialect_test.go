package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_String(t *testing.T) {
	tests := []struct {
		d    Dialect
		want string
	}{
		{Dialect{Delimiter: ",", QuoteChar: `"`}, `SimpleDialect(',', '"', '')`},
		{Dialect{Delimiter: "\t", QuoteChar: "'", EscapeChar: `\`}, `SimpleDialect('\t', "'", '\\')`},
		{Dialect{}, `SimpleDialect('', '', '')`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.d.String())
	}
}

func TestDialect_Validate(t *testing.T) {
	assert.NoError(t, Dialect{Delimiter: ";", QuoteChar: `"`}.Validate())
	assert.NoError(t, Dialect{Delimiter: "§"}.Validate())
	assert.Error(t, Dialect{Delimiter: ";;"}.Validate())
	assert.Error(t, Dialect{Delimiter: ",", EscapeChar: "ab"}.Validate())
}

func TestDialect_HasEscape(t *testing.T) {
	assert.False(t, Dialect{Delimiter: ","}.HasEscape())
	assert.True(t, Dialect{Delimiter: ",", EscapeChar: `\`}.HasEscape())
}
