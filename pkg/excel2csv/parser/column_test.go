package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		letters  string
		expected int
	}{
		{"A", 0},
		{"Z", 25},
		{"AA", 26},
		{"az", 51},
		{"XFD", 16383},
	}

	for _, tt := range tests {
		t.Run(tt.letters, func(t *testing.T) {
			got, err := ColumnIndex(tt.letters)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestColumnIndexOutOfRange(t *testing.T) {
	for _, letters := range []string{"", "XFE", "ZZZ", "AAAA", "ZZZZZZZZZZZZZZ", "AAAAAAAAAAAAAAA", "A1"} {
		_, err := ColumnIndex(letters)
		assert.Error(t, err, letters)
	}
}

func TestColumnLettersInverse(t *testing.T) {
	// every column a worksheet can address
	for i := 0; i < excelize.MaxColumns; i++ {
		letters := ColumnLetters(i)
		want, err := excelize.ColumnNumberToName(i + 1)
		require.NoError(t, err)
		require.Equal(t, want, letters)
		got, err := ColumnIndex(letters)
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
}
