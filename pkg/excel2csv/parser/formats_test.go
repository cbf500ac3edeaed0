package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFormat(t *testing.T) {
	tests := []struct {
		pattern  string
		expected FormatKind
	}{
		{"general", FormatFloat},
		{"0.00", FormatFloat},
		{"0%", FormatPercentage},
		{"mm-dd-yy", FormatDate},
		{"yyyy-mm-dd", FormatDate},
		{"h:mm am/pm", FormatDate},
		{"h:mm:ss", FormatTime},
		{"[h]:mm:ss", FormatTime},
		{"mmss.0", FormatTime},
		{"@", FormatFloat},
		{"0.000", FormatUnknown},
		{"yyyy/mm/dd", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyFormat(tt.pattern))
		})
	}
}

func TestNormalizeFormat(t *testing.T) {
	assert.Equal(t, "yyyy-mm-dd", NormalizeFormat(`YYYY\-MM\-DD`))
	assert.Equal(t, "dd/mm/yy hh:mm", NormalizeFormat(`dd\/mm\/yy\ hh:mm`))
	assert.Equal(t, FormatDate, ClassifyFormat(NormalizeFormat(`yyyy\-mm\-dd`)))
}

func TestFormatPattern(t *testing.T) {
	custom := map[int]string{
		14:  "yyyy-mm-dd",
		164: "dd/mm/yyyy",
	}

	p, ok := FormatPattern(custom, 14)
	assert.True(t, ok)
	assert.Equal(t, "yyyy-mm-dd", p, "workbook definitions win over built-ins")

	p, ok = FormatPattern(custom, 164)
	assert.True(t, ok)
	assert.Equal(t, "dd/mm/yyyy", p)

	p, ok = FormatPattern(nil, 22)
	assert.True(t, ok)
	assert.Equal(t, "m/d/yy h:mm", p)

	_, ok = FormatPattern(nil, 165)
	assert.False(t, ok)
}

func TestBuiltinFormatsAreClassified(t *testing.T) {
	for id, pattern := range BuiltinFormats {
		if id == 12 || id == 13 {
			// fractions have no kind
			continue
		}
		assert.NotEqual(t, FormatUnknown, ClassifyFormat(pattern), "numFmtId %d (%s)", id, pattern)
	}
}
