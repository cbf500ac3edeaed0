package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
)

func TestSheetsToJSON(t *testing.T) {
	sheets := []models.SheetDescriptor{
		{Name: "Sheet1", ID: 1, RelID: "rId1", Part: "xl/worksheets/sheet1.xml"},
		{Name: "売上", ID: 2},
	}

	data, err := SheetsToJSON(sheets, false)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Sheet1","id":1},{"name":"売上","id":2}]`, string(data))

	pretty, err := SheetsToJSON(sheets, true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  {")

	empty, err := SheetsToJSON(nil, false)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
