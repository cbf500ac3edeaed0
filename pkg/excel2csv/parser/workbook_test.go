package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWorkbookXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"
  xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <fileVersion appName="xl" lastEdited="7"/>
  <workbookPr date1904="1"/>
  <sheets>
    <sheet name="Summary" sheetId="5" r:id="rId1"/>
    <sheet name="Data &amp; Notes" sheetId="2" r:id="rId2"/>
  </sheets>
  <definedNames>
    <definedName name="_xlnm.Print_Area" localSheetId="0">Summary!$A$1:$C$10</definedName>
    <definedName name="Total">'Data &amp; Notes'!$B$2</definedName>
  </definedNames>
</workbook>`

func TestParseWorkbook(t *testing.T) {
	info, err := ParseWorkbook(strings.NewReader(testWorkbookXML))
	require.NoError(t, err)

	assert.Equal(t, "xl", info.AppName)
	assert.True(t, info.Date1904)
	require.Len(t, info.Sheets, 2)

	assert.Equal(t, "Summary", info.Sheets[0].Name)
	assert.Equal(t, 1, info.Sheets[0].ID, "Excel workbooks number sheets by relationship")
	assert.Equal(t, "rId1", info.Sheets[0].RelID)
	assert.Equal(t, "xl/worksheets/sheet1.xml", info.Sheets[0].Part)
	assert.Equal(t, "Data & Notes", info.Sheets[1].Name)
	assert.Equal(t, 2, info.Sheets[1].ID)

	require.Len(t, info.DefinedNames, 2)
	assert.Equal(t, "_xlnm.Print_Area", info.DefinedNames[0].Name)
	assert.Equal(t, 0, info.DefinedNames[0].LocalSheetID)
	assert.Equal(t, "Summary!$A$1:$C$10", info.DefinedNames[0].RefersTo)
	assert.Equal(t, -1, info.DefinedNames[1].LocalSheetID)
}

func TestParseWorkbookDefaults(t *testing.T) {
	xml := `<workbook><workbookPr date1904="false"/><sheets>
		<sheet name="A" sheetId="3" r:id="rId7" xmlns:r="r"/>
	</sheets></workbook>`

	info, err := ParseWorkbook(strings.NewReader(xml))
	require.NoError(t, err)

	assert.Equal(t, "unknown", info.AppName)
	assert.False(t, info.Date1904)
	require.Len(t, info.Sheets, 1)
	assert.Equal(t, 3, info.Sheets[0].ID, "other producers are trusted on sheetId")
}

func TestPickSheetID(t *testing.T) {
	tests := []struct {
		name    string
		appName string
		relID   string
		sheetID string
		want    int
		wantErr bool
	}{
		{"excel prefers rel", "xl", "rId4", "9", 4, false},
		{"excel falls back", "xl", "", "9", 9, false},
		{"other prefers sheetId", "LibreOffice", "rId4", "9", 9, false},
		{"other falls back", "unknown", "rId4", "", 4, false},
		{"nothing usable", "xl", "rel", "x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickSheetID(tt.appName, tt.relID, tt.sheetID)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWorkbookMalformed(t *testing.T) {
	_, err := ParseWorkbook(strings.NewReader(`<workbook><sheets><sheet name="A"`))
	require.Error(t, err)

	var mde *MalformedDocumentError
	require.True(t, errors.As(err, &mde))
	assert.Equal(t, WorkbookPart, mde.Part)
}

func TestParseWorkbookRels(t *testing.T) {
	xml := `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/data.xml"/>
  <Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="/xl/worksheets/other.xml"/>
  <Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

	rels, err := ParseWorkbookRels(strings.NewReader(xml))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"rId1": "xl/worksheets/data.xml",
		"rId2": "xl/worksheets/other.xml",
	}, rels)

	info, err := ParseWorkbook(strings.NewReader(testWorkbookXML))
	require.NoError(t, err)
	ResolveSheetParts(info, map[string]string{"rId2": "xl/worksheets/data.xml"})
	assert.Equal(t, "xl/worksheets/sheet1.xml", info.Sheets[0].Part)
	assert.Equal(t, "xl/worksheets/data.xml", info.Sheets[1].Part)
}
