package excel2csv

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/models"
	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/output"
)

const minimalWorkbook = `<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Only" sheetId="1" r:id="rId1"/>
  </sheets>
  <definedNames>
    <definedName name="_xlnm.Print_Area" localSheetId="0">Only!$B$1:$C$2</definedName>
  </definedNames>
</workbook>`

const minimalSheet = `<worksheet><sheetData>
  <row r="1"><c r="A1"><v>1</v></c><c r="B1"><v>2</v></c><c r="C1" t="inlineStr"><is><t>three</t></is></c></row>
  <row r="2"/>
  <row r="3"><c r="A3"><v>4.5</v></c></row>
</sheetData></worksheet>`

// writeZip stores XML parts as a zip file in a temp dir.
func writeZip(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for part, body := range parts {
		w, err := zw.Create(part)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// writeWorkbook builds a two-sheet workbook with excelize.
func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Sheet1", "A1", "item"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "due"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "done"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "invoice, March"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 45292))
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", dateStyle))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", true))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", 3.25))

	_, err = f.NewSheet("Data")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Data", "B1", "x"))

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func convertToString(t *testing.T, path string, opts Options) (string, []SheetResult, error) {
	t.Helper()
	var buf bytes.Buffer
	cw, err := output.NewCSVWriter(&buf, output.CSVOptions{})
	require.NoError(t, err)

	results, err := Convert(path, cw, opts)
	if err == nil {
		require.NoError(t, cw.Close())
	}
	return buf.String(), results, err
}

func quietOptions() Options {
	opts := DefaultOptions()
	logger, _ := test.NewNullLogger()
	opts.Logger = logger
	return opts
}

func TestConvertAllSheets(t *testing.T) {
	path := writeWorkbook(t)
	opts := quietOptions()
	opts.SheetDelimiter = "--------"

	got, results, err := convertToString(t, path, opts)
	require.NoError(t, err)

	assert.Equal(t, "item,due,done\n\"invoice, March\",2024-01-01,TRUE\n3.25\n--------\n,x\n", got)
	require.Len(t, results, 2)
	assert.Equal(t, "Sheet1", results[0].Sheet.Name)
	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, "Data", results[1].Sheet.Name)
	assert.Equal(t, 1, results[1].Rows)
}

func TestConvertSelection(t *testing.T) {
	path := writeWorkbook(t)

	opts := quietOptions()
	opts.Selection = Selection{Name: "Data"}
	got, _, err := convertToString(t, path, opts)
	require.NoError(t, err)
	assert.Equal(t, ",x\n", got)

	opts.Selection = Selection{ID: 1}
	got, _, err = convertToString(t, path, opts)
	require.NoError(t, err)
	assert.Contains(t, got, "item,due,done\n")
	assert.NotContains(t, got, ",x\n")
}

func TestConvertSheetNotFound(t *testing.T) {
	path := writeWorkbook(t)
	opts := quietOptions()
	opts.Selection = Selection{Name: "Missing"}

	_, _, err := convertToString(t, path, opts)
	require.Error(t, err)

	var snf *SheetNotFoundError
	require.True(t, errors.As(err, &snf))
	assert.Equal(t, `"Missing"`, snf.Selector)

	opts.Selection = Selection{ID: 99}
	_, _, err = convertToString(t, path, opts)
	require.True(t, errors.As(err, &snf))
	assert.Equal(t, "#99", snf.Selector)
}

func TestConvertKeepEmptyRows(t *testing.T) {
	path := writeZip(t, "min.xlsx", map[string]string{
		"xl/workbook.xml":          minimalWorkbook,
		"xl/worksheets/sheet1.xml": minimalSheet,
	})
	opts := quietOptions()
	keep := false
	opts.SkipEmptyRows = &keep

	got, results, err := convertToString(t, path, opts)
	require.NoError(t, err)
	assert.Equal(t, "1,2,three\n\n4.5\n", got)
	assert.Equal(t, 3, results[0].Rows)
}

func TestConvertWithoutStylesOrSharedStrings(t *testing.T) {
	path := writeZip(t, "min.xlsx", map[string]string{
		"xl/workbook.xml":          minimalWorkbook,
		"xl/worksheets/sheet1.xml": `<worksheet><sheetData><row r="1"><c r="A1" s="3"><v>45292</v></c><c r="B1" t="s"><v>0</v></c></row></sheetData></worksheet>`,
	})

	got, _, err := convertToString(t, path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, "45292,0\n", got)
}

func TestConvertPrintAreaAndRange(t *testing.T) {
	path := writeZip(t, "min.xlsx", map[string]string{
		"xl/workbook.xml":          minimalWorkbook,
		"xl/worksheets/sheet1.xml": minimalSheet,
	})

	opts := quietOptions()
	opts.UsePrintArea = true
	got, _, err := convertToString(t, path, opts)
	require.NoError(t, err)
	assert.Equal(t, "2,three\n", got)

	opts.Range = "A3:A3"
	got, _, err = convertToString(t, path, opts)
	require.NoError(t, err)
	assert.Equal(t, "4.5\n", got)

	opts.Range = "bogus"
	_, _, err = convertToString(t, path, opts)
	var se *SheetError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Only", se.SheetName)
}

func TestConvertMissingWorksheetPart(t *testing.T) {
	path := writeZip(t, "min.xlsx", map[string]string{
		"xl/workbook.xml": minimalWorkbook,
	})

	_, _, err := convertToString(t, path, quietOptions())
	require.Error(t, err)

	var ce *ContainerError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "xl/worksheets/sheet1.xml", ce.Part)
}

func TestConvertMissingWorkbookPart(t *testing.T) {
	path := writeZip(t, "broken.xlsx", map[string]string{
		"xl/worksheets/sheet1.xml": minimalSheet,
	})

	_, _, err := convertToString(t, path, quietOptions())
	var ce *ContainerError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "xl/workbook.xml", ce.Part)
}

func TestConvertMalformedWorkbook(t *testing.T) {
	path := writeZip(t, "bad.xlsx", map[string]string{
		"xl/workbook.xml": `<workbook><sheets><sheet name="x"`,
	})

	_, _, err := convertToString(t, path, quietOptions())
	var mde *MalformedDocumentError
	require.True(t, errors.As(err, &mde))
}

func TestConvertNoSheets(t *testing.T) {
	path := writeZip(t, "empty.xlsx", map[string]string{
		"xl/workbook.xml": `<workbook><sheets/></workbook>`,
	})

	_, _, err := convertToString(t, path, quietOptions())
	assert.ErrorIs(t, err, ErrNoSheets)
}

func TestConvertFileErrors(t *testing.T) {
	_, _, err := convertToString(t, filepath.Join(t.TempDir(), "nope.xlsx"), quietOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("just text"), 0644))
	_, _, err = convertToString(t, path, quietOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestListSheets(t *testing.T) {
	sheets, err := ListSheets(writeWorkbook(t), quietOptions())
	require.NoError(t, err)

	require.Len(t, sheets, 2)
	assert.Equal(t, "Sheet1", sheets[0].Name)
	assert.Equal(t, 1, sheets[0].ID)
	assert.Equal(t, "Data", sheets[1].Name)
	assert.NotEqual(t, sheets[0].ID, sheets[1].ID)
}

func TestConvertEach(t *testing.T) {
	path := writeWorkbook(t)
	outputs := make(map[string]*bytes.Buffer)

	results, err := ConvertEach(path, quietOptions(), func(sheet models.SheetDescriptor) (output.RowWriter, func() error, error) {
		buf := &bytes.Buffer{}
		outputs[sheet.Name] = buf
		cw, err := output.NewCSVWriter(buf, output.CSVOptions{})
		if err != nil {
			return nil, nil, err
		}
		return cw, cw.Close, nil
	})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, ",x\n", outputs["Data"].String())
	assert.Contains(t, outputs["Sheet1"].String(), "2024-01-01,TRUE")
}

const legacyWorkbook = "legacy/testdata/people.xls"

func TestConvertLegacyWorkbook(t *testing.T) {
	sheets, err := ListSheets(legacyWorkbook, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, []models.SheetDescriptor{{Name: "People", ID: 1}, {Name: "Notes", ID: 2}}, sheets)

	opts := quietOptions()
	opts.SheetDelimiter = "--------"
	got, results, err := convertToString(t, legacyWorkbook, opts)
	require.NoError(t, err)
	assert.Equal(t, "name,born,score\nAda,1-Jan-24,12.5\nBob,1-Jan-00,7\n--------\n,memo\n", got)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Rows)
	assert.Equal(t, 1, results[1].Rows)
}

func TestConvertLegacySelection(t *testing.T) {
	opts := quietOptions()
	opts.Selection = Selection{Name: "Notes"}
	got, _, err := convertToString(t, legacyWorkbook, opts)
	require.NoError(t, err)
	assert.Equal(t, ",memo\n", got)

	opts.Selection = Selection{ID: 1}
	opts.DateFormat = "%Y/%m/%d"
	opts.Range = "B1:B4"
	got, _, err = convertToString(t, legacyWorkbook, opts)
	require.NoError(t, err)
	assert.Equal(t, "born\n2024/01/01\n2000/01/01\n", got)

	opts.Selection = Selection{ID: 3}
	_, _, err = convertToString(t, legacyWorkbook, opts)
	var snf *SheetNotFoundError
	require.True(t, errors.As(err, &snf))
	assert.Equal(t, "#3", snf.Selector)
}
