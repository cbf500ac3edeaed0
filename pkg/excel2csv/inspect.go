package excel2csv

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/excel2csv-go/pkg/excel2csv/parser"
)

// Format is a spreadsheet container format.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
)

var (
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature = []byte("PK\x03\x04")
)

// InspectFormat sniffs the file signature, falling back to the file
// extension when the signature is inconclusive. A zip archive without a
// workbook part is still reported as xlsx when named like one, so that the
// missing part surfaces as a container error.
func InspectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	peek := make([]byte, len(oleSignature))
	n, err := io.ReadFull(f, peek)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return FormatUnknown, err
	}
	peek = peek[:n]

	switch {
	case bytes.HasPrefix(peek, oleSignature):
		return FormatXLS, nil
	case bytes.HasPrefix(peek, zipSignature):
		if hasWorkbookPart(path) {
			return FormatXLSX, nil
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".xls":
		return FormatXLS, nil
	}
	return FormatUnknown, nil
}

func hasWorkbookPart(path string) bool {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	defer zr.Close()
	return parser.NewZipContainer(&zr.Reader).Has(parser.WorkbookPart)
}
