package parser

import "github.com/xuri/excelize/v2"

// maxColumnLetters is the length of the last column name, XFD.
const maxColumnLetters = 3

// ColumnIndex converts a column letter run to a zero-based index:
// A is 0, Z is 25, AA is 26. Letters past XFD are an error.
func ColumnIndex(letters string) (int, error) {
	if len(letters) > maxColumnLetters {
		return 0, excelize.ErrColumnNumber
	}
	n, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ColumnLetters is the inverse of ColumnIndex.
func ColumnLetters(index int) string {
	var buf [8]byte
	i := len(buf)
	for n := index + 1; n > 0; n = (n - 1) / 26 {
		i--
		buf[i] = byte('A' + (n-1)%26)
	}
	return string(buf[i:])
}
