// Package output serializes converted sheets.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// RowWriter accepts dense rows one at a time.
type RowWriter interface {
	WriteRow(row []string) error
	Flush() error
}

// SeparatorWriter is implemented by writers that can put a raw line between
// sheets.
type SeparatorWriter interface {
	WriteSeparator(line string) error
}

// CSVOptions configures a CSVWriter.
type CSVOptions struct {
	// Delimiter is the field separator (default ',').
	Delimiter rune
	// UseCRLF ends lines with \r\n instead of \n.
	UseCRLF bool
	// Encoding names the output character set (default UTF-8), e.g.
	// "windows-1252" or "shift_jis".
	Encoding string
}

// CSVWriter writes rows with encoding/csv quoting rules.
type CSVWriter struct {
	csv     *csv.Writer
	out     io.Writer
	encoder io.Closer
	eol     string
}

// NewCSVWriter wraps w. Text is written as UTF-8 unless opts.Encoding names
// another character set, in which case runes it cannot represent are replaced.
func NewCSVWriter(w io.Writer, opts CSVOptions) (*CSVWriter, error) {
	cw := &CSVWriter{eol: "\n"}
	if opts.UseCRLF {
		cw.eol = "\r\n"
	}

	if !isUTF8(opts.Encoding) {
		enc, err := htmlindex.Get(opts.Encoding)
		if err != nil {
			return nil, fmt.Errorf("unsupported output encoding %q: %w", opts.Encoding, err)
		}
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
		cw.encoder = tw
		w = tw
	}

	cw.out = w
	cw.csv = csv.NewWriter(w)
	if opts.Delimiter != 0 {
		cw.csv.Comma = opts.Delimiter
	}
	cw.csv.UseCRLF = opts.UseCRLF
	return cw, nil
}

// WriteRow writes one record.
func (cw *CSVWriter) WriteRow(row []string) error {
	return cw.csv.Write(row)
}

// WriteSeparator flushes pending rows and writes line verbatim.
func (cw *CSVWriter) WriteSeparator(line string) error {
	if err := cw.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(cw.out, line+cw.eol)
	return err
}

// Flush writes buffered rows to the underlying writer.
func (cw *CSVWriter) Flush() error {
	cw.csv.Flush()
	return cw.csv.Error()
}

// Close flushes and finishes the character set encoder. It does not close
// the underlying writer.
func (cw *CSVWriter) Close() error {
	if err := cw.Flush(); err != nil {
		return err
	}
	if cw.encoder != nil {
		return cw.encoder.Close()
	}
	return nil
}

func isUTF8(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// ParseDelimiter accepts a literal character, "tab", or a hex escape such
// as "x09".
func ParseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "":
		return ',', nil
	case "tab", `\t`:
		return '\t', nil
	}
	if strings.HasPrefix(value, "x") && len(value) == 3 {
		decoded, err := strconv.ParseUint(value[1:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid delimiter %q: %w", value, err)
		}
		return rune(decoded), nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, fmt.Errorf("delimiter %q must be a single character", value)
	}
	return r, nil
}
