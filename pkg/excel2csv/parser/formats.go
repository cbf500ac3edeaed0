package parser

import "strings"

// FormatKind is the value semantics implied by a number format pattern.
type FormatKind int

const (
	FormatUnknown FormatKind = iota
	FormatFloat
	FormatPercentage
	FormatDate
	FormatTime
)

func (k FormatKind) String() string {
	switch k {
	case FormatFloat:
		return "float"
	case FormatPercentage:
		return "percentage"
	case FormatDate:
		return "date"
	case FormatTime:
		return "time"
	default:
		return "unknown"
	}
}

// BuiltinFormats maps the implicit numFmtId values to their patterns.
// Ids at or above CustomFormatStart are defined by the workbook itself.
var BuiltinFormats = map[int]string{
	0:  "general",
	1:  "0",
	2:  "0.00",
	3:  "#,##0",
	4:  "#,##0.00",
	9:  "0%",
	10: "0.00%",
	11: "0.00e+00",
	12: "# ?/?",
	13: "# ??/??",
	14: "mm-dd-yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	18: "h:mm am/pm",
	19: "h:mm:ss am/pm",
	20: "h:mm",
	21: "h:mm:ss",
	22: "m/d/yy h:mm",
	37: "#,##0 ;(#,##0)",
	38: "#,##0 ;[red](#,##0)",
	39: "#,##0.00;(#,##0.00)",
	40: "#,##0.00;[red](#,##0.00)",
	45: "mm:ss",
	46: "[h]:mm:ss",
	47: "mmss.0",
	48: "##0.0e+0",
	49: "@",
}

// CustomFormatStart is the first numFmtId reserved for workbook-defined formats.
const CustomFormatStart = 164

// knownFormats classifies normalized patterns. Keys are stored the way
// NormalizeFormat leaves them.
var knownFormats = map[string]FormatKind{
	"general":                  FormatFloat,
	"0":                        FormatFloat,
	"0.00":                     FormatFloat,
	"#,##0":                    FormatFloat,
	"#,##0.00":                 FormatFloat,
	"0%":                       FormatPercentage,
	"0.00%":                    FormatPercentage,
	"0.00e+00":                 FormatFloat,
	"mm-dd-yy":                 FormatDate,
	"d-mmm-yy":                 FormatDate,
	"d-mmm":                    FormatDate,
	"mmm-yy":                   FormatDate,
	"h:mm am/pm":               FormatDate,
	"h:mm:ss am/pm":            FormatDate,
	"h:mm":                     FormatTime,
	"h:mm:ss":                  FormatTime,
	"m/d/yy h:mm":              FormatDate,
	"#,##0 ;(#,##0)":           FormatFloat,
	"#,##0 ;[red](#,##0)":      FormatFloat,
	"#,##0.00;(#,##0.00)":      FormatFloat,
	"#,##0.00;[red](#,##0.00)": FormatFloat,
	"mm:ss":                    FormatTime,
	"[h]:mm:ss":                FormatTime,
	"mmss.0":                   FormatTime,
	"##0.0e+0":                 FormatFloat,
	"@":                        FormatFloat,
	"yyyy-mm-dd":               FormatDate,
	"dd/mm/yy":                 FormatDate,
	"hh:mm:ss":                 FormatTime,
	"dd/mm/yy hh:mm":           FormatDate,
	"dd/mm/yyyy hh:mm:ss":      FormatDate,
	"yy-mm-dd":                 FormatDate,
	"d-mmm-yyyy":               FormatDate,
	"m/d/yy":                   FormatDate,
	"m/d/yyyy":                 FormatDate,
	"dd-mmm-yyyy":              FormatDate,
	"dd/mm/yyyy":               FormatDate,
	"mm/dd/yy hh:mm am/pm":     FormatDate,
	"mm/dd/yyyy hh:mm:ss":      FormatDate,
	"yyyy-mm-dd hh:mm:ss":      FormatDate,
}

// NormalizeFormat lower-cases a format code and strips backslash escapes.
func NormalizeFormat(code string) string {
	return strings.ReplaceAll(strings.ToLower(code), `\`, "")
}

// ClassifyFormat returns the kind of a normalized pattern, or FormatUnknown.
func ClassifyFormat(pattern string) FormatKind {
	return knownFormats[pattern]
}

// FormatPattern resolves a numFmtId to a pattern, preferring the workbook's own
// definitions over the built-in catalogue.
func FormatPattern(numFmts map[int]string, id int) (string, bool) {
	if p, ok := numFmts[id]; ok {
		return p, true
	}
	p, ok := BuiltinFormats[id]
	return p, ok
}
