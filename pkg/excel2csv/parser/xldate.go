package parser

import (
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// epoch1900 is one day before the nominal 1900-01-01 epoch, which absorbs
	// the phantom 1900-02-29 of the 1900 date system.
	epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
)

const (
	secondsPerDay = 24 * 60 * 60
	microsPerDay  = secondsPerDay * 1000000
	// maxSerial comfortably exceeds year 9999 in both date systems.
	maxSerial = 3000000
)

// SerialToTime converts a serial day count to a calendar time, rounded to the
// microsecond.
func SerialToTime(v float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, &ValueConversionError{Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "not a finite number"}
	}
	if math.Abs(v) > maxSerial {
		return time.Time{}, &ValueConversionError{Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "serial out of range"}
	}

	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}

	micros := int64(math.Round(v * microsPerDay))
	days := micros / microsPerDay
	rem := micros % microsPerDay
	if rem < 0 {
		rem += microsPerDay
		days--
	}
	t := epoch.AddDate(0, 0, int(days)).Add(time.Duration(rem) * time.Microsecond)
	if t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, &ValueConversionError{Value: strconv.FormatFloat(v, 'g', -1, 64), Reason: "year out of range"}
	}
	return t, nil
}

// TimeToSerial converts a calendar time to a serial day count. The time is
// read in its own zone's wall clock.
func TimeToSerial(t time.Time, date1904 bool) float64 {
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	micros := wall.Unix()*1000000 + int64(wall.Nanosecond()/1000) - epoch.Unix()*1000000
	return float64(micros) / microsPerDay
}

// dateToken is one unit of a translated pattern: either a Go time layout
// fragment or literal text.
type dateToken struct {
	layout  string
	literal string
}

// TranslatePattern turns a normalized number format pattern into rendering
// tokens. Longer tokens win over shorter ones at every position, so hh:mm is
// never split into an hour followed by a month.
func TranslatePattern(pattern string) []dateToken {
	hourLayout := "15"
	if strings.Contains(pattern, "am/pm") {
		hourLayout = "03"
	}

	var tokens []dateToken
	lastWasHour := false
	literal := func(s string) {
		if n := len(tokens); n > 0 && tokens[n-1].layout == "" {
			tokens[n-1].literal += s
			return
		}
		tokens = append(tokens, dateToken{literal: s})
	}

	for i := 0; i < len(pattern); {
		if strings.HasPrefix(pattern[i:], "am/pm") {
			tokens = append(tokens, dateToken{layout: "PM"})
			lastWasHour = false
			i += len("am/pm")
			continue
		}

		c := pattern[i]
		n := runLength(pattern, i)
		switch c {
		case 'y':
			if n >= 3 {
				tokens = append(tokens, dateToken{layout: "2006"})
			} else {
				tokens = append(tokens, dateToken{layout: "06"})
			}
			lastWasHour = false
		case 'h':
			tokens = append(tokens, dateToken{layout: hourLayout})
			lastWasHour = true
			i += n
			continue
		case 'm':
			switch {
			case n >= 4:
				tokens = append(tokens, dateToken{layout: "January"})
			case n == 3:
				tokens = append(tokens, dateToken{layout: "Jan"})
			case lastWasHour || (i > 0 && pattern[i-1] == ':') || followedBySeconds(pattern, i+n):
				tokens = append(tokens, dateToken{layout: "04"})
			default:
				tokens = append(tokens, dateToken{layout: "01"})
			}
			lastWasHour = false
		case 'd':
			switch {
			case n >= 4:
				tokens = append(tokens, dateToken{layout: "Monday"})
			case n == 3:
				tokens = append(tokens, dateToken{layout: "Mon"})
			case n == 2:
				tokens = append(tokens, dateToken{layout: "02"})
			default:
				tokens = append(tokens, dateToken{layout: "_2"})
			}
			lastWasHour = false
		case 's':
			tokens = append(tokens, dateToken{layout: "05"})
			lastWasHour = false
		case '"':
			end := strings.IndexByte(pattern[i+1:], '"')
			if end < 0 {
				literal(pattern[i+1:])
				i = len(pattern)
				continue
			}
			literal(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		case '[':
			end := strings.IndexByte(pattern[i:], ']')
			if end < 0 {
				i = len(pattern)
				continue
			}
			i += end + 1
			continue
		default:
			literal(pattern[i : i+1])
			// separators keep the hour context alive for h:mm
			if c != ':' && c != ' ' {
				lastWasHour = false
			}
			i++
			continue
		}
		i += n
	}
	return tokens
}

func runLength(s string, i int) int {
	n := 1
	for i+n < len(s) && s[i+n] == s[i] {
		n++
	}
	return n
}

func followedBySeconds(s string, i int) bool {
	if i < len(s) && s[i] == ':' {
		i++
	}
	return i < len(s) && s[i] == 's'
}

// RenderTokens formats t with translated pattern tokens.
func RenderTokens(t time.Time, tokens []dateToken) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.layout == "" {
			b.WriteString(tok.literal)
			continue
		}
		b.WriteString(t.Format(tok.layout))
	}
	return strings.TrimSpace(b.String())
}

// Strftime renders t with a strftime-style format such as %Y-%m-%d.
func Strftime(t time.Time, format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case '%':
			b.WriteByte('%')
		case 'Y':
			b.WriteString(t.Format("2006"))
		case 'y':
			b.WriteString(t.Format("06"))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'e':
			b.WriteString(t.Format("_2"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'I':
			b.WriteString(t.Format("03"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'S':
			b.WriteString(t.Format("05"))
		case 'p':
			b.WriteString(t.Format("PM"))
		case 'b':
			b.WriteString(t.Format("Jan"))
		case 'B':
			b.WriteString(t.Format("January"))
		case 'a':
			b.WriteString(t.Format("Mon"))
		case 'A':
			b.WriteString(t.Format("Monday"))
		default:
			b.WriteByte('%')
			b.WriteByte(format[i])
		}
	}
	return b.String()
}

// FormatSerial renders a raw numeric value according to its format kind.
// Date values use the pattern (or override, when set); time values become
// seconds into the day. Other kinds return raw unchanged.
func FormatSerial(raw, pattern string, kind FormatKind, date1904 bool, override string) (string, error) {
	switch kind {
	case FormatDate:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return raw, &ValueConversionError{Value: raw, Reason: "not a number"}
		}
		t, err := SerialToTime(v, date1904)
		if err != nil {
			return raw, err
		}
		if override != "" {
			return Strftime(t, override), nil
		}
		return RenderTokens(t, TranslatePattern(pattern)), nil
	case FormatTime:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return raw, &ValueConversionError{Value: raw, Reason: "not a finite number"}
		}
		return strconv.FormatFloat(v*secondsPerDay, 'f', -1, 64), nil
	default:
		return raw, nil
	}
}
