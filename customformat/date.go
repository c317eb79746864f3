package customformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateFieldRenderers mirrors DATETIME_FIELD_MAP. RenderDate accumulates a
// maximal run of letters (of any kind) and looks the whole run up here as
// one field code, so the map only needs to be keyed by the final field
// code string; two codes written with no separator between them (e.g.
// "yyyyMM") form one unknown run.
var dateFieldRenderers = map[string]func(t time.Time) string{
	"a":     func(t time.Time) string { return strings.ToLower(t.Format("PM")) },
	"EEEE":  func(t time.Time) string { return t.Format("Monday") },
	"EEE":   func(t time.Time) string { return t.Format("Mon") },
	"yyyy":  func(t time.Time) string { return t.Format("2006") },
	"yy":    func(t time.Time) string { return t.Format("06") },
	"y":     func(t time.Time) string { return strconv.Itoa(t.Year()) },
	"MMMM":  func(t time.Time) string { return t.Format("January") },
	"MMM":   func(t time.Time) string { return t.Format("Jan") },
	"MM":    func(t time.Time) string { return t.Format("01") },
	"M":     func(t time.Time) string { return strconv.Itoa(int(t.Month())) },
	"d":     func(t time.Time) string { return strconv.Itoa(t.Day()) },
	"dd":    func(t time.Time) string { return t.Format("02") },
	"DDD":   func(t time.Time) string { return zfill(t.YearDay(), 3) },
	"DD":    func(t time.Time) string { return zfill(t.YearDay(), 2) },
	"D":     func(t time.Time) string { return zfill(t.YearDay(), 1) },
	"HH":    func(t time.Time) string { return t.Format("15") },
	"H":     func(t time.Time) string { return strconv.Itoa(t.Hour()) },
	"hh":    func(t time.Time) string { return t.Format("03") },
	"h":     func(t time.Time) string { return strconv.Itoa(hour12(t)) },
	"k":     func(t time.Time) string { return strconv.Itoa(hour24Shifted(t)) },
	"kk":    func(t time.Time) string { return zfill(hour24Shifted(t), 2) },
	"K":     func(t time.Time) string { return strconv.Itoa(t.Hour() % 12) },
	"KK":    func(t time.Time) string { return zfill(t.Hour()%12, 2) },
	"mm":    func(t time.Time) string { return zfill(t.Minute(), 2) },
	"m":     func(t time.Time) string { return strconv.Itoa(t.Minute()) },
	"ss":    func(t time.Time) string { return t.Format("05") },
	"s":     func(t time.Time) string { return strconv.Itoa(t.Second()) },
	"W":     func(t time.Time) string { return strconv.Itoa(weekOfMonth(t) - 1) },
	"ww":    func(t time.Time) string { _, w := t.ISOWeek(); return zfill(w, 2) },
	"G":     func(t time.Time) string { return "AD" },
	"F":     func(t time.Time) string { return strconv.Itoa(occurrenceOfWeekdayInMonth(t)) },
	"S":     func(t time.Time) string { return microsZfill(t)[0:1] },
	"SS":    func(t time.Time) string { return microsZfill(t)[0:2] },
	"SSS":   func(t time.Time) string { return microsZfill(t)[0:3] },
	"SSSS":  func(t time.Time) string { return microsZfill(t)[0:4] },
	"SSSSS": func(t time.Time) string { return microsZfill(t)[0:5] },
}

func zfill(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

func microsZfill(t time.Time) string {
	return zfill(t.Nanosecond()/1000, 6)
}

func hour12(t time.Time) int {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	return h
}

func hour24Shifted(t time.Time) int {
	if t.Hour() == 0 {
		return 24
	}
	return t.Hour()
}

func weekOfMonth(t time.Time) int {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	days := int(t.Sub(firstOfMonth).Hours() / 24)
	return days/7 + 1
}

func occurrenceOfWeekdayInMonth(t time.Time) int {
	return weekOfMonth(t)
}

// RenderDate parses a Numbers custom date format string against t and
// returns the formatted text. t must already be expressed against the
// 2001-01-01 UTC epoch arithmetic the caller used to reconstruct it, so
// this function never consults the host time zone (testable property #7).
func RenderDate(spec string, t time.Time) string {
	chars := []rune(spec)
	var result strings.Builder

	var field strings.Builder
	inString := false
	inField := false

	flushField := func() {
		if inField {
			result.WriteString(renderDateField(field.String(), t))
			field.Reset()
			inField = false
		}
	}

	for i := 0; i < len(chars); i++ {
		c := chars[i]
		var next rune = 0
		hasNext := i < len(chars)-1
		if hasNext {
			next = chars[i+1]
		}

		switch {
		case c == '\'':
			if !hasNext {
				i = len(chars)
				continue
			}
			if next == '\'' {
				if !inString {
					flushField()
				}
				result.WriteRune('\'')
				i++
			} else if inString {
				inString = false
			} else {
				flushField()
				inString = true
			}
		case inString:
			result.WriteRune(c)
		case !isLetter(c):
			flushField()
			result.WriteRune(c)
		case inField:
			field.WriteRune(c)
		default:
			inField = true
			field.WriteRune(c)
		}
	}

	flushField()

	return result.String()
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func renderDateField(field string, t time.Time) string {
	if fn, ok := dateFieldRenderers[field]; ok {
		return fn(t)
	}

	return fmt.Sprintf("?%s?", field)
}
