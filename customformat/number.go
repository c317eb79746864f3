package customformat

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iwahq/numbers/format"
)

// NumberFormat is the subset of a custom number/currency format record
// RenderNumber needs. Grounded on decode_number_format's use of the
// TSTArchives.CustomFormatArchive fields.
type NumberFormat struct {
	CustomFormatString      string
	ScaleFactor             float64
	CurrencyCode            string
	NumNonspaceIntegerDigits int
	NumNonspaceDecimalDigits int
	ShowThousandsSeparator  bool
}

var numberSpecPattern = regexp.MustCompile(`[#0.,]+(E[+]\d+)?`)

// RenderNumber renders value against f's template, matching
// decode_number_format's integer/decimal padding and scientific-notation
// rules.
func RenderNumber(value float64, f NumberFormat) string {
	customFormatString := f.CustomFormatString
	value *= nonZero(f.ScaleFactor, 1)

	if strings.Contains(customFormatString, "%") && f.ScaleFactor == 1.0 {
		value *= 100.0
	}

	if f.CurrencyCode != "" {
		customFormatString = strings.ReplaceAll(customFormatString, "¤", f.CurrencyCode+" ")
	}

	loc := numberSpecPattern.FindStringIndex(customFormatString)
	if loc == nil {
		return customFormatString
	}

	formatSpec := customFormatString[loc[0]:loc[1]]
	scientific := strings.Contains(formatSpec, "E+")

	var intPart, decPart string

	switch {
	case strings.HasPrefix(formatSpec, "."):
		intPart, decPart = "", formatSpec[1:]
	case strings.Contains(customFormatString, "."):
		pieces := strings.SplitN(formatSpec, ".", 2)
		intPart, decPart = pieces[0], pieces[1]
	default:
		intPart, decPart = formatSpec, ""
	}

	if scientific {
		decDigits := len(strings.TrimSuffix(decPart, extractExponentTail(decPart)))
		precision := decDigits - 4
		if precision < 0 {
			precision = 0
		}
		sci := strconv.FormatFloat(value, 'E', precision, 64)
		rendered := strings.Replace(customFormatString, formatSpec, sci, 1)
		return expandQuotes(rendered)
	}

	numDecimals := len(decPart)

	var decPad format.CellPadding = format.PaddingNone
	switch {
	case numDecimals == 0:
		decPad = format.PaddingNone
	case strings.HasPrefix(decPart, "#"):
		decPad = format.PaddingNone
	case f.NumNonspaceDecimalDigits > 0:
		decPad = format.PaddingZero
	default:
		decPad = format.PaddingSpace
	}

	integerPart, fracPart := splitFloat(value)

	var integer int
	var decimal float64

	if numDecimals > 0 {
		integer = int(integerPart)
		decimal = roundTo(parseDecimalFraction(fracPart), numDecimals)
	} else {
		integer = int(math.Round(value))
		decimal = parseDecimalFraction(fracPart)
	}

	numIntegers := len(strings.ReplaceAll(intPart, ",", ""))

	var intPad format.CellPadding
	intWidth := numIntegers

	switch {
	case numIntegers == 0:
		intPad = format.PaddingNone
	case strings.HasPrefix(intPart, "#"):
		intPad = format.PaddingNone
		intWidth = len(intPart)
	case f.NumNonspaceIntegerDigits > 0:
		intPad = format.PaddingZero
		if f.ShowThousandsSeparator {
			numCommas := 0
			if integer != 0 {
				numCommas = int(math.Floor(math.Log10(math.Abs(float64(integer))))) / 3
			}
			minCommas := (numIntegers - 1) / 3
			if minCommas > numCommas {
				numCommas = minCommas
			}
			intWidth = numIntegers + numCommas
		}
	default:
		intPad = format.PaddingSpace
		intWidth = len(intPart)
	}

	var formatted string

	switch {
	case integer == 0 && intPad == format.PaddingSpace && numDecimals == 0:
		formatted = strings.Repeat(" ", intWidth)
	case integer == 0 && intPad == format.PaddingNone && decPad == format.PaddingSpace:
		formatted = ""
	case integer == 0 && intPad == format.PaddingSpace && decPad != format.PaddingNone:
		formatted = ""
	case integer == 0 && intPad == format.PaddingSpace && decPad == format.PaddingNone && len(fmt.Sprintf("%v", decimal)) > numDecimals:
		formatted = strings.Repeat(" ", intWidth)
	case intPad == format.PaddingZero:
		formatted = padIntegerZero(integer, intWidth, f.ShowThousandsSeparator)
	case intPad == format.PaddingSpace:
		formatted = padIntegerSpace(integer, intWidth, f.ShowThousandsSeparator)
	default:
		formatted = formatInteger(integer, f.ShowThousandsSeparator)
	}

	if numDecimals > 0 {
		switch {
		case decPad == format.PaddingZero || (decPad == format.PaddingSpace && numIntegers == 0):
			formatted += "." + fmt.Sprintf("%.*f", numDecimals, decimal)[2:]
		case decPad == format.PaddingSpace && decimal == 0:
			formatted += "." + strings.Repeat(" ", numDecimals)
		case decPad == format.PaddingSpace:
			decStr := strings.TrimPrefix(fmt.Sprintf("%v", decimal), "0.")
			formatted += "." + (decStr + strings.Repeat(" ", numDecimals))[:numDecimals]
		case decimal != 0 || numIntegers == 0:
			formatted += "." + strings.TrimPrefix(fmt.Sprintf("%v", decimal), "0.")
		}
	}

	result := strings.Replace(customFormatString, formatSpec, formatted, 1)

	return expandQuotes(result)
}

func extractExponentTail(decPart string) string {
	idx := strings.Index(decPart, "E")
	if idx < 0 {
		return ""
	}
	return decPart[idx:]
}

func nonZero(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func splitFloat(v float64) (integerPart, fracPart float64) {
	integerPart = math.Trunc(v)
	fracPart = v - integerPart
	return
}

func parseDecimalFraction(fracPart float64) float64 {
	return math.Abs(fracPart)
}

func roundTo(v float64, digits int) float64 {
	mult := math.Pow(10, float64(digits))
	return math.Round(v*mult) / mult
}

func formatInteger(v int, thousands bool) string {
	s := strconv.Itoa(v)
	if !thousands {
		return s
	}
	return insertThousands(s)
}

func padIntegerZero(v, width int, thousands bool) string {
	s := formatInteger(v, thousands)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for len([]rune(strings.ReplaceAll(s, ",", ""))) < width {
		s = "0" + s
	}
	if neg {
		s = "-" + s
	}
	return s
}

func padIntegerSpace(v, width int, thousands bool) string {
	s := formatInteger(v, thousands)
	for len(s) < width {
		s = " " + s
	}
	return s
}

func insertThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var parts []string
	for n > 3 {
		parts = append([]string{s[n-3:]}, parts...)
		s = s[:n-3]
		n = len(s)
	}
	parts = append([]string{s}, parts...)

	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// expandQuotes removes the literal-quote markers a custom format string
// uses around passthrough text, mirroring expand_quotes.
func expandQuotes(value string) string {
	chars := []rune(value)
	var out strings.Builder
	inString := false

	for i := 0; i < len(chars); i++ {
		c := chars[i]
		hasNext := i < len(chars)-1

		if c == '\'' {
			if !hasNext {
				break
			}
			if chars[i+1] == '\'' {
				out.WriteRune('\'')
				i++
			} else if inString {
				inString = false
			} else {
				inString = true
			}
			continue
		}

		out.WriteRune(c)
	}

	return out.String()
}
