package customformat

import "strings"

// customTextSentinel is U+E421, the private-use code point a Numbers
// custom text format uses to mark where the cell's string value is
// substituted. Grounded on decode_text_format.
const customTextSentinel = ''

// RenderText substitutes the cell's string value for every occurrence of
// the custom-text sentinel in spec.
func RenderText(spec, value string) string {
	return strings.ReplaceAll(spec, string(customTextSentinel), value)
}

// ListStyle identifies a bullet/numbered-list rendering style, supplemented
// from bullets.py's BULLET_PREFIXES/BULLET_CONVERSION/BULLET_SUFFIXES
// tables (spec.md's distillation dropped list-style rendering; it isn't
// excluded by any Non-goal).
type ListStyle int

const (
	ListNumericDecimal ListStyle = iota
	ListNumericDoubleParen
	ListNumericRightParen
	ListRomanUpperDecimal
	ListRomanUpperDoubleParen
	ListRomanUpperRightParen
	ListRomanLowerDecimal
	ListRomanLowerDoubleParen
	ListRomanLowerRightParen
	ListAlphaUpperDecimal
	ListAlphaUpperDoubleParen
	ListAlphaUpperRightParen
	ListAlphaLowerDecimal
	ListAlphaLowerDoubleParen
	ListAlphaLowerRightParen
)

var listPrefixes = map[ListStyle]string{
	ListNumericDoubleParen:     "(",
	ListRomanUpperDoubleParen:  "(",
	ListRomanLowerDoubleParen:  "(",
	ListAlphaUpperDoubleParen:  "(",
	ListAlphaLowerDoubleParen:  "(",
}

var listSuffixes = map[ListStyle]string{
	ListNumericDecimal:        ".",
	ListNumericDoubleParen:    ")",
	ListNumericRightParen:     ")",
	ListRomanUpperDecimal:     ".",
	ListRomanUpperDoubleParen: ")",
	ListRomanUpperRightParen:  ")",
	ListRomanLowerDecimal:     ".",
	ListRomanLowerDoubleParen: ")",
	ListRomanLowerRightParen:  ")",
	ListAlphaUpperDecimal:     ".",
	ListAlphaUpperDoubleParen: ")",
	ListAlphaUpperRightParen:  ")",
	ListAlphaLowerDecimal:     ".",
	ListAlphaLowerDoubleParen: ")",
	ListAlphaLowerRightParen:  ")",
}

// RenderListBullet renders the bullet text for the zero-based item index
// idx under list style style: prefix + converted value + suffix.
func RenderListBullet(style ListStyle, idx int) string {
	return listPrefixes[style] + convertListIndex(style, idx) + listSuffixes[style]
}

func convertListIndex(style ListStyle, idx int) string {
	switch style {
	case ListRomanUpperDecimal, ListRomanUpperDoubleParen, ListRomanUpperRightParen:
		return toRoman(idx + 1)
	case ListRomanLowerDecimal, ListRomanLowerDoubleParen, ListRomanLowerRightParen:
		return strings.ToLower(toRoman(idx + 1))
	case ListAlphaUpperDecimal, ListAlphaUpperDoubleParen, ListAlphaUpperRightParen:
		return string(rune('A' + idx))
	case ListAlphaLowerDecimal, ListAlphaLowerDoubleParen, ListAlphaLowerRightParen:
		return string(rune('a' + idx))
	default:
		return itoa(idx + 1)
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}

	neg := v < 0
	if neg {
		v = -v
	}

	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}

	if neg {
		return "-" + string(digits)
	}

	return string(digits)
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// toRoman converts value (1..3999) to upper-case Roman numerals, or "N"
// for zero. Grounded on roman.py's to_roman.
func toRoman(value int) string {
	if value == 0 {
		return "N"
	}

	var out strings.Builder
	for _, entry := range romanTable {
		for value >= entry.value {
			out.WriteString(entry.symbol)
			value -= entry.value
		}
	}

	return out.String()
}
