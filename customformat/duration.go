package customformat

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/iwahq/numbers/format"
)

const (
	secondsInHour = 60 * 60
	secondsInDay  = secondsInHour * 24
	secondsInWeek = secondsInDay * 7
)

// Duration units, matching the bitmask values format.proto uses:
// 1=week 2=day 4=hour 8=minute 16=second 32=millisecond.
const (
	unitWeek        = 1
	unitDay         = 2
	unitHour        = 4
	unitMinute      = 8
	unitSecond      = 16
	unitMillisecond = 32
)

// DurationFormat is the subset of a format record RenderDuration needs.
type DurationFormat struct {
	Style              format.DurationStyle
	UnitLargest        int
	UnitSmallest       int
	UseAutomaticUnits  bool
}

// RenderDuration formats a duration given in seconds according to f,
// selecting units automatically when f.UseAutomaticUnits is set.
func RenderDuration(seconds float64, f DurationFormat) string {
	unitLargest, unitSmallest := f.UnitLargest, f.UnitSmallest
	if f.UseAutomaticUnits {
		unitSmallest, unitLargest = autoUnits(seconds)
	}

	d := seconds
	var parts []string

	if unitLargest == unitWeek {
		dd := int(d / secondsInWeek)
		if unitSmallest != unitWeek {
			d -= secondsInWeek * float64(dd)
		}
		parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("week", dd, f.Style)))
	}

	if unitLargest <= unitDay && unitSmallest >= unitDay {
		dd := int(d / secondsInDay)
		if unitSmallest > unitDay {
			d -= secondsInDay * float64(dd)
		}
		parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("day", dd, f.Style)))
	}

	if unitLargest <= unitHour && unitSmallest >= unitHour {
		dd := int(d / secondsInHour)
		if unitSmallest > unitHour {
			d -= secondsInHour * float64(dd)
		}
		parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("hour", dd, f.Style)))
	}

	if unitLargest <= unitMinute && unitSmallest >= unitMinute {
		dd := int(d / 60)
		if unitSmallest > unitMinute {
			d -= 60 * float64(dd)
		}
		if f.Style == format.DurationStyleNone {
			pad := (unitLargest == unitMinute && unitSmallest == unitMinute) || dd > 10
			parts = append(parts, padNone(dd, pad))
		} else {
			parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("minute", dd, f.Style)))
		}
	}

	if unitLargest <= unitSecond && unitSmallest >= unitSecond {
		dd := int(d)
		if unitSmallest > unitSecond {
			d -= float64(dd)
		}
		if f.Style == format.DurationStyleNone {
			pad := (unitSmallest == unitSecond && unitLargest == unitSecond) || dd >= 10
			parts = append(parts, padNone(dd, pad))
		} else {
			parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("second", dd, f.Style)))
		}
	}

	if unitSmallest >= unitMillisecond {
		dd := int(math.Round(1000 * d))
		if f.Style == format.DurationStyleNone {
			padding := ""
			switch {
			case dd < 10:
				padding = "00"
			case dd < 100:
				padding = "0"
			}
			parts = append(parts, padding+fmt.Sprintf("%d", dd))
		} else {
			parts = append(parts, fmt.Sprintf("%d%s", dd, unitSuffix("millisecond", dd, f.Style)))
		}
	}

	sep := " "
	if f.Style == format.DurationStyleNone {
		sep = ":"
	}

	result := strings.Join(parts, sep)

	if f.Style == format.DurationStyleNone {
		result = lastColonToDot.ReplaceAllString(result, ".$1")
	}

	return result
}

var lastColonToDot = regexp.MustCompile(`:(\d\d\d)$`)

func padNone(dd int, pad bool) string {
	if pad {
		return fmt.Sprintf("%d", dd)
	}
	return "0" + fmt.Sprintf("%d", dd)
}

func unitSuffix(unit string, value int, style format.DurationStyle) string {
	switch style {
	case format.DurationStyleNone:
		return ""
	case format.DurationStyleShort:
		return string(unit[0])
	default:
		plural := ""
		if value != 1 {
			plural = "s"
		}
		return " " + unit + plural
	}
}

func autoUnits(value float64) (smallest, largest int) {
	if value == 0 {
		return unitDay, unitDay
	}

	switch {
	case value >= secondsInWeek:
		largest = unitWeek
	case value >= secondsInDay:
		largest = unitDay
	case value >= secondsInHour:
		largest = unitHour
	case value >= 60:
		largest = unitMinute
	case value >= 1:
		largest = unitSecond
	default:
		largest = unitMillisecond
	}

	switch {
	case math.Floor(value) != value:
		smallest = unitMillisecond
	case math.Mod(value, 60) != 0:
		smallest = unitSecond
	case math.Mod(value, secondsInHour) != 0:
		smallest = unitMinute
	case math.Mod(value, secondsInDay) != 0:
		smallest = unitHour
	case math.Mod(value, secondsInWeek) != 0:
		smallest = unitDay
	default:
		smallest = unitWeek
	}

	if smallest < largest {
		smallest = largest
	}

	return smallest, largest
}
