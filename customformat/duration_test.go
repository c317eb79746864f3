package customformat

import (
	"testing"

	"github.com/iwahq/numbers/format"
	"github.com/stretchr/testify/assert"
)

func TestRenderDurationMediumStyleWords(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleMedium,
		UnitLargest:  unitHour,
		UnitSmallest: unitSecond,
	}

	assert.Equal(t, "1 hour 2 minutes 5 seconds", RenderDuration(3725, f))
}

func TestRenderDurationNoneStyleColonSeparated(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleNone,
		UnitLargest:  unitHour,
		UnitSmallest: unitSecond,
	}

	assert.Equal(t, "1:02:05", RenderDuration(3725, f))
}

func TestRenderDurationNoneStyleWithMilliseconds(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleNone,
		UnitLargest:  unitMinute,
		UnitSmallest: unitMillisecond,
	}

	assert.Equal(t, "02:05.250", RenderDuration(125.25, f))
}

func TestRenderDurationSingularUnitNoPlural(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleMedium,
		UnitLargest:  unitHour,
		UnitSmallest: unitHour,
	}

	assert.Equal(t, "1 hour", RenderDuration(3600, f))
}

func TestRenderDurationPluralUnit(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleMedium,
		UnitLargest:  unitHour,
		UnitSmallest: unitHour,
	}

	assert.Equal(t, "2 hours", RenderDuration(7200, f))
}

func TestRenderDurationShortStyleAbbreviates(t *testing.T) {
	f := DurationFormat{
		Style:        format.DurationStyleShort,
		UnitLargest:  unitHour,
		UnitSmallest: unitHour,
	}

	assert.Equal(t, "2h", RenderDuration(7200, f))
}

func TestRenderDurationAutomaticUnitsSmallValue(t *testing.T) {
	f := DurationFormat{
		Style:             format.DurationStyleMedium,
		UseAutomaticUnits: true,
	}

	assert.Equal(t, "30 seconds", RenderDuration(30, f))
}
