package customformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderTextSubstitutesSentinel(t *testing.T) {
	spec := string(customTextSentinel) + " units"
	assert.Equal(t, "42 units", RenderText(spec, "42"))
}

func TestRenderTextMultipleSentinels(t *testing.T) {
	sentinel := string(customTextSentinel)
	spec := sentinel + "-" + sentinel
	assert.Equal(t, "x-x", RenderText(spec, "x"))
}

func TestRenderListBulletNumericDecimal(t *testing.T) {
	assert.Equal(t, "1.", RenderListBullet(ListNumericDecimal, 0))
	assert.Equal(t, "2.", RenderListBullet(ListNumericDecimal, 1))
}

func TestRenderListBulletNumericDoubleParen(t *testing.T) {
	assert.Equal(t, "(1)", RenderListBullet(ListNumericDoubleParen, 0))
}

func TestRenderListBulletAlphaUpper(t *testing.T) {
	assert.Equal(t, "A.", RenderListBullet(ListAlphaUpperDecimal, 0))
	assert.Equal(t, "C.", RenderListBullet(ListAlphaUpperDecimal, 2))
}

func TestRenderListBulletAlphaLowerRightParen(t *testing.T) {
	assert.Equal(t, "b)", RenderListBullet(ListAlphaLowerRightParen, 1))
}

func TestRenderListBulletRomanUpper(t *testing.T) {
	assert.Equal(t, "IV.", RenderListBullet(ListRomanUpperDecimal, 3))
}

func TestRenderListBulletRomanLower(t *testing.T) {
	assert.Equal(t, "iv.", RenderListBullet(ListRomanLowerDecimal, 3))
}

func TestToRomanKnownValues(t *testing.T) {
	cases := map[int]string{
		1: "I", 4: "IV", 9: "IX", 14: "XIV", 40: "XL",
		90: "XC", 400: "CD", 900: "CM", 1994: "MCMXCIV", 3999: "MMMCMXCIX",
	}

	for value, want := range cases {
		assert.Equal(t, want, toRoman(value))
	}
}

func TestToRomanZero(t *testing.T) {
	assert.Equal(t, "N", toRoman(0))
}

func TestItoaBasic(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}
