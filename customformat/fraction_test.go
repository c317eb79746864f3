package customformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFixedFractionHalves(t *testing.T) {
	assert.Equal(t, "1/2", RenderFixedFraction(0.5, 2))
	assert.Equal(t, "1 1/2", RenderFixedFraction(1.5, 2))
}

func TestRenderFixedFractionZeroNumeratorCollapses(t *testing.T) {
	assert.Equal(t, "0", RenderFixedFraction(0, 4))
}

func TestRenderFixedFractionNegativeWhole(t *testing.T) {
	assert.Equal(t, "-1/4", RenderFixedFraction(-0.25, 4))
}

func TestRenderAccuracyFractionOneHalf(t *testing.T) {
	assert.Equal(t, "1/2", RenderAccuracyFraction(0.5, 1))
}

func TestRenderAccuracyFractionOneThird(t *testing.T) {
	assert.Equal(t, "1/3", RenderAccuracyFraction(1.0/3.0, 1))
}

func TestRenderAccuracyFractionWithWholePart(t *testing.T) {
	assert.Equal(t, "2 1/2", RenderAccuracyFraction(2.5, 1))
}

func TestRenderAccuracyFractionZero(t *testing.T) {
	assert.Equal(t, "0", RenderAccuracyFraction(0, 2))
}
