package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrComputeCachesOnFirstAccess(t *testing.T) {
	c := New[int, string]()
	calls := 0

	compute := func() string {
		calls++
		return "value"
	}

	first := c.GetOrCompute(1, compute)
	second := c.GetOrCompute(1, compute)

	assert.Equal(t, "value", first)
	assert.Equal(t, "value", second)
	assert.Equal(t, 1, calls)
}

func TestGetOrComputeIsPerKey(t *testing.T) {
	c := New[string, int]()

	a := c.GetOrCompute("a", func() int { return 1 })
	b := c.GetOrCompute("b", func() int { return 2 })

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	c := New[int, int]()
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	first := c.GetOrCompute(1, compute)
	c.Invalidate(1)
	second := c.GetOrCompute(1, compute)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestInvalidateUnknownKeyIsNoop(t *testing.T) {
	c := New[int, int]()
	c.Invalidate(42)
}

func TestInvalidateAllDropsEveryEntry(t *testing.T) {
	c := New[int, int]()
	calls := 0
	compute := func() int {
		calls++
		return calls
	}

	c.GetOrCompute(1, compute)
	c.GetOrCompute(2, compute)
	c.InvalidateAll()

	c.GetOrCompute(1, compute)
	c.GetOrCompute(2, compute)

	assert.Equal(t, 4, calls)
}
