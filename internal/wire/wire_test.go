package wire

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, math.MaxUint64}

	for _, v := range values {
		buf := PutUvarint(nil, v)
		assert.Equal(t, SizeUvarint(v), len(buf))

		got, n := Uvarint(buf)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestUvarintTruncated(t *testing.T) {
	buf := PutUvarint(nil, 1<<40)
	_, n := Uvarint(buf[:1])
	assert.LessOrEqual(t, n, 0)
}

func TestFloat64BitsRoundTrip(t *testing.T) {
	values := []float64{0, 1.5, -3.25, math.Pi, math.Inf(1), math.Inf(-1)}

	for _, v := range values {
		got := Float64frombits(Float64bits(v))
		if math.IsInf(v, 0) {
			assert.Equal(t, v, got)
			continue
		}
		assert.InDelta(t, v, got, 1e-12)
	}
}

func TestU24RoundTrip(t *testing.T) {
	values := []uint32{0, 1, 255, 65536, 0xFFFFFF}

	for _, v := range values {
		buf := make([]byte, 3)
		PutU24(buf, v)
		assert.Equal(t, v, U24(buf))
	}
}

func TestU24TruncatesHighBits(t *testing.T) {
	buf := make([]byte, 3)
	PutU24(buf, 0x1FFFFFFF)
	assert.Equal(t, uint32(0xFFFFFF), U24(buf))
}

func TestDecimal128RoundTrip(t *testing.T) {
	values := []float64{0, 1, 42, 1000000, 123456789}

	for _, v := range values {
		buf := make([]byte, 16)
		PutDecimal128(buf, v)
		assert.InDelta(t, v, Decimal128(buf), 1e-6)
	}
}

func TestDecimal128Negative(t *testing.T) {
	buf := make([]byte, 16)
	PutDecimal128(buf, -250)

	got := Decimal128(buf)
	assert.InDelta(t, -250.0, got, 1e-6)
	assert.NotZero(t, buf[15]&0x80, "sign bit should be set for a negative value")
}

func TestPutDecimal128ZeroesBuffer(t *testing.T) {
	buf := make([]byte, 16)
	for i := range buf {
		buf[i] = 0xFF
	}

	PutDecimal128(buf, 1)
	require.Len(t, buf, 16)
	assert.InDelta(t, 1.0, Decimal128(buf), 1e-9)
}
