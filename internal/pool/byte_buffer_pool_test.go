package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.Bytes())
	assert.Equal(t, 5, bb.Len())

	n, err = bb.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "hello world", string(bb.Bytes()))

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B), "Reset retains the backing array")
}

func TestByteBuffer_WriteGrowsBeyondDefaultCapacity(t *testing.T) {
	bb := NewByteBuffer(4)

	data := make([]byte, 100)
	_, err := bb.Write(data)
	require.NoError(t, err)
	assert.Equal(t, 100, bb.Len())
}

func TestByteBufferPool_GetPutReuse(t *testing.T) {
	p := NewByteBufferPool(64, 256)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 64)

	bb.Write([]byte("some data"))
	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, 0, bb2.Len(), "pooled buffer is reset on return")
}

func TestByteBufferPool_DiscardsOversizedBuffer(t *testing.T) {
	p := NewByteBufferPool(64, 128)

	bb := p.Get()
	bb.Write(make([]byte, 1024)) // grows it well past maxThreshold
	p.Put(bb)

	fresh := p.Get()
	assert.LessOrEqual(t, cap(fresh.B), 128, "an oversized buffer should not come back out of the pool")
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(64, 256)
	assert.NotPanics(t, func() { p.Put(nil) })
}

func TestByteBufferPool_NoThreshold(t *testing.T) {
	p := NewByteBufferPool(64, 0)

	bb := p.Get()
	bb.Write(make([]byte, 1<<20))
	assert.NotPanics(t, func() { p.Put(bb) })
}

func TestWindowAndFileBufferPools(t *testing.T) {
	wb := GetWindowBuffer()
	require.NotNil(t, wb)
	assert.GreaterOrEqual(t, cap(wb.B), WindowBufferDefaultSize)
	PutWindowBuffer(wb)

	fb := GetFileBuffer()
	require.NotNil(t, fb)
	assert.GreaterOrEqual(t, cap(fb.B), FileBufferDefaultSize)
	PutFileBuffer(fb)

	assert.NotEqual(t, WindowBufferDefaultSize, FileBufferDefaultSize)
}

func TestByteBufferPool_ConcurrentAccess(t *testing.T) {
	p := NewByteBufferPool(64, 4096)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				bb := p.Get()
				bb.Write([]byte("payload"))
				p.Put(bb)
			}
		}()
	}
	wg.Wait()
}
