// Package pool provides pooled byte buffers for the encode paths of the
// framing and archive codecs, avoiding an allocation per chunk/segment when
// re-serializing a large document.
package pool

import "sync"

// Default and max-retained sizes for the two buffer pools this module needs:
// one per Snappy compression window (bounded at exactly 65536 bytes by
// spec.md's chunk-size invariant) and one for a whole re-serialized IWA
// file, which can run to several hundred KiB for a large table.
const (
	WindowBufferDefaultSize = 1024 * 64        // 64KiB, one chunk window
	WindowBufferMaxThreshold = 1024 * 128      // 128KiB
	FileBufferDefaultSize    = 1024 * 256      // 256KiB
	FileBufferMaxThreshold   = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable byte slice wrapper that supports pooled reuse.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given default capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Write appends data, growing the buffer as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers of a given default size, discarding
// buffers that have grown past maxThreshold instead of retaining them.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool whose buffers default to defaultSize and
// are discarded (not retained) once they exceed maxThreshold bytes.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool:         sync.Pool{New: func() any { return NewByteBuffer(defaultSize) }},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a buffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a buffer to the pool, discarding it if it has grown too large.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	windowPool = NewByteBufferPool(WindowBufferDefaultSize, WindowBufferMaxThreshold)
	filePool   = NewByteBufferPool(FileBufferDefaultSize, FileBufferMaxThreshold)
)

// GetWindowBuffer retrieves a buffer sized for one Snappy compression window.
func GetWindowBuffer() *ByteBuffer { return windowPool.Get() }

// PutWindowBuffer returns a window buffer to its pool.
func PutWindowBuffer(bb *ByteBuffer) { windowPool.Put(bb) }

// GetFileBuffer retrieves a buffer sized for a whole re-serialized IWA file.
func GetFileBuffer() *ByteBuffer { return filePool.Get() }

// PutFileBuffer returns a file buffer to its pool.
func PutFileBuffer(bb *ByteBuffer) { filePool.Put(bb) }
