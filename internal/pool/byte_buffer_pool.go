package pool

import (
	"sync"
)

// Default sizes of the pooled buffers.
const (
	LineBufferDefaultSize     = 1024 * 64        // 64KiB
	LineBufferMaxThreshold    = 1024 * 1024 * 16 // 16MiB
	RecordBufferDefaultSize   = 1024             // 1KiB
	RecordBufferMaxThreshold  = 1024 * 1024 * 4  // 4MiB
	growthLinearLimitMultiple = 4
)

// ByteBuffer is a reusable byte slice with explicit fill and compaction.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Available returns the unused capacity past Len.
func (bb *ByteBuffer) Available() int {
	return cap(bb.B) - len(bb.B)
}

// Free returns the unused tail B[len:cap] for a reader to fill.
// Call Extend with the number of bytes written to commit them.
func (bb *ByteBuffer) Free() []byte {
	return bb.B[len(bb.B):cap(bb.B)]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// Compact drops the first n bytes, moving the remainder to the front of the buffer.
// Panics if n is negative or greater than Len.
func (bb *ByteBuffer) Compact(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Compact: invalid length")
	}
	if n == 0 {
		return
	}

	remaining := copy(bb.B, bb.B[n:])
	bb.B = bb.B[:remaining]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - Up to growthLinearLimitMultiple*LineBufferDefaultSize, capacity doubles.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if bb.Available() >= requiredBytes {
		return
	}

	growBy := cap(bb.B)
	if cap(bb.B) > growthLinearLimitMultiple*LineBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), cap(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers, e.g. after a single chromosome-sized line.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
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
	lineDefaultPool   = NewByteBufferPool(LineBufferDefaultSize, LineBufferMaxThreshold)
	recordDefaultPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
)

// GetLineBuffer retrieves a ByteBuffer from the default line buffer pool.
func GetLineBuffer() *ByteBuffer {
	return lineDefaultPool.Get()
}

// PutLineBuffer returns a ByteBuffer to the default line buffer pool.
func PutLineBuffer(bb *ByteBuffer) {
	lineDefaultPool.Put(bb)
}

// GetRecordBuffer retrieves a ByteBuffer from the default record scratch pool.
func GetRecordBuffer() *ByteBuffer {
	return recordDefaultPool.Get()
}

// PutRecordBuffer returns a ByteBuffer to the default record scratch pool.
func PutRecordBuffer(bb *ByteBuffer) {
	recordDefaultPool.Put(bb)
}
