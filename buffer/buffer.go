// Package buffer provides RecordBuffer, a growable byte window over a decompressed
// byte source that hands out line views without ever reading a byte twice or
// skipping one.
//
// The buffer keeps three positions over one contiguous allocation:
//
//	0 <= cursor <= fill <= capacity
//
//	[ consumed | unread lines ... | free space ]
//	0        cursor              fill       capacity
//
// Refill moves the unread bytes to offset 0 before appending new bytes from the
// source, so memory stays bounded by the longest line plus one read. When a single
// line does not fit, the buffer grows.
//
// Line views returned by NextLine alias the buffer and are only valid until the next
// call to NextLine, Refill or EnsureCapacity. Copy them to keep them longer.
package buffer

import (
	"bytes"
	"errors"
	"io"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/internal/pool"
)

// Filler is the single capability a RecordBuffer needs from its source.
// compress.Source implements it.
type Filler interface {
	// ReadMore returns n > 0 bytes, or 0 and io.EOF at end of stream.
	ReadMore(p []byte) (int, error)
}

// RecordBuffer is a line-oriented window over a Filler.
//
// A RecordBuffer is owned by one parser and is not safe for concurrent use.
type RecordBuffer struct {
	src     Filler
	data    *pool.ByteBuffer // data.B[:fill] holds bytes read, cap is the capacity
	cursor  int
	eof     bool
	base    int64 // stream offset of data.B[0]
	maxSize int   // 0 means unlimited
	pooled  bool
}

// New creates a RecordBuffer reading from src with the given initial capacity.
// A size <= 0 selects pool.LineBufferDefaultSize and draws the storage from a pool;
// call Release to return it.
func New(src Filler, size int) *RecordBuffer {
	b := &RecordBuffer{src: src}
	if size <= 0 {
		b.data = pool.GetLineBuffer()
		b.pooled = true
	} else {
		b.data = pool.NewByteBuffer(size)
	}

	return b
}

// terminatorRoom is the space kept beyond the maximum line size for "\r\n".
const terminatorRoom = 2

// SetMaxSize bounds the length of a line, not counting its "\n" or "\r\n"
// terminator. A longer line fails with errs.ErrLineTooLong, and the buffer never
// grows beyond n plus the terminator. Zero removes the bound.
func (b *RecordBuffer) SetMaxSize(n int) {
	if n < 0 {
		n = 0
	}
	b.maxSize = n
}

// Cursor returns the read position inside the buffer.
func (b *RecordBuffer) Cursor() int { return b.cursor }

// Fill returns the number of valid bytes in the buffer.
func (b *RecordBuffer) Fill() int { return b.data.Len() }

// Capacity returns the current size of the backing storage.
func (b *RecordBuffer) Capacity() int { return b.data.Cap() }

// Buffered returns the number of unread bytes.
func (b *RecordBuffer) Buffered() int { return b.data.Len() - b.cursor }

// EOF reports whether the source has been exhausted.
func (b *RecordBuffer) EOF() bool { return b.eof }

// Offset returns the stream offset of the next unread byte.
func (b *RecordBuffer) Offset() int64 { return b.base + int64(b.cursor) }

// EnsureCapacity makes sure that, once compacted, the buffer has room for n unread
// bytes. It compacts first and grows only when compaction is not enough.
//
// Returns errs.ErrLineTooLong if n exceeds the configured maximum size plus room for a
// line terminator.
func (b *RecordBuffer) EnsureCapacity(n int) error {
	limit := b.limit()
	if limit > 0 && n > limit {
		return errs.ErrLineTooLong
	}
	b.compact()
	if b.data.Cap() >= n {
		return nil
	}

	need := n - b.data.Len()
	b.data.Grow(need)
	if limit > 0 && b.data.Cap() > limit {
		clamped := pool.NewByteBuffer(limit)
		_, _ = clamped.Write(b.data.B)
		b.data = clamped
		b.pooled = false
	}

	return nil
}

// Refill compacts the buffer and reads more bytes from the source.
// When the buffer is full of a single unterminated line, it grows first.
//
// Returns:
//   - int: Number of new bytes appended
//   - error: io.EOF once the source is exhausted, errs.ErrLineTooLong, or the
//     source's error
func (b *RecordBuffer) Refill() (int, error) {
	if b.eof {
		return 0, io.EOF
	}

	b.compact()
	if b.data.Available() == 0 {
		if err := b.EnsureCapacity(b.data.Cap() + 1); err != nil {
			return 0, err
		}
	}

	n, err := b.src.ReadMore(b.data.Free())
	b.data.Extend(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			b.eof = true
			return n, io.EOF
		}

		return n, err
	}

	return n, nil
}

// NextLine returns the next line without its terminator. A trailing '\r' is stripped,
// so CRLF input yields the same lines as LF input. At end of stream a final line
// without a terminator is returned as a regular line.
//
// Returns:
//   - []byte: Line view, valid until the next mutating call
//   - error: errs.ErrNeedMoreData when no complete line is buffered and the source is
//     not exhausted, io.EOF when nothing is left, errs.ErrLineTooLong when the line is
//     longer than the maximum size
func (b *RecordBuffer) NextLine() ([]byte, error) {
	unread := b.data.B[b.cursor:]

	n := bytes.IndexByte(unread, '\n')
	switch {
	case n >= 0:
	case !b.eof:
		return nil, errs.ErrNeedMoreData
	case len(unread) == 0:
		return nil, io.EOF
	default:
		n = len(unread)
	}

	line := trimCR(unread[:n])
	if b.maxSize > 0 && len(line) > b.maxSize {
		return nil, errs.ErrLineTooLong
	}
	b.cursor += min(n+1, len(unread))

	return line, nil
}

// ReadLine is NextLine with refills: it keeps pulling from the source until a whole
// line is buffered or the stream ends.
func (b *RecordBuffer) ReadLine() ([]byte, error) {
	for {
		line, err := b.NextLine()
		if !errors.Is(err, errs.ErrNeedMoreData) {
			return line, err
		}

		if _, err := b.Refill(); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
}

// Release returns pooled storage. The buffer must not be used afterwards.
func (b *RecordBuffer) Release() {
	if b.pooled {
		pool.PutLineBuffer(b.data)
	}
	b.data = pool.NewByteBuffer(0)
	b.pooled = false
	b.cursor = 0
	b.eof = true
}

// limit is the largest capacity the buffer may reach, 0 when unbounded.
func (b *RecordBuffer) limit() int {
	if b.maxSize == 0 {
		return 0
	}

	return b.maxSize + terminatorRoom
}

func (b *RecordBuffer) compact() {
	if b.cursor == 0 {
		return
	}
	b.base += int64(b.cursor)
	b.data.Compact(b.cursor)
	b.cursor = 0
}

func trimCR(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}

	return line
}
