package compress

import (
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4ReaderPool pools lz4.Reader instances for reuse.
// The lz4.Reader keeps its block buffers across Reset calls.
var lz4ReaderPool = sync.Pool{
	New: func() any {
		return lz4.NewReader(nil)
	},
}

// LZ4Decoder decodes the LZ4 frame format.
type LZ4Decoder struct{}

var _ Decoder = (*LZ4Decoder)(nil)

// NewLZ4Decoder creates a new LZ4 decoder.
//
// Returns:
//   - LZ4Decoder: New LZ4 decoder instance
func NewLZ4Decoder() LZ4Decoder {
	return LZ4Decoder{}
}

// NewReader returns a reader over the decompressed LZ4 frame stream.
//
// Uses a pooled lz4.Reader; the frame header is validated on the first Read.
func (d LZ4Decoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	lr, _ := lz4ReaderPool.Get().(*lz4.Reader)
	lr.Reset(r)

	return &pooledReader{
		Reader: lr,
		release: func() {
			lr.Reset(nil)
			lz4ReaderPool.Put(lr)
		},
	}, nil
}
