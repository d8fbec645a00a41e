package compress

import (
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

// gzipReaderPool pools gzip.Reader instances; Reset re-arms them for a new stream
// without reallocating the inflate window.
var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// GzipDecoder decodes gzip streams.
//
// Concatenated members are decoded as a single stream, so BGZF files (a sequence of
// small gzip members) are handled transparently.
type GzipDecoder struct{}

var _ Decoder = (*GzipDecoder)(nil)

// NewGzipDecoder creates a new gzip decoder.
func NewGzipDecoder() GzipDecoder {
	return GzipDecoder{}
}

// NewReader reads the first gzip member header from r and returns a reader over the
// decompressed stream. Returns an error if the header is invalid.
func (d GzipDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, _ := gzipReaderPool.Get().(*gzip.Reader)
	if err := gr.Reset(r); err != nil {
		gzipReaderPool.Put(gr)
		return nil, err
	}
	gr.Multistream(true)

	return &pooledReader{
		Reader: gr,
		release: func() {
			gzipReaderPool.Put(gr)
		},
	}, nil
}
