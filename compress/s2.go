package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// S2Decoder decodes S2 and Snappy framed streams.
type S2Decoder struct{}

var _ Decoder = (*S2Decoder)(nil)

// NewS2Decoder creates a new S2 decoder.
func NewS2Decoder() S2Decoder {
	return S2Decoder{}
}

// NewReader returns a reader over the decompressed S2 stream.
func (d S2Decoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
