package compress

import (
	"compress/bzip2"
	"io"
)

// Bzip2Decoder decodes bzip2 streams, including concatenated streams.
type Bzip2Decoder struct{}

var _ Decoder = (*Bzip2Decoder)(nil)

// NewBzip2Decoder creates a new bzip2 decoder.
func NewBzip2Decoder() Bzip2Decoder {
	return Bzip2Decoder{}
}

// NewReader returns a reader over the decompressed bzip2 stream.
// Header validation happens on the first Read.
func (d Bzip2Decoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(bzip2.NewReader(r)), nil
}
