package compress

import "io"

// NoOpDecoder passes plain, uncompressed input through unchanged.
type NoOpDecoder struct{}

var _ Decoder = (*NoOpDecoder)(nil)

// NewNoOpDecoder creates a passthrough decoder.
func NewNoOpDecoder() NoOpDecoder {
	return NoOpDecoder{}
}

// NewReader returns r itself behind a no-op Close.
//
// Bytes are delivered exactly as read from r, without copying.
func (d NoOpDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}
