package compress

import (
	"io"

	"github.com/ulikunitz/xz"
)

// XzDecoder decodes xz streams.
type XzDecoder struct{}

var _ Decoder = (*XzDecoder)(nil)

// NewXzDecoder creates a new xz decoder.
func NewXzDecoder() XzDecoder {
	return XzDecoder{}
}

// NewReader validates the xz stream header and returns a reader over the decompressed data.
func (d XzDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}

	return io.NopCloser(xr), nil
}
