//go:build gozstd && cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// NewReader returns a reader over the decompressed Zstd stream backed by libzstd.
func (d ZstdDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr := gozstd.NewReader(r)

	return &pooledReader{
		Reader:  zr,
		release: zr.Release,
	}, nil
}
