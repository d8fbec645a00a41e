//go:build !(gozstd && cgo)

package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for reuse to eliminate allocation overhead.
// The klauspost/compress/zstd decoder is designed to be reset and reused.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1), // streaming reads stay on the caller's goroutine
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// NewReader returns a reader over the decompressed Zstd stream using a pooled decoder.
func (d ZstdDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	if err := decoder.Reset(r); err != nil {
		zstdDecoderPool.Put(decoder)
		return nil, err
	}

	return &pooledReader{
		Reader: decoder,
		release: func() {
			zstdDecoderPool.Put(decoder)
		},
	}, nil
}
