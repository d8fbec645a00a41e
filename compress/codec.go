package compress

import (
	"fmt"
	"io"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/format"
)

// Decoder opens decompressing streams for one compression format.
//
// Implementations are stateless values; any per-stream state (window buffers, pooled
// decoders) belongs to the returned reader and is released by its Close method.
type Decoder interface {
	// NewReader wraps r in a reader producing decompressed bytes.
	//
	// Some formats read and validate a stream header eagerly, so NewReader may
	// fail before any byte is returned.
	//
	// Memory management:
	//   - The returned reader must be closed to release pooled resources
	//   - Closing the returned reader does not close r
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinDecoders = map[format.CompressionType]Decoder{
	format.CompressionNone:  NewNoOpDecoder(),
	format.CompressionGzip:  NewGzipDecoder(),
	format.CompressionBzip2: NewBzip2Decoder(),
	format.CompressionXz:    NewXzDecoder(),
	format.CompressionZstd:  NewZstdDecoder(),
	format.CompressionLZ4:   NewLZ4Decoder(),
	format.CompressionS2:    NewS2Decoder(),
}

// GetDecoder retrieves the built-in Decoder for the specified compression type.
//
// Returns:
//   - Decoder: Shared, stateless decoder for the type
//   - error: errs.ErrUnsupportedCompression for unknown types
func GetDecoder(compressionType format.CompressionType) (Decoder, error) {
	if dec, ok := builtinDecoders[compressionType]; ok {
		return dec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, compressionType)
}

// pooledReader releases a pooled decoder back to its pool on Close.
type pooledReader struct {
	io.Reader
	release func()
}

func (p *pooledReader) Close() error {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.Reader = eofReader{}

	return nil
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
