package compress

// ZstdDecoder decodes Zstandard frames.
//
// The default build uses github.com/klauspost/compress/zstd with pooled, single-threaded
// decoders. Building with the "gozstd" tag and cgo enabled switches to
// github.com/valyala/gozstd.
type ZstdDecoder struct{}

var _ Decoder = (*ZstdDecoder)(nil)

// NewZstdDecoder creates a new Zstd decoder.
func NewZstdDecoder() ZstdDecoder {
	return ZstdDecoder{}
}
