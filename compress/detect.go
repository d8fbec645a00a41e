package compress

import (
	"bytes"

	"github.com/arloliu/kmerio/format"
)

// MaxMagicLen is the number of leading bytes Detect needs to recognise every
// supported signature.
const MaxMagicLen = 10

type signature struct {
	magic       []byte
	compression format.CompressionType
}

// signatures are checked in order; none is a prefix of another.
var signatures = []signature{
	{magic: []byte{0x1f, 0x8b}, compression: format.CompressionGzip},
	{magic: []byte{'B', 'Z', 'h'}, compression: format.CompressionBzip2},
	{magic: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, compression: format.CompressionXz},
	{magic: []byte{0x28, 0xb5, 0x2f, 0xfd}, compression: format.CompressionZstd},
	{magic: []byte{0x04, 0x22, 0x4d, 0x18}, compression: format.CompressionLZ4},
	{magic: []byte{0xff, 0x06, 0x00, 0x00, 'S', '2', 's', 'T', 'w', 'O'}, compression: format.CompressionS2},
	{magic: []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}, compression: format.CompressionS2},
}

// Detect inspects the leading bytes of a stream and returns its compression type.
//
// A prefix shorter than a signature never matches it, and a prefix matching no
// signature is reported as format.CompressionNone (plain text).
//
// Parameters:
//   - prefix: Up to MaxMagicLen leading bytes of the stream
//
// Returns:
//   - format.CompressionType: Detected compression, CompressionNone by default
func Detect(prefix []byte) format.CompressionType {
	for _, sig := range signatures {
		if bytes.HasPrefix(prefix, sig.magic) {
			return sig.compression
		}
	}

	return format.CompressionNone
}
