package format

type (
	CompressionType uint8
	RecordFormat    uint8
)

const (
	CompressionNone  CompressionType = 0x1 // CompressionNone represents plain, uncompressed input.
	CompressionGzip  CompressionType = 0x2 // CompressionGzip represents gzip, including multi-member (BGZF) streams.
	CompressionBzip2 CompressionType = 0x3 // CompressionBzip2 represents bzip2.
	CompressionXz    CompressionType = 0x4 // CompressionXz represents xz.
	CompressionZstd  CompressionType = 0x5 // CompressionZstd represents Zstandard frames.
	CompressionLZ4   CompressionType = 0x6 // CompressionLZ4 represents the LZ4 frame format.
	CompressionS2    CompressionType = 0x7 // CompressionS2 represents S2 or Snappy framed streams.

	FormatUnknown RecordFormat = 0x0 // FormatUnknown is reported before the first header is seen.
	FormatFASTA   RecordFormat = 0x1 // FormatFASTA represents '>'-prefixed records.
	FormatFASTQ   RecordFormat = 0x2 // FormatFASTQ represents '@'-prefixed records with qualities.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionBzip2:
		return "Bzip2"
	case CompressionXz:
		return "Xz"
	case CompressionZstd:
		return "Zstd"
	case CompressionLZ4:
		return "LZ4"
	case CompressionS2:
		return "S2"
	default:
		return "Unknown"
	}
}

func (f RecordFormat) String() string {
	switch f {
	case FormatFASTA:
		return "FASTA"
	case FormatFASTQ:
		return "FASTQ"
	default:
		return "Unknown"
	}
}

// HeaderByte returns the byte that starts every header line of the format,
// or 0 for FormatUnknown.
func (f RecordFormat) HeaderByte() byte {
	switch f {
	case FormatFASTA:
		return '>'
	case FormatFASTQ:
		return '@'
	default:
		return 0
	}
}
