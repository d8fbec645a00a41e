// Package errs defines the error values returned across kmerio.
//
// Every failure is reported as a value, never as a panic. Errors fall into four
// families, each with a sentinel usable with errors.Is:
//
//   - ErrIO: the underlying reader failed.
//   - ErrCorruptCompressedData: a decompressor rejected the stream.
//   - ErrFormat: the decompressed bytes are not well-formed FASTA/FASTQ. The specific
//     cause is one of ErrUnrecognizedLeadingByte, ErrTruncatedRecord,
//     ErrQualityLengthMismatch or ErrLineTooLong.
//   - ErrInvalidKmerLength / ErrInvalidWindowSize: k-mer engine misconfiguration.
//
// The typed errors below carry the location (byte offset into the decompressed
// stream, record index) and unwrap to both the family sentinel and the specific cause:
//
//	rec, err := parser.Next()
//	if errors.Is(err, errs.ErrQualityLengthMismatch) {
//	    var fe *errs.FormatError
//	    errors.As(err, &fe)
//	    log.Printf("record %d at offset %d", fe.Record, fe.Offset)
//	}
package errs

import (
	"errors"
	"fmt"
)

// Error families.
var (
	ErrIO                    = errors.New("i/o error")
	ErrCorruptCompressedData = errors.New("corrupt compressed data")
	ErrFormat                = errors.New("format error")
)

// Format error causes.
var (
	ErrUnrecognizedLeadingByte = errors.New("unrecognized leading byte")
	ErrTruncatedRecord         = errors.New("truncated record")
	ErrQualityLengthMismatch   = errors.New("quality length does not match sequence length")
	ErrLineTooLong             = errors.New("line exceeds maximum buffer size")
)

// K-mer engine configuration errors.
var (
	ErrInvalidKmerLength = errors.New("invalid k-mer length")
	ErrInvalidWindowSize = errors.New("invalid minimizer window size")
)

var (
	// ErrNeedMoreData signals that the record buffer holds no complete line and the
	// source is not yet exhausted. It is a control signal, not a failure.
	ErrNeedMoreData = errors.New("need more data")

	// ErrHashCollision is reported when two distinct k-mers share a 64-bit hash key.
	ErrHashCollision = errors.New("hash collision detected")

	// ErrUnsupportedCompression is returned when no decoder is registered for a type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)

// FormatError reports malformed FASTA/FASTQ input.
type FormatError struct {
	Kind    error  // one of the format error causes
	Record  int    // 1-based index of the record being parsed
	Offset  int64  // decompressed byte offset of the offending line
	Context string // short excerpt of the offending input, may be empty
}

func (e *FormatError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("%v: %v (record %d, offset %d)", ErrFormat, e.Kind, e.Record, e.Offset)
	}

	return fmt.Sprintf("%v: %v (record %d, offset %d): %q", ErrFormat, e.Kind, e.Record, e.Offset, e.Context)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrFormat, e.Kind}
}

// NewFormatError builds a FormatError, truncating context to a readable excerpt.
func NewFormatError(kind error, record int, offset int64, context []byte) *FormatError {
	const maxContext = 64
	if len(context) > maxContext {
		context = context[:maxContext]
	}

	return &FormatError{Kind: kind, Record: record, Offset: offset, Context: string(context)}
}

// IOError reports a failure of the underlying byte stream.
type IOError struct {
	Offset int64 // decompressed bytes delivered before the failure
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%v at offset %d: %v", ErrIO, e.Offset, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// CorruptDataError reports a decompressor rejecting its input.
type CorruptDataError struct {
	Compression string // name of the compression format
	Offset      int64  // decompressed bytes delivered before the failure
	Err         error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("%v (%s) at offset %d: %v", ErrCorruptCompressedData, e.Compression, e.Offset, e.Err)
}

func (e *CorruptDataError) Unwrap() []error {
	return []error{ErrCorruptCompressedData, e.Err}
}
