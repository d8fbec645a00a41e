package compress

import (
	"bufio"
	"errors"
	"io"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/format"
)

const (
	// sourceReadBufferSize is the size of the bufio.Reader used to peek magic bytes.
	sourceReadBufferSize = 64 * 1024

	// maxEmptyReads bounds consecutive (0, nil) reads before giving up.
	maxEmptyReads = 100
)

// trackingReader remembers failures of the underlying reader so that Source can tell
// an I/O failure apart from a decoder rejecting the stream.
type trackingReader struct {
	r   io.Reader
	err error
}

func (t *trackingReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}

	return n, err
}

// Source is a forward-only stream of decompressed bytes.
//
// A Source owns its decoder exclusively. It does not own the reader it was built on;
// closing that reader remains the caller's job.
type Source struct {
	compression format.CompressionType
	raw         *trackingReader
	dec         io.ReadCloser
	delivered   int64 // decompressed bytes returned so far
	err         error // sticky terminal state, io.EOF on clean end
}

// NewSource detects the compression format of r from its leading bytes and returns a
// Source delivering the decompressed stream.
//
// Parameters:
//   - r: Any forward-readable byte stream (file, pipe, memory buffer)
//
// Returns:
//   - *Source: The decompressing source
//   - error: *errs.IOError if peeking failed, *errs.CorruptDataError if the decoder
//     rejected the stream header
func NewSource(r io.Reader) (*Source, error) {
	raw := &trackingReader{r: r}
	br := bufio.NewReaderSize(raw, sourceReadBufferSize)

	prefix, err := br.Peek(MaxMagicLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, &errs.IOError{Offset: 0, Err: err}
	}

	return newSource(raw, br, Detect(prefix))
}

// NewSourceWithCompression builds a Source with an explicit compression type,
// skipping detection.
func NewSourceWithCompression(r io.Reader, compression format.CompressionType) (*Source, error) {
	raw := &trackingReader{r: r}

	return newSource(raw, bufio.NewReaderSize(raw, sourceReadBufferSize), compression)
}

func newSource(raw *trackingReader, br *bufio.Reader, compression format.CompressionType) (*Source, error) {
	decoder, err := GetDecoder(compression)
	if err != nil {
		return nil, err
	}

	s := &Source{compression: compression, raw: raw}

	dec, err := decoder.NewReader(br)
	if err != nil {
		return nil, s.classify(err)
	}
	s.dec = dec

	return s, nil
}

// Compression returns the detected (or configured) compression type.
func (s *Source) Compression() format.CompressionType {
	return s.compression
}

// Offset returns the number of decompressed bytes delivered so far.
func (s *Source) Offset() int64 {
	return s.delivered
}

// ReadMore reads the next decompressed bytes into p.
//
// It returns n > 0 with a nil error, or 0 with io.EOF once the stream is exhausted.
// Bytes read together with a failure are delivered first; the failure is reported by
// the following call. Once ReadMore has returned an error it keeps returning it.
//
// Parameters:
//   - p: Destination buffer, must be non-empty to make progress
//
// Returns:
//   - int: Number of bytes written to p
//   - error: io.EOF, *errs.IOError or *errs.CorruptDataError
func (s *Source) ReadMore(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if len(p) == 0 {
		return 0, nil
	}

	for range maxEmptyReads {
		n, err := s.dec.Read(p)
		s.delivered += int64(n)

		if err != nil {
			if errors.Is(err, io.EOF) {
				s.err = io.EOF
			} else {
				s.err = s.classify(err)
			}
		}

		if n > 0 {
			return n, nil
		}
		if s.err != nil {
			return 0, s.err
		}
	}

	s.err = &errs.IOError{Offset: s.delivered, Err: io.ErrNoProgress}

	return 0, s.err
}

// Close releases the decoder. It does not close the underlying reader.
func (s *Source) Close() error {
	if s.dec == nil {
		return nil
	}
	err := s.dec.Close()
	s.dec = nil
	if s.err == nil {
		s.err = io.EOF
	}

	return err
}

func (s *Source) classify(err error) error {
	if s.raw.err != nil || s.compression == format.CompressionNone {
		return &errs.IOError{Offset: s.delivered, Err: err}
	}

	return &errs.CorruptDataError{Compression: s.compression.String(), Offset: s.delivered, Err: err}
}
