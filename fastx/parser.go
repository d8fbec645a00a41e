package fastx

import (
	"bytes"
	"errors"
	"io"
	"iter"

	"github.com/arloliu/kmerio/buffer"
	"github.com/arloliu/kmerio/compress"
	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/format"
	"github.com/arloliu/kmerio/internal/options"
	"github.com/arloliu/kmerio/internal/pool"
)

type state uint8

const (
	stateStart  state = iota // nothing read yet
	stateFASTA               // between FASTA records
	stateFASTQ               // between FASTQ records
	stateEnd                 // clean end of input
	stateError               // poisoned, p.err is returned forever
)

// Parser reads FASTA or FASTQ records from a RecordBuffer.
//
// The format is detected from the first non-blank byte of the input and fixed for the
// rest of the stream. Parsing is fail-fast: after the first error the parser is
// poisoned and every later call returns the same error. Restart from a fresh source
// to continue past a malformed record.
//
// A Parser is not safe for concurrent use; run one parser per input stream.
type Parser struct {
	cfg    Config
	buf    *buffer.RecordBuffer
	src    *compress.Source // nil when built from an existing RecordBuffer
	state  state
	format format.RecordFormat
	err    error

	records int // records returned so far

	header        *pool.ByteBuffer // header of the record being built
	headerOffset  int64
	pending       *pool.ByteBuffer // header read ahead, valid when hasPending
	pendingOffset int64
	hasPending    bool
	seq           *pool.ByteBuffer
	qual          *pool.ByteBuffer
}

// NewParser creates a parser over r, decompressing it transparently.
//
// The compression format is detected from the leading bytes of r. The parser owns the
// decompressor and its buffers; call Close to release them. Closing the parser does
// not close r.
//
// Parameters:
//   - r: Any forward-readable byte stream
//   - opts: Optional configuration functions (see Option)
//
// Returns:
//   - *Parser: The parser, positioned before the first record
//   - error: An invalid option, or a failure to set up decompression
func NewParser(r io.Reader, opts ...Option) (*Parser, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	src, err := compress.NewSource(r)
	if err != nil {
		return nil, err
	}

	p := newParser(cfg, newRecordBuffer(src, cfg))
	p.src = src

	return p, nil
}

// NewBufferParser creates a parser reading lines from an existing RecordBuffer.
// The buffer must not be used by anything else while the parser is alive.
func NewBufferParser(b *buffer.RecordBuffer, opts ...Option) (*Parser, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.maxLineSize > 0 {
		b.SetMaxSize(cfg.maxLineSize)
	}

	return newParser(cfg, b), nil
}

func newRecordBuffer(src buffer.Filler, cfg Config) *buffer.RecordBuffer {
	size := cfg.bufferSize
	// A line at the maximum size still needs room for its "\r\n".
	if limit := cfg.maxLineSize + 2; cfg.maxLineSize > 0 && (size <= 0 || size > limit) {
		size = limit
	}
	b := buffer.New(src, size)
	b.SetMaxSize(cfg.maxLineSize)

	return b
}

func newParser(cfg Config, b *buffer.RecordBuffer) *Parser {
	return &Parser{
		cfg:     cfg,
		buf:     b,
		header:  pool.GetRecordBuffer(),
		pending: pool.GetRecordBuffer(),
		seq:     pool.GetRecordBuffer(),
		qual:    pool.GetRecordBuffer(),
	}
}

// Format returns the detected record format, format.FormatUnknown before the first
// record has been requested.
func (p *Parser) Format() format.RecordFormat {
	return p.format
}

// Compression returns the detected compression, or format.CompressionNone when the
// parser was built on an existing RecordBuffer.
func (p *Parser) Compression() format.CompressionType {
	if p.src == nil {
		return format.CompressionNone
	}

	return p.src.Compression()
}

// Records returns the number of records returned so far.
func (p *Parser) Records() int {
	return p.records
}

// Offset returns the decompressed byte offset of the next unread byte.
func (p *Parser) Offset() int64 {
	return p.buf.Offset()
}

// Err returns the error that poisoned the parser, or nil.
func (p *Parser) Err() error {
	if p.state == stateError {
		return p.err
	}

	return nil
}

// Next parses and returns the next record.
//
// The returned record borrows parser storage and is valid until the next call to Next
// or Close; use Record.Clone to keep it.
//
// Returns:
//   - Record: The parsed record
//   - error: io.EOF at clean end of input; otherwise a *errs.FormatError,
//     *errs.IOError or *errs.CorruptDataError, after which the parser is poisoned
func (p *Parser) Next() (Record, error) {
	switch p.state {
	case stateError:
		return Record{}, p.err
	case stateEnd:
		return Record{}, io.EOF
	case stateStart:
		if err := p.detect(); err != nil {
			return p.fail(err)
		}
	}

	switch p.state {
	case stateFASTA:
		return p.nextFASTA()
	case stateFASTQ:
		return p.nextFASTQ()
	default:
		return Record{}, io.EOF
	}
}

// All returns an iterator over the remaining records. Iteration stops after the first
// error, which is yielded with a zero Record. Records are borrowed, as with Next.
//
// Example:
//
//	for rec, err := range parser.All() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Printf("%s\t%d\n", rec.ID, rec.Len())
//	}
func (p *Parser) All() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for {
			rec, err := p.Next()
			if err == io.EOF { //nolint:errorlint // Next returns io.EOF unwrapped
				return
			}
			if err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// Close releases the parser's buffers and decompressor. The parser reports io.EOF
// afterwards unless it was already poisoned.
func (p *Parser) Close() error {
	var err error
	if p.src != nil {
		err = p.src.Close()
		p.src = nil
	}
	if p.header != nil {
		pool.PutRecordBuffer(p.header)
		pool.PutRecordBuffer(p.pending)
		pool.PutRecordBuffer(p.seq)
		pool.PutRecordBuffer(p.qual)
		p.header, p.pending, p.seq, p.qual = nil, nil, nil, nil
		p.buf.Release()
	}
	if p.state != stateError {
		p.state = stateEnd
	}

	return err
}

// detect reads up to the first header line and fixes the record format.
func (p *Parser) detect() error {
	line, off, err := p.nextNonBlank()
	if errors.Is(err, io.EOF) {
		p.state = stateEnd
		return nil
	}
	if err != nil {
		return err
	}

	line = bytes.TrimLeft(line, " \t")
	switch line[0] {
	case '>':
		p.format = format.FormatFASTA
		p.state = stateFASTA
	case '@':
		p.format = format.FormatFASTQ
		p.state = stateFASTQ
	default:
		return errs.NewFormatError(errs.ErrUnrecognizedLeadingByte, 1, off, line)
	}
	p.setPending(line[1:], off)

	return nil
}

func (p *Parser) nextFASTA() (Record, error) {
	if !p.hasPending {
		p.state = stateEnd
		return Record{}, io.EOF
	}
	p.takePending()

	for {
		off := p.buf.Offset()
		line, err := p.buf.ReadLine()
		if errors.Is(err, io.EOF) {
			p.state = stateEnd
			break
		}
		if err != nil {
			return p.fail(p.readError(err, off))
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			p.setPending(line[1:], off)
			break
		}
		p.appendSeq(line)
	}

	return p.emit(false)
}

func (p *Parser) nextFASTQ() (Record, error) {
	if !p.hasPending {
		line, off, err := p.nextFASTQHeader()
		if errors.Is(err, io.EOF) {
			p.state = stateEnd
			return Record{}, io.EOF
		}
		if err != nil {
			return p.fail(err)
		}
		p.setPending(line[1:], off)
	}
	p.takePending()

	// Sequence block, up to the '+' separator.
	for {
		off := p.buf.Offset()
		line, err := p.buf.ReadLine()
		if errors.Is(err, io.EOF) {
			return p.fail(errs.NewFormatError(errs.ErrTruncatedRecord, p.records+1, p.headerOffset, p.header.B))
		}
		if err != nil {
			return p.fail(p.readError(err, off))
		}
		if len(line) > 0 && line[0] == '+' {
			break
		}
		p.appendSeq(line)
	}

	// Quality block: at least one line, even an empty one for an empty sequence,
	// then more lines until it is as long as the sequence.
	for first := true; first || p.qual.Len() < p.seq.Len(); first = false {
		off := p.buf.Offset()
		line, err := p.buf.ReadLine()
		if errors.Is(err, io.EOF) {
			if p.seq.Len() == 0 {
				p.state = stateEnd
				break
			}
			kind := errs.ErrQualityLengthMismatch
			if p.qual.Len() == 0 {
				kind = errs.ErrTruncatedRecord
			}

			return p.fail(errs.NewFormatError(kind, p.records+1, p.headerOffset, p.header.B))
		}
		if err != nil {
			return p.fail(p.readError(err, off))
		}
		if p.qual.Len()+len(line) > p.seq.Len() {
			return p.fail(errs.NewFormatError(errs.ErrQualityLengthMismatch, p.records+1, off, line))
		}
		_, _ = p.qual.Write(line)
	}

	return p.emit(true)
}

// nextNonBlank returns the next line containing anything besides spaces and tabs,
// with the offset of its first byte.
func (p *Parser) nextNonBlank() ([]byte, int64, error) {
	for {
		off := p.buf.Offset()
		line, err := p.buf.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil, off, io.EOF
		}
		if err != nil {
			return nil, off, p.readError(err, off)
		}
		if len(bytes.TrimLeft(line, " \t")) > 0 {
			return line, off, nil
		}
	}
}

// nextFASTQHeader returns the header line of the next FASTQ record, without leading
// spaces and tabs. Blank lines are accepted only when nothing but blank lines follows
// them; a record after a blank line fails at the first blank line.
func (p *Parser) nextFASTQHeader() ([]byte, int64, error) {
	blank := int64(-1)
	for {
		off := p.buf.Offset()
		line, err := p.buf.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil, off, io.EOF
		}
		if err != nil {
			return nil, off, p.readError(err, off)
		}

		line = bytes.TrimLeft(line, " \t")
		switch {
		case len(line) == 0:
			if blank < 0 {
				blank = off
			}
		case blank >= 0:
			return nil, blank, errs.NewFormatError(errs.ErrUnrecognizedLeadingByte, p.records+1, blank, nil)
		case line[0] != '@':
			return nil, off, errs.NewFormatError(errs.ErrUnrecognizedLeadingByte, p.records+1, off, line)
		default:
			return line, off, nil
		}
	}
}

func (p *Parser) setPending(header []byte, off int64) {
	p.pending.Reset()
	_, _ = p.pending.Write(header)
	p.pendingOffset = off
	p.hasPending = true
}

// takePending makes the read-ahead header current and clears the record body.
func (p *Parser) takePending() {
	p.header, p.pending = p.pending, p.header
	p.headerOffset = p.pendingOffset
	p.hasPending = false
	p.seq.Reset()
	p.qual.Reset()
}

func (p *Parser) appendSeq(line []byte) {
	start := p.seq.Len()
	_, _ = p.seq.Write(line)
	if !p.cfg.uppercase {
		return
	}
	s := p.seq.B[start:]
	for i, c := range s {
		if c >= 'a' && c <= 'z' {
			s[i] = c - ('a' - 'A')
		}
	}
}

func (p *Parser) emit(withQual bool) (Record, error) {
	id, desc := splitHeader(p.header.B)
	p.records++

	rec := Record{
		Header: clip(bytes.TrimLeft(p.header.B, " \t")),
		ID:     clip(id),
		Desc:   clip(desc),
		Seq:    clip(p.seq.B),
	}
	if withQual {
		rec.Qual = clip(p.qual.B)
	}

	return rec, nil
}

// readError turns buffer-level failures into located errors. Source errors already
// carry their offset and pass through unchanged.
func (p *Parser) readError(err error, off int64) error {
	if errors.Is(err, errs.ErrLineTooLong) {
		return errs.NewFormatError(errs.ErrLineTooLong, p.records+1, off, nil)
	}

	return err
}

func (p *Parser) fail(err error) (Record, error) {
	p.state = stateError
	p.err = err

	return Record{}, err
}

// clip caps a view at its length so appends by the caller cannot reach parser storage.
func clip(b []byte) []byte {
	return b[:len(b):len(b)]
}
