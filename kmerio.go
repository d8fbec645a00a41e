// Package kmerio reads FASTA and FASTQ records from plain or compressed streams and
// extracts k-mers and minimizers from their sequences.
//
// Kmerio is built as three layers that each own one concern:
//
//   - compress: detects gzip, bzip2, xz, zstd, lz4 or s2 from the leading bytes and
//     decompresses transparently
//   - fastx: a fail-fast FASTA/FASTQ parser over a line buffer that hands out borrowed
//     record views without copying
//   - kmer: sliding k-mer windows in raw, packed or canonical mode, with minimizers
//
// # Core Features
//
//   - Format and compression detection, no file extension needed
//   - Zero-copy records, with Record.Clone for the ones you keep
//   - Precise errors: format, I/O and corrupt-compressed-data failures are distinct
//     and carry the record number and byte offset
//   - Rolling 2-bit k-mer packing for k <= 32 and O(1) amortised minimizers
//
// # Basic Usage
//
//	parser, err := kmerio.Open(file)
//	if err != nil {
//	    return err
//	}
//	defer parser.Close()
//
//	engine, err := kmerio.NewCanonicalEngine(21)
//	if err != nil {
//	    return err
//	}
//
//	for rec, err := range parser.All() {
//	    if err != nil {
//	        return err
//	    }
//	    for km := range engine.Kmers(rec.Seq) {
//	        counts[km.Value]++
//	    }
//	}
//
// # Package Structure
//
// This package holds convenience wrappers for the common cases. Use the fastx and
// kmer packages directly for full control.
package kmerio

import (
	"io"

	"github.com/arloliu/kmerio/fastx"
	"github.com/arloliu/kmerio/kmer"
)

// Open creates a parser over r with detected compression and record format.
//
// Parameters:
//   - r: The input stream; it is not closed by the parser
//   - opts: Optional configuration functions (see fastx.Option)
//
// Returns:
//   - *fastx.Parser: The parser. Call Close when done.
//   - error: An invalid option or an unreadable stream
//
// Example:
//
//	f, _ := os.Open("reads.fq.gz")
//	defer f.Close()
//	parser, err := kmerio.Open(f, fastx.WithUppercase())
func Open(r io.Reader, opts ...fastx.Option) (*fastx.Parser, error) {
	return fastx.NewParser(r, opts...)
}

// ReadAll parses every record of r and returns owned copies.
// Intended for small inputs and tests; large inputs should iterate with Open.
//
// On error the records parsed before the failure are returned with it.
func ReadAll(r io.Reader, opts ...fastx.Option) ([]fastx.Record, error) {
	parser, err := fastx.NewParser(r, opts...)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	var records []fastx.Record
	for rec, err := range parser.All() {
		if err != nil {
			return records, err
		}
		records = append(records, rec.Clone())
	}

	return records, nil
}

// NewEngine creates a k-mer engine with custom options.
//
// Available options:
//   - kmer.WithCanonical(true|false)
//   - kmer.WithPacked(true|false)
//   - kmer.WithWindow(w)
//   - kmer.WithComplementTable(t)
func NewEngine(k int, opts ...kmer.Option) (*kmer.Engine, error) {
	return kmer.NewEngine(k, opts...)
}

// NewCanonicalEngine creates an engine reporting canonical packed k-mers, the usual
// choice for counting since a k-mer and its reverse complement are merged.
func NewCanonicalEngine(k int, opts ...kmer.Option) (*kmer.Engine, error) {
	return kmer.NewEngine(k, append([]kmer.Option{kmer.WithCanonical(true)}, opts...)...)
}

// NewMinimizerEngine creates a canonical engine with minimizer window width w.
func NewMinimizerEngine(k, w int, opts ...kmer.Option) (*kmer.Engine, error) {
	return kmer.NewEngine(k, append([]kmer.Option{kmer.WithCanonical(true), kmer.WithWindow(w)}, opts...)...)
}
