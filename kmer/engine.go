package kmer

import (
	"fmt"
	"iter"

	"github.com/arloliu/kmerio/alphabet"
	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/internal/options"
)

// MaxPackedK is the largest k a uint64 can hold at 2 bits per base.
const MaxPackedK = 32

// Strand tells which orientation a canonical k-mer was taken from.
type Strand uint8

const (
	// Forward means the k-mer is reported as read.
	Forward Strand = iota
	// Reverse means its reverse complement was smaller and is reported instead.
	Reverse
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}

	return "+"
}

// Kmer is one window of a sequence.
type Kmer struct {
	// Pos is the 0-based start of the window in the sequence.
	Pos int
	// Seq is a view of the forward-strand bytes seq[Pos:Pos+k]. It aliases the input
	// sequence and is capped so appends cannot overwrite it.
	Seq []byte
	// Value is the 2-bit packed k-mer, or its reverse complement when Strand is
	// Reverse. Zero in raw mode.
	Value uint64
	// Strand is always Forward outside canonical mode.
	Strand Strand
}

// Engine extracts k-mers and minimizers from sequences. An Engine holds no per-sequence
// state: it is safe for concurrent use, and each iterator it returns is independent.
type Engine struct {
	cfg      Config
	mask     uint64 // low 2k bits
	revShift uint   // bit position of the first base in a reverse-complement value
}

// NewEngine creates an engine for k-mers of length k.
//
// Parameters:
//   - k: K-mer length, >= 1; at most MaxPackedK in packed or canonical mode, or when a
//     minimizer window is configured
//   - opts: Optional configuration functions (see Option)
//
// Returns:
//   - *Engine: The configured engine
//   - error: errs.ErrInvalidKmerLength, errs.ErrInvalidWindowSize or another invalid option
func NewEngine(k int, opts ...Option) (*Engine, error) {
	cfg := Config{
		k:          k,
		complement: alphabet.DefaultComplement,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", errs.ErrInvalidKmerLength, k)
	}
	if k > MaxPackedK && (cfg.canonical || cfg.packed || cfg.window > 0) {
		return nil, fmt.Errorf("%w: k=%d exceeds %d for packed k-mers", errs.ErrInvalidKmerLength, k, MaxPackedK)
	}

	e := &Engine{cfg: cfg}
	if k <= MaxPackedK {
		e.mask = ^uint64(0) >> (64 - 2*uint(k))
		e.revShift = 2 * uint(k-1)
	}

	return e, nil
}

// K returns the k-mer length.
func (e *Engine) K() int { return e.cfg.k }

// Canonical reports whether the engine runs in canonical mode.
func (e *Engine) Canonical() bool { return e.cfg.canonical }

// Packed reports whether k-mers carry a packed Value, which is the case in packed and
// canonical mode.
func (e *Engine) Packed() bool { return e.cfg.packed || e.cfg.canonical }

// Window returns the minimizer window width, 1 when none was configured.
func (e *Engine) Window() int {
	if e.cfg.window == 0 {
		return 1
	}

	return e.cfg.window
}

// Complement returns the complement table used by the byte-wise helpers.
func (e *Engine) Complement() *alphabet.ComplementTable { return e.cfg.complement }

// Windows returns the number of k-length windows in a sequence of length n, whether
// or not they are emitted.
func (e *Engine) Windows(n int) int {
	if n < e.cfg.k {
		return 0
	}

	return n - e.cfg.k + 1
}

// Kmers returns a lazy iterator over the k-mers of seq in increasing position.
//
// In raw mode every window is yielded, including ones with non-ACGT bytes. In packed
// and canonical mode windows touching a non-ACGT byte are skipped. A sequence shorter
// than k yields nothing. seq must not change while the iterator runs.
func (e *Engine) Kmers(seq []byte) iter.Seq[Kmer] {
	if !e.Packed() {
		return e.rawKmers(seq)
	}

	return e.packedKmers(seq, e.cfg.canonical)
}

// CanonicalBytes appends the byte-wise canonical form of kmer to dst using the engine's
// complement table. See CanonicalBytes at package level.
func (e *Engine) CanonicalBytes(dst, kmer []byte) ([]byte, Strand) {
	return CanonicalBytes(dst, kmer, e.cfg.complement)
}

func (e *Engine) rawKmers(seq []byte) iter.Seq[Kmer] {
	k := e.cfg.k

	return func(yield func(Kmer) bool) {
		for pos := 0; pos+k <= len(seq); pos++ {
			if !yield(Kmer{Pos: pos, Seq: seq[pos : pos+k : pos+k]}) {
				return
			}
		}
	}
}

// packedKmers rolls forward and reverse-complement values one base at a time.
// A non-ACGT byte resets both, so windows across it are never formed.
func (e *Engine) packedKmers(seq []byte, canonical bool) iter.Seq[Kmer] {
	k := e.cfg.k
	mask, revShift := e.mask, e.revShift

	return func(yield func(Kmer) bool) {
		var fwd, rev uint64
		run := 0 // valid bases ending at i

		for i, b := range seq {
			code := alphabet.Code2Bit[b]
			if code == alphabet.Invalid2Bit {
				fwd, rev, run = 0, 0, 0
				continue
			}

			fwd = (fwd<<2 | uint64(code)) & mask
			rev = rev>>2 | uint64(3-code)<<revShift
			if run++; run < k {
				continue
			}

			pos := i - k + 1
			km := Kmer{Pos: pos, Seq: seq[pos : i+1 : i+1], Value: fwd}
			if canonical && rev < fwd {
				km.Value = rev
				km.Strand = Reverse
			}
			if !yield(km) {
				return
			}
		}
	}
}
