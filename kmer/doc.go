// Package kmer slides fixed-length windows ("k-mers") over a sequence.
//
// # Modes
//
// An Engine runs in one of three modes, fixed at construction:
//
//   - Raw (default): every window is emitted as a byte view into the sequence, including
//     windows containing N or other non-ACGT bytes. Any k >= 1.
//   - Packed (WithPacked): each k-mer is also encoded as a uint64 at 2 bits per base
//     (A=00, C=01, G=10, T=11), updated in O(1) per step. Windows touching a byte
//     outside {A,C,G,T} (either case) are skipped. 1 <= k <= 32.
//   - Canonical (WithCanonical): packed, and each k-mer is reported as the smaller of
//     itself and its reverse complement, with the chosen strand. A palindromic k-mer
//     keeps its forward orientation.
//
// Configuration errors, such as k = 0, are returned by NewEngine before any sequence
// is processed.
//
// # Iteration
//
// Kmers and Minimizers return lazy, restartable iterators. K-mers come out in strictly
// increasing start position and never outlive the sequence they view:
//
//	engine, err := kmer.NewEngine(21, kmer.WithCanonical(true), kmer.WithWindow(11))
//	if err != nil {
//	    return err
//	}
//	for km := range engine.Kmers(rec.Seq) {
//	    counts[km.Value]++
//	}
//	for m := range engine.Minimizers(rec.Seq) {
//	    fmt.Println(m.Pos, m.Value)
//	}
//
// # Reference path
//
// Packing is an optimisation. CanonicalBytes works on plain bytes with a configurable
// complement table and serves as the reference the packed path is tested against.
package kmer
