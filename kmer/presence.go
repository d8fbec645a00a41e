package kmer

import (
	"fmt"

	"github.com/willf/bitset"

	"github.com/arloliu/kmerio/errs"
)

// MaxPresenceK bounds PresenceSet: 4^14 bits is 32 MiB.
const MaxPresenceK = 14

// PresenceSet records which packed k-mers occur, one bit per possible k-mer.
// It suits small k, where it is far denser than a map, and supports fast set
// similarity between samples.
type PresenceSet struct {
	k    int
	bits *bitset.BitSet
}

// NewPresenceSet allocates a set for k-mers of length 1 <= k <= MaxPresenceK.
func NewPresenceSet(k int) (*PresenceSet, error) {
	if k <= 0 || k > MaxPresenceK {
		return nil, fmt.Errorf("%w: k=%d, presence sets support 1..%d", errs.ErrInvalidKmerLength, k, MaxPresenceK)
	}

	return &PresenceSet{
		k:    k,
		bits: bitset.New(uint(1) << (2 * uint(k))),
	}, nil
}

// K returns the k-mer length.
func (s *PresenceSet) K() int { return s.k }

// Add marks a packed k-mer as present. Values beyond 4^k are ignored.
func (s *PresenceSet) Add(value uint64) {
	if value < 1<<(2*uint(s.k)) {
		s.bits.Set(uint(value))
	}
}

// AddSequence marks every k-mer e yields for seq. e must be a packed or canonical
// engine with the same k.
func (s *PresenceSet) AddSequence(e *Engine, seq []byte) error {
	if !e.Packed() || e.K() != s.k {
		return fmt.Errorf("%w: presence set needs a packed engine with k=%d", errs.ErrInvalidKmerLength, s.k)
	}
	for km := range e.Kmers(seq) {
		s.bits.Set(uint(km.Value))
	}

	return nil
}

// Contains reports whether a packed k-mer was added.
func (s *PresenceSet) Contains(value uint64) bool {
	return value < 1<<(2*uint(s.k)) && s.bits.Test(uint(value))
}

// Len returns the number of distinct k-mers present.
func (s *PresenceSet) Len() int {
	return int(s.bits.Count())
}

// Jaccard returns |a ∩ b| / |a ∪ b| of two sets with the same k.
// Two empty sets have similarity 0.
func (s *PresenceSet) Jaccard(other *PresenceSet) (float64, error) {
	if other.k != s.k {
		return 0, fmt.Errorf("%w: k=%d vs k=%d", errs.ErrInvalidKmerLength, s.k, other.k)
	}

	union := s.bits.UnionCardinality(other.bits)
	if union == 0 {
		return 0, nil
	}

	return float64(s.bits.IntersectionCardinality(other.bits)) / float64(union), nil
}

// Reset clears the set.
func (s *PresenceSet) Reset() {
	s.bits.ClearAll()
}
