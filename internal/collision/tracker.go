package collision

import (
	"github.com/arloliu/kmerio/errs"
)

// Tracker remembers which k-mer first produced each 64-bit hash key so that two
// distinct k-mers folded onto the same key are detected instead of silently merged.
type Tracker struct {
	seen       map[uint64]string // hash → first k-mer seen with it
	collisions int
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seen: make(map[uint64]string),
	}
}

// Track records kmer under hash.
// Returns errs.ErrHashCollision if a different k-mer was already tracked under the
// same hash; tracking the same k-mer again is not an error.
func (t *Tracker) Track(kmer []byte, hash uint64) error {
	if existing, ok := t.seen[hash]; ok {
		if existing != string(kmer) {
			t.collisions++
			return errs.ErrHashCollision
		}

		return nil
	}

	t.seen[hash] = string(kmer)

	return nil
}

// Lookup returns the k-mer tracked under hash.
func (t *Tracker) Lookup(hash uint64) (string, bool) {
	kmer, ok := t.seen[hash]
	return kmer, ok
}

// Collisions returns the number of rejected colliding k-mers.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Reset clears all tracked k-mers and collision state, keeping map capacity.
func (t *Tracker) Reset() {
	clear(t.seen)
	t.collisions = 0
}
