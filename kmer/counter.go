package kmer

import (
	"fmt"
	"iter"
	"maps"

	"github.com/arloliu/kmerio/errs"
	"github.com/arloliu/kmerio/internal/collision"
	"github.com/arloliu/kmerio/internal/hash"
)

// Counter tallies k-mer occurrences across sequences.
//
// With a packed or canonical engine the key is the packed value, which is exact.
// With a raw engine the key is the xxHash64 of the k-mer bytes; every key remembers
// the first k-mer it was produced by, and a second k-mer hashing to the same key is
// rejected with errs.ErrHashCollision instead of being merged. Raw mode therefore
// stores each distinct k-mer once as a string next to its count, which costs as much
// memory as a string-keyed map; the hashed keys give All and Merge fixed-size keys
// shared with the packed modes.
//
// A Counter is not safe for concurrent use. Count per goroutine and Merge.
type Counter struct {
	engine  *Engine
	counts  map[uint64]uint64
	tracker *collision.Tracker // raw engines only
	total   uint64
}

// NewCounter creates an empty counter over the k-mers e produces.
func NewCounter(e *Engine) *Counter {
	c := &Counter{
		engine: e,
		counts: make(map[uint64]uint64),
	}
	if !e.Packed() {
		c.tracker = collision.NewTracker()
	}

	return c
}

// Add counts every k-mer the engine yields for seq.
// The first hash collision aborts the call; k-mers before it stay counted.
func (c *Counter) Add(seq []byte) error {
	for km := range c.engine.Kmers(seq) {
		key := km.Value
		if c.tracker != nil {
			key = hash.Bytes(km.Seq)
			if err := c.tracker.Track(km.Seq, key); err != nil {
				return fmt.Errorf("k-mer %q at position %d: %w", km.Seq, km.Pos, err)
			}
		}
		c.counts[key]++
		c.total++
	}

	return nil
}

// Key returns the counting key of kmer. ok is false when kmer has the wrong length,
// or cannot be packed by a packed engine.
func (c *Counter) Key(kmer []byte) (key uint64, ok bool) {
	k := c.engine.K()
	if len(kmer) != k {
		return 0, false
	}
	if c.tracker != nil {
		return hash.Bytes(kmer), true
	}

	v, ok := Pack(kmer)
	if !ok {
		return 0, false
	}
	if c.engine.Canonical() {
		v, _ = CanonicalPacked(v, k)
	}

	return v, true
}

// Count returns how often kmer was seen. In canonical mode a k-mer and its reverse
// complement share one count.
func (c *Counter) Count(kmer []byte) uint64 {
	key, ok := c.Key(kmer)
	if !ok {
		return 0
	}
	if c.tracker != nil {
		if first, seen := c.tracker.Lookup(key); !seen || first != string(kmer) {
			return 0
		}
	}

	return c.counts[key]
}

// Distinct returns the number of distinct keys.
func (c *Counter) Distinct() int { return len(c.counts) }

// Total returns the number of k-mers counted.
func (c *Counter) Total() uint64 { return c.total }

// Collisions returns the number of k-mers rejected for hash collisions.
func (c *Counter) Collisions() int {
	if c.tracker == nil {
		return 0
	}

	return c.tracker.Collisions()
}

// All iterates over (key, count) pairs in unspecified order.
func (c *Counter) All() iter.Seq2[uint64, uint64] {
	return maps.All(c.counts)
}

// Merge adds the counts of other, which must have been built on an engine with the
// same k and mode. Merge is all or nothing: if any k-mer of other collides with a
// different k-mer of c, c is left unchanged.
func (c *Counter) Merge(other *Counter) error {
	if other.engine.K() != c.engine.K() || other.engine.Packed() != c.engine.Packed() ||
		other.engine.Canonical() != c.engine.Canonical() {
		return fmt.Errorf("cannot merge counters of different engines")
	}

	if c.tracker != nil {
		for key := range other.counts {
			first, _ := other.tracker.Lookup(key)
			if mine, ok := c.tracker.Lookup(key); ok && mine != first {
				return fmt.Errorf("k-mer %q: %w", first, errs.ErrHashCollision)
			}
		}
	}

	for key, n := range other.counts {
		if c.tracker != nil {
			first, _ := other.tracker.Lookup(key)
			_ = c.tracker.Track([]byte(first), key) // checked above
		}
		c.counts[key] += n
	}
	c.total += other.total

	return nil
}

// Reset empties the counter, keeping its allocations.
func (c *Counter) Reset() {
	clear(c.counts)
	c.total = 0
	if c.tracker != nil {
		c.tracker.Reset()
	}
}
