package kmer

import (
	"iter"

	"github.com/arloliu/kmerio/internal/pool"
)

// Minimizer is the smallest canonical k-mer of one window of w consecutive k-mers.
type Minimizer struct {
	Kmer
	// Window is the start position of the first k-mer of the window.
	Window int
}

// Minimizers returns a lazy iterator yielding one minimizer per window slide.
//
// A window is w canonical k-mers at consecutive positions, w being the configured
// window width (1 by default). Windows containing a skipped k-mer, one that touches
// a non-ACGT byte, are not formed; the scan restarts after it. Within a window the
// smallest packed value wins and ties go to the earliest position. Minimizers are
// canonical whatever the engine mode.
//
// Each window is resolved in amortised O(1) with a monotonic deque. An engine built
// with k > MaxPackedK (raw mode, no window) yields nothing.
func (e *Engine) Minimizers(seq []byte) iter.Seq[Minimizer] {
	k, w := e.cfg.k, e.Window()

	return func(yield func(Minimizer) bool) {
		if k > MaxPackedK {
			return
		}

		// Ring deque of candidates, values increasing front to back.
		values, releaseValues := pool.GetUint64Slice(w)
		defer releaseValues()
		slots, releaseSlots := pool.GetIntSlice(w) // pos<<1 | strand
		defer releaseSlots()

		head, size := 0, 0
		run := 0 // consecutive k-mers ending at the current one
		last := -2

		for km := range e.packedKmers(seq, true) {
			if km.Pos != last+1 {
				head, size, run = 0, 0, 0
			}
			last = km.Pos
			run++

			// Expire the front, then drop larger values from the back. Equal values
			// stay so the earlier position keeps priority.
			for size > 0 && slots[head]>>1 <= km.Pos-w {
				head = (head + 1) % w
				size--
			}
			for size > 0 && values[(head+size-1)%w] > km.Value {
				size--
			}
			tail := (head + size) % w
			values[tail] = km.Value
			slots[tail] = km.Pos<<1 | int(km.Strand)
			size++

			if run < w {
				continue
			}

			pos := slots[head] >> 1
			m := Minimizer{
				Kmer: Kmer{
					Pos:    pos,
					Seq:    seq[pos : pos+k : pos+k],
					Value:  values[head],
					Strand: Strand(slots[head] & 1),
				},
				Window: km.Pos - w + 1,
			}
			if !yield(m) {
				return
			}
		}
	}
}
