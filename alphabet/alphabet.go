// Package alphabet holds nucleotide lookup tables: the configurable complement table
// used for reverse complements and the 2-bit codes used for packing k-mers.
package alphabet

import (
	"maps"
	"slices"
)

// ComplementTable maps every byte to its complement.
//
// A table used for canonicalisation should be an involution (complementing twice is
// the identity); IsInvolution checks that.
type ComplementTable [256]byte

// Invalid2Bit marks bytes outside {A,C,G,T} (either case) in Code2Bit.
const Invalid2Bit = 0xff

// Code2Bit maps A=0, C=1, G=2, T=3 (upper or lower case); every other byte maps to
// Invalid2Bit.
var Code2Bit [256]byte

// Base2Bit maps a 2-bit code back to its upper-case base.
var Base2Bit = [4]byte{'A', 'C', 'G', 'T'}

// DefaultComplement is the IUPAC complement table: A/T, C/G, R/Y, K/M, B/V and D/H
// swap; S, W and N are their own complement; lower case mirrors upper case. Every
// other byte maps to itself.
var DefaultComplement = NewComplementTable(map[byte]byte{
	'A': 'T', 'C': 'G', 'R': 'Y', 'K': 'M', 'B': 'V', 'D': 'H',
	'S': 'S', 'W': 'W', 'N': 'N',
})

func init() {
	for i := range Code2Bit {
		Code2Bit[i] = Invalid2Bit
	}
	for code, base := range Base2Bit {
		Code2Bit[base] = byte(code)
		Code2Bit[base+'a'-'A'] = byte(code)
	}
}

// NewComplementTable builds a table from base pairs. Each pair is installed in both
// directions and for both cases of letters; unlisted bytes map to themselves.
//
// Example:
//
//	// Map every ambiguity code to N instead of its IUPAC complement.
//	t := alphabet.NewComplementTable(map[byte]byte{
//	    'A': 'T', 'C': 'G', 'N': 'N', 'R': 'N', 'Y': 'N',
//	})
//
// A table where several bytes map onto one (like 'R'→'N' above) is not an involution.
func NewComplementTable(pairs map[byte]byte) *ComplementTable {
	var (
		t        ComplementTable
		explicit [256]bool
	)
	for i := range t {
		t[i] = byte(i)
	}

	keys := slices.Sorted(maps.Keys(pairs))
	for _, a := range keys {
		b := pairs[a]
		t.set(a, b, &explicit)
		t.set(lower(a), lower(b), &explicit)
	}
	// The reverse direction never overrides an explicit entry; when several keys map
	// to the same base, the smallest key wins.
	for _, a := range keys {
		b := pairs[a]
		if !explicit[b] {
			t.set(b, a, &explicit)
			t.set(lower(b), lower(a), &explicit)
		}
	}

	return &t
}

func (t *ComplementTable) set(a, b byte, explicit *[256]bool) {
	t[a] = b
	explicit[a] = true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}

// Complement returns the complement of a single base.
func (t *ComplementTable) Complement(b byte) byte {
	return t[b]
}

// IsInvolution reports whether complementing any byte twice yields the byte itself.
func (t *ComplementTable) IsInvolution() bool {
	for i := range t {
		if t[t[i]] != byte(i) {
			return false
		}
	}

	return true
}

// ReverseComplement appends the reverse complement of seq to dst and returns the
// extended slice. Only the output is allocated, and only if dst lacks capacity.
// A nil table selects DefaultComplement.
func ReverseComplement(dst, seq []byte, t *ComplementTable) []byte {
	if t == nil {
		t = DefaultComplement
	}

	start := len(dst)
	dst = slices.Grow(dst, len(seq))[:start+len(seq)]
	out := dst[start:]
	n := len(seq)
	for i, b := range seq {
		out[n-1-i] = t[b]
	}

	return dst
}

// IsACGT reports whether b is one of A, C, G, T in either case.
func IsACGT(b byte) bool {
	return Code2Bit[b] != Invalid2Bit
}
