package kmer

import (
	"bytes"

	"github.com/arloliu/kmerio/alphabet"
)

// Pack encodes kmer at 2 bits per base, first base in the highest bits.
// It returns false if kmer is empty, longer than MaxPackedK, or holds a byte outside
// {A,C,G,T} (either case).
func Pack(kmer []byte) (uint64, bool) {
	if len(kmer) == 0 || len(kmer) > MaxPackedK {
		return 0, false
	}

	var v uint64
	for _, b := range kmer {
		code := alphabet.Code2Bit[b]
		if code == alphabet.Invalid2Bit {
			return 0, false
		}
		v = v<<2 | uint64(code)
	}

	return v, true
}

// Unpack appends the k upper-case bases encoded in value to dst.
func Unpack(dst []byte, value uint64, k int) []byte {
	for i := k - 1; i >= 0; i-- {
		dst = append(dst, alphabet.Base2Bit[(value>>(2*uint(i)))&3])
	}

	return dst
}

// ReverseComplementPacked returns the packed reverse complement of a packed k-mer.
func ReverseComplementPacked(value uint64, k int) uint64 {
	var rc uint64
	for range k {
		rc = rc<<2 | (3 - value&3)
		value >>= 2
	}

	return rc
}

// CanonicalPacked returns the smaller of value and its reverse complement, with the
// strand it came from. Ties keep the forward strand.
func CanonicalPacked(value uint64, k int) (uint64, Strand) {
	if rc := ReverseComplementPacked(value, k); rc < value {
		return rc, Reverse
	}

	return value, Forward
}

// CanonicalBytes appends to dst the lexicographically smaller of kmer and its reverse
// complement under t, and reports which was chosen. Ties, such as palindromes, keep
// the forward strand. A nil table selects alphabet.DefaultComplement.
//
// For upper-case ACGT input the result agrees with the packed canonical value:
// A<C<G<T in both byte order and 2-bit code order.
func CanonicalBytes(dst, kmer []byte, t *alphabet.ComplementTable) ([]byte, Strand) {
	start := len(dst)
	dst = alphabet.ReverseComplement(dst, kmer, t)
	if bytes.Compare(dst[start:], kmer) < 0 {
		return dst, Reverse
	}

	return append(dst[:start], kmer...), Forward
}
