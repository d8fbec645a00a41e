package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of a k-mer (or any byte window).
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
