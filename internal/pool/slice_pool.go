package pool

import "sync"

// Slice pools for the fixed-size rings used by sliding-window scans.
var (
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetUint64Slice retrieves and resizes a uint64 slice from the pool.
//
// The returned slice will have the exact length specified by the size parameter.
// If the pooled slice has insufficient capacity, a new slice will be allocated.
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []uint64: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	values, cleanup := pool.GetUint64Slice(w)
//	defer cleanup()
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { uint64SlicePool.Put(ptr) }
}

// GetIntSlice retrieves and resizes an int slice from the pool.
// See GetUint64Slice for the contract.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}
