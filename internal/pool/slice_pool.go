package pool

import "sync"

// Int32SliceMaxThreshold is the largest slice, in elements, kept for reuse.
// Larger slices are left to the garbage collector when released.
const Int32SliceMaxThreshold = 1 << 20

// int32SlicePool holds the position chains used by the LZ77 match finder.
var int32SlicePool = sync.Pool{
	New: func() any { return &[]int32{} },
}

// GetInt32Slice retrieves an int32 slice from the pool with the specified length.
//
// The contents are not cleared. Slices with a capacity above
// Int32SliceMaxThreshold are not returned to the pool.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []int32: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer) to return the slice to the pool
//
// Example:
//
//	prev, cleanup := pool.GetInt32Slice(len(src))
//	defer cleanup()
func GetInt32Slice(size int) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		if cap(*ptr) > Int32SliceMaxThreshold {
			return
		}
		int32SlicePool.Put(ptr)
	}
}
