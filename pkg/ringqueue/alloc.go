package ringqueue

import (
	"fmt"
	"math"
	"math/bits"
)

// storageSize returns n*size in bytes, or ErrAllocation if it overflows an int.
func storageSize(n, size int) (int, error) {
	hi, lo := bits.Mul64(uint64(n), uint64(size))
	if hi != 0 || lo > math.MaxInt {
		return 0, fmt.Errorf("%w: %d slots of %d bytes", ErrAllocation, n, size)
	}
	return int(lo), nil
}

// allocate makes a zeroed slice of n elements, turning the runtime's
// out-of-range panic into ErrAllocation.
func allocate[T any](n int) (s []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return make([]T, n), nil
}
