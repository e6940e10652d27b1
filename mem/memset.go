package mem

import "unsafe"

// Memset sets size bytes at the given address to the supplied value. Instead
// of a byte loop it makes log2(size) copy calls, each one doubling the filled
// prefix. It is the reference the other fillers are verified against.
func Memset(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	if size == 0 {
		return dst, nil
	}

	// overlay a slice on top of this address region
	target := unsafe.Slice((*byte)(dst), size)

	// Set first element and make log2(size) optimized copies
	target[0] = byte(value)
	for index := Size(1); index < size; index *= 2 {
		copy(target[index:], target[:index])
	}

	return dst, nil
}
