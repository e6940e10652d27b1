package mem

import "unsafe"

// FillBytes sets size bytes starting at dst one byte at a time. It makes no
// assumptions about the alignment of dst or size.
func FillBytes(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	store(dst, byte(value&0xff), size)
	return dst, nil
}
