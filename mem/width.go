package mem

import (
	"math/bits"
	"strconv"
	"unsafe"
)

// WordWidth is the number of bytes written by a single bulk store.
type WordWidth uint8

// Supported word widths.
const (
	Width8  WordWidth = 1
	Width16 WordWidth = 2
	Width32 WordWidth = 4
	Width64 WordWidth = 8

	// NativeWordWidth is the width of a uintptr on the build target. It is
	// only a default; the generic fillers accept any supported width.
	NativeWordWidth = WordWidth(unsafe.Sizeof(uintptr(0)))

	maxWordWidth = Width64
)

// Valid returns true if w is a power of two that a single store can write.
func (w WordWidth) Valid() bool {
	return w != 0 && w <= maxWordWidth && w&(w-1) == 0
}

// Mask returns the bit mask selecting the offset of an address within a word.
func (w WordWidth) Mask() uintptr {
	return uintptr(w) - 1
}

// Shift returns log2(w).
func (w WordWidth) Shift() uint {
	return uint(bits.TrailingZeros8(uint8(w)))
}

// Bits returns the width in bits.
func (w WordWidth) Bits() uint {
	return uint(w) << 3
}

func (w WordWidth) String() string {
	return strconv.Itoa(int(w.Bits())) + "-bit"
}
