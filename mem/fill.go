package mem

import "unsafe"

// FillFunc sets size bytes starting at dst to the low byte of value and
// returns dst. A non-nil error means the request was rejected before any
// byte was written.
type FillFunc func(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error)

var (
	_ FillFunc = Memset
	_ FillFunc = FillBytes
	_ FillFunc = FillWords32
	_ FillFunc = FillUnaligned32
	_ FillFunc = FillWords
	_ FillFunc = FillUnaligned
)

type word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// store writes count copies of x starting at p.
func store[T word](p unsafe.Pointer, x T, count Size) {
	if count == 0 {
		return
	}

	words := unsafe.Slice((*T)(p), count)
	for i := range words {
		words[i] = x
	}
}

// storeWords writes count words of the given width holding pattern.
func storeWords(p unsafe.Pointer, pattern uint64, width WordWidth, count Size) {
	switch width {
	case Width8:
		store(p, uint8(pattern), count)
	case Width16:
		store(p, uint16(pattern), count)
	case Width32:
		store(p, uint32(pattern), count)
	default:
		store(p, pattern, count)
	}
}
