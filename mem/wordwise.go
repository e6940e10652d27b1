package mem

import "unsafe"

var nativeFiller = &WordFiller{width: NativeWordWidth}

// FillWords32 sets size bytes starting at dst one 32-bit word at a time.
// size must be a multiple of 4 and dst is expected to be 4-byte aligned;
// an unaligned dst is still filled correctly but gains nothing over a byte
// loop.
func FillWords32(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	if size&3 != 0 {
		return dst, ErrSizeNotWordMultiple
	}

	store(dst, pattern32(value), size>>2)
	return dst, nil
}

// FillUnaligned32 sets size bytes starting at dst using 32-bit stores for the
// aligned part of the region. Both dst and size may be arbitrary.
func FillUnaligned32(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	if size == 0 {
		return dst, nil
	}

	var (
		buf = unsafe.Slice((*byte)(dst), size)
		x   = byte(value & 0xff)
		i   Size
	)

	// Prologue: advance byte by byte to the next 4-byte boundary.
	for ; i < size && (uintptr(dst)+uintptr(i))&3 != 0; i++ {
		buf[i] = x
	}
	if i == size {
		return dst, nil
	}

	// The body consumes whole words only; tail is what is left after it.
	remaining := size - i
	tail := remaining & 3

	store(unsafe.Pointer(&buf[i]), pattern32(value), remaining>>2)
	i += remaining &^ 3

	// Epilogue.
	for ; tail > 0; tail-- {
		buf[i] = x
		i++
	}

	return dst, nil
}

// WordFiller fills memory using stores of a configurable word width so the
// same logic can be exercised for any architecture word size.
type WordFiller struct {
	width WordWidth
}

// NewWordFiller returns a WordFiller that uses stores of the given width.
func NewWordFiller(width WordWidth) (*WordFiller, error) {
	if !width.Valid() {
		return nil, ErrUnsupportedWordWidth
	}

	return &WordFiller{width: width}, nil
}

// Width returns the store width used by f.
func (f *WordFiller) Width() WordWidth {
	return f.width
}

// Fill sets size bytes starting at dst one word at a time. size must be a
// multiple of the word width and dst is expected to be word aligned.
func (f *WordFiller) Fill(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	if uintptr(size)&f.width.Mask() != 0 {
		return dst, ErrSizeNotWordMultiple
	}

	storeWords(dst, Pattern(value, f.width), f.width, size>>f.width.Shift())
	return dst, nil
}

// FillUnaligned sets size bytes starting at dst for any dst and size. Bytes
// up to the first word boundary and after the last whole word are stored
// individually; everything in between is stored a word at a time.
func (f *WordFiller) FillUnaligned(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	if size == 0 {
		return dst, nil
	}

	var (
		buf     = unsafe.Slice((*byte)(dst), size)
		x       = byte(value & 0xff)
		regions = Partition(uintptr(dst), size, f.width)
	)

	store(dst, x, regions.Prologue)
	if regions.Prologue == size {
		return dst, nil
	}

	storeWords(unsafe.Pointer(&buf[regions.Prologue]), Pattern(value, f.width), f.width, regions.Words(f.width))

	if regions.Epilogue != 0 {
		store(unsafe.Pointer(&buf[size-regions.Epilogue]), x, regions.Epilogue)
	}

	return dst, nil
}

// FillWords is WordFiller.Fill using the native word width.
func FillWords(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	return nativeFiller.Fill(dst, value, size)
}

// FillUnaligned is WordFiller.FillUnaligned using the native word width.
func FillUnaligned(dst unsafe.Pointer, value int, size Size) (unsafe.Pointer, error) {
	return nativeFiller.FillUnaligned(dst, value, size)
}
