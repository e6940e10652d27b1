package mem

// Pattern returns the low byte of value replicated into each of the width
// low byte lanes of a word. Lanes above width are zero.
func Pattern(value int, width WordWidth) uint64 {
	x := uint64(value & 0xff)

	// After the step with a given shift the low 2*shift bits hold a copy
	// of the byte in every lane.
	for shift := uint(8); shift < width.Bits(); shift <<= 1 {
		x |= x << shift
	}

	return x
}

// pattern32 builds a 32-bit pattern word with the two shifts a fixed width
// needs.
func pattern32(value int) uint32 {
	x := uint32(value & 0xff)
	x |= x << 8
	x |= x << 16
	return x
}
