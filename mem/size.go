package mem

const (
	// PageShift is equal to log2(PageSize).
	PageShift = 12

	// PageSize is the size of the buffer the fillers are verified against
	// unless configured otherwise.
	PageSize = Size(1 << PageShift)
)

// Size represents a memory block size in bytes.
type Size uint64

// Common memory block sizes.
const (
	Byte Size = 1
	Kb        = 1024 * Byte
	Mb        = 1024 * Kb
	Gb        = 1024 * Mb
)
