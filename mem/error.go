package mem

var (
	// ErrSizeNotWordMultiple is returned by the aligned word fillers when
	// the fill size is not an exact multiple of their word width.
	ErrSizeNotWordMultiple = &Error{Module: "mem", Message: "fill size is not a multiple of the word width"}

	// ErrUnsupportedWordWidth is returned when a word width is not a power
	// of two between 1 and 8 bytes.
	ErrUnsupportedWordWidth = &Error{Module: "mem", Message: "unsupported word width"}
)

// Error describes a rejected fill request. All errors returned by the fillers
// are global variables that are pointers to the Error structure so that
// reporting a failed precondition never allocates.
type Error struct {
	// The module where the error occurred.
	Module string

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}
