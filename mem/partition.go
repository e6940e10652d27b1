package mem

// Regions describes how a fill request is split up: the bytes stored one at a
// time until the first word boundary, the whole words after it and the
// trailing bytes that do not make up a full word.
type Regions struct {
	Prologue Size
	Body     Size
	Epilogue Size
}

// Words returns the number of word stores needed for the body.
func (r Regions) Words(width WordWidth) Size {
	return r.Body >> width.Shift()
}

// Partition splits a request for size bytes starting at addr into word
// aligned regions. If size is smaller than the distance from addr to the
// next word boundary the prologue covers the whole request.
func Partition(addr uintptr, size Size, width WordWidth) Regions {
	mask := width.Mask()
	prologue := Size((uintptr(width) - addr&mask) & mask)
	if prologue >= size {
		return Regions{Prologue: size}
	}

	rest := size - prologue
	epilogue := rest & Size(mask)
	return Regions{
		Prologue: prologue,
		Body:     rest - epilogue,
		Epilogue: epilogue,
	}
}
