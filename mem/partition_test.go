package mem

import "testing"

func TestPartition(t *testing.T) {
	specs := []struct {
		addr  uintptr
		size  Size
		width WordWidth
		exp   Regions
	}{
		{0x1000, 0, Width32, Regions{}},
		{0x1000, 16, Width32, Regions{Body: 16}},
		{0x1002, 7, Width32, Regions{Prologue: 2, Body: 4, Epilogue: 1}},
		{0x1001, 2, Width32, Regions{Prologue: 2}},
		{0x1001, 3, Width32, Regions{Prologue: 3}},
		{0x1001, 4094, Width32, Regions{Prologue: 3, Body: 4088, Epilogue: 3}},
		{0x1003, 13, Width64, Regions{Prologue: 5, Body: 8}},
		{0x1007, 5, Width16, Regions{Prologue: 1, Body: 4}},
		{0x1007, 5, Width8, Regions{Body: 5}},
	}

	for specIndex, spec := range specs {
		if got := Partition(spec.addr, spec.size, spec.width); got != spec.exp {
			t.Errorf("[spec %d] expected Partition(0x%x, %d, %s) to be %+v; got %+v", specIndex, spec.addr, spec.size, spec.width, spec.exp, got)
		}
	}
}

func TestPartitionInvariants(t *testing.T) {
	for _, width := range []WordWidth{Width8, Width16, Width32, Width64} {
		for offset := uintptr(0); offset < 2*uintptr(width); offset++ {
			for size := Size(0); size <= 4*Size(width)+3; size++ {
				addr := 0x1000 + offset
				r := Partition(addr, size, width)

				if sum := r.Prologue + r.Body + r.Epilogue; sum != size {
					t.Fatalf("[%s, addr 0x%x, size %d] expected regions to add up to size; got %d", width, addr, size, sum)
				}
				if r.Prologue >= Size(width) {
					t.Fatalf("[%s, addr 0x%x, size %d] prologue %d is not shorter than a word", width, addr, size, r.Prologue)
				}
				if r.Epilogue >= Size(width) {
					t.Fatalf("[%s, addr 0x%x, size %d] epilogue %d is not shorter than a word", width, addr, size, r.Epilogue)
				}
				if r.Body%Size(width) != 0 {
					t.Fatalf("[%s, addr 0x%x, size %d] body %d is not a multiple of the word width", width, addr, size, r.Body)
				}
				if r.Body != 0 && (addr+uintptr(r.Prologue))&width.Mask() != 0 {
					t.Fatalf("[%s, addr 0x%x, size %d] body does not start on a word boundary", width, addr, size)
				}
				if got := r.Words(width); got != r.Body/Size(width) {
					t.Fatalf("[%s, addr 0x%x, size %d] expected %d words; got %d", width, addr, size, r.Body/Size(width), got)
				}
			}
		}
	}
}
