package mem

import "testing"

func TestWordWidth(t *testing.T) {
	specs := []struct {
		width    WordWidth
		valid    bool
		mask     uintptr
		shift    uint
		expLabel string
	}{
		{0, false, 0, 0, ""},
		{Width8, true, 0, 0, "8-bit"},
		{Width16, true, 1, 1, "16-bit"},
		{3, false, 0, 0, ""},
		{Width32, true, 3, 2, "32-bit"},
		{Width64, true, 7, 3, "64-bit"},
		{16, false, 0, 0, ""},
	}

	for specIndex, spec := range specs {
		if got := spec.width.Valid(); got != spec.valid {
			t.Errorf("[spec %d] expected Valid() to return %t; got %t", specIndex, spec.valid, got)
			continue
		}
		if !spec.valid {
			continue
		}
		if got := spec.width.Mask(); got != spec.mask {
			t.Errorf("[spec %d] expected Mask() to return %d; got %d", specIndex, spec.mask, got)
		}
		if got := spec.width.Shift(); got != spec.shift {
			t.Errorf("[spec %d] expected Shift() to return %d; got %d", specIndex, spec.shift, got)
		}
		if got := spec.width.String(); got != spec.expLabel {
			t.Errorf("[spec %d] expected String() to return %q; got %q", specIndex, spec.expLabel, got)
		}
	}

	if !NativeWordWidth.Valid() {
		t.Fatalf("expected native word width %d to be valid", NativeWordWidth)
	}
}
