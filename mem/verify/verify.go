// Package verify checks fill implementations against the bytes they are
// supposed to leave behind.
package verify

import (
	"fmt"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gopheros/memfill/mem"
)

const (
	// DefaultBufferSize is the size of the buffer fillers are checked on.
	DefaultBufferSize = mem.PageSize

	// MinBufferSize is the smallest buffer a Verifier accepts. It leaves
	// room for a size sweep at every offset of the widest word.
	MinBufferSize = 64 * mem.Byte

	// guardSize is the number of bytes kept on either side of the buffer to
	// catch writes past its ends.
	guardSize = 16
)

var (
	errBufferTooSmall = &mem.Error{Module: "verify", Message: "buffer is too small"}
	errWrongReturn    = &mem.Error{Module: "verify", Message: "filler did not return its destination"}
)

// Probe is the number of bytes a checked region is moved away from each end
// of the buffer.
type Probe int

// Supported probes.
const (
	Aligned   Probe = 0
	Unaligned Probe = 1
)

func (p Probe) String() string {
	if p == Aligned {
		return "Aligned"
	}
	return "Unaligned"
}

// Mismatch describes the first wrong byte found by a check.
type Mismatch struct {
	// Index is relative to the start of the buffer. Guard hits have an
	// index outside [0, buffer size).
	Index int

	// Value is the fill value in use when the mismatch was found.
	Value byte

	// Got is the byte found at Index.
	Got byte

	// Guard is set when the filler wrote outside the requested region.
	Guard bool

	// Err is set when the filler rejected the request or returned the
	// wrong pointer.
	Err error
}

func (m Mismatch) String() string {
	switch {
	case m.Err != nil:
		return fmt.Sprintf("filling with 0x%02x failed: %v", m.Value, m.Err)
	case m.Guard:
		return fmt.Sprintf("byte %d outside the region was overwritten with 0x%02x while filling with 0x%02x", m.Index, m.Got, m.Value)
	default:
		return fmt.Sprintf("byte %d is 0x%02x; expected 0x%02x", m.Index, m.Got, m.Value)
	}
}

// Verifier runs fillers over a buffer it owns and reports the first byte that
// does not hold the requested value. A Verifier is not safe for concurrent
// use.
type Verifier struct {
	logger  log.Logger
	metrics *metrics

	// backing holds buf plus guardSize bytes on either side.
	backing []byte
	buf     []byte
}

// New returns a Verifier checking fillers on a buffer of the given size.
// logger and reg may be nil.
func New(size mem.Size, logger log.Logger, reg prometheus.Registerer) (*Verifier, error) {
	if size < MinBufferSize {
		return nil, errBufferTooSmall
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	backing := make([]byte, size+2*guardSize)
	return &Verifier{
		logger:  logger,
		metrics: newMetrics(reg),
		backing: backing,
		buf:     backing[guardSize : guardSize+int(size)],
	}, nil
}

// BufferSize returns the size of the buffer fillers are checked on.
func (v *Verifier) BufferSize() mem.Size {
	return mem.Size(len(v.buf))
}

// Check fills buf[probe:len(buf)-probe] with every byte value in turn and
// returns the first byte that does not match. Bytes on either side of the
// region, including guard bytes past the ends of the buffer, must keep
// their previous contents.
func (v *Verifier) Check(name string, fn mem.FillFunc, probe Probe) (Mismatch, bool) {
	start, end := int(probe), len(v.buf)-int(probe)
	v.metrics.checksTotal.WithLabelValues(name, probe.String()).Inc()

	for value := 0; value <= 0xff; value++ {
		if m, failed := v.fillOnce(name, fn, start, end, value); failed {
			v.metrics.failuresTotal.WithLabelValues(name, probe.String()).Inc()
			level.Debug(v.logger).Log("msg", "check failed", "filler", name, "probe", probe, "mismatch", m)
			return m, true
		}
	}

	level.Debug(v.logger).Log("msg", "check passed", "filler", name, "probe", probe)
	return Mismatch{}, false
}

// CheckSizes checks fn at every start offset within a word of the given
// width and for every size from 0 to 2*width+3.
func (v *Verifier) CheckSizes(name string, fn mem.FillFunc, width mem.WordWidth) (Mismatch, bool) {
	base := v.alignedIndex(width)
	maxSize := 2*int(width) + 3

	for offset := 0; offset < int(width); offset++ {
		start := base + offset
		for size := 0; size <= maxSize; size++ {
			for _, value := range []int{0x00, 0x41, 0xa5, 0xff} {
				if m, failed := v.fillOnce(name, fn, start, start+size, value); failed {
					level.Debug(v.logger).Log("msg", "size sweep failed", "filler", name, "offset", offset, "size", size, "mismatch", m)
					return m, true
				}
			}
		}
	}

	return Mismatch{}, false
}

// fillOnce fills buf[start:end] with value and scans the whole backing
// buffer. Every byte outside the region is set to the complement of value
// beforehand so a stray write always shows up.
func (v *Verifier) fillOnce(name string, fn mem.FillFunc, start, end, value int) (Mismatch, bool) {
	sentinel := ^byte(value)
	for i := range v.backing {
		v.backing[i] = sentinel
	}

	dst := unsafe.Pointer(&v.backing[guardSize+start])
	ret, err := fn(dst, value, mem.Size(end-start))
	switch {
	case err != nil:
		v.metrics.fillerErrors.WithLabelValues(name).Inc()
		return Mismatch{Index: start, Value: byte(value), Got: v.buf[start], Err: err}, true
	case ret != dst:
		return Mismatch{Index: start, Value: byte(value), Got: v.buf[start], Err: errWrongReturn}, true
	}

	for i := start; i < end; i++ {
		if got := v.buf[i]; got != byte(value) {
			return Mismatch{Index: i, Value: byte(value), Got: got}, true
		}
	}

	for i, got := range v.backing {
		if index := i - guardSize; (index < start || index >= end) && got != sentinel {
			return Mismatch{Index: index, Value: byte(value), Got: got, Guard: true}, true
		}
	}

	return Mismatch{}, false
}

// alignedIndex returns the lowest index in buf whose address is a multiple
// of width.
func (v *Verifier) alignedIndex(width mem.WordWidth) int {
	index := 0
	for uintptr(unsafe.Pointer(&v.buf[index]))&width.Mask() != 0 {
		index++
	}
	return index
}

// Check runs fn against a DefaultBufferSize buffer and returns the index of
// the first byte that did not hold the requested value.
func Check(fn mem.FillFunc, probe Probe) (int, bool) {
	v, err := New(DefaultBufferSize, nil, nil)
	if err != nil {
		panic(err)
	}

	m, failed := v.Check("", fn, probe)
	return m.Index, failed
}
