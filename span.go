package bitptr

import (
	"fmt"
	"strings"
)

// Span is a non-owning view of n contiguous bits of buf starting at start.
// Offsets passed to Span methods are relative to the span start. Several
// spans may alias the same buffer; the span never outlives buf's validity
// and never reallocates it. Reads and writes do not change the extent.
type Span struct {
	buf   []byte
	start Address
	n     int
}

// NewSpan returns the view of n bits of buf at start, or a *BoundsError if
// the run does not fit in buf. An empty span may start at the end of buf.
func NewSpan(buf []byte, start Address, n int) (Span, error) {
	if n < 0 || start.Bits() > len(buf)<<3-n {
		return Span{}, &BoundsError{At: start, Width: n, Len: len(buf)}
	}
	return Span{buf: buf, start: start, n: n}, nil
}

// Whole returns the span covering every bit of buf.
func Whole(buf []byte) Span {
	return Span{buf: buf, n: len(buf) << 3}
}

// Len returns the span length in bits.
func (s Span) Len() int { return s.n }

func (s Span) Start() Address { return s.start }

// End returns the address just past the last bit of s.
func (s Span) End() Address { return fromBits(s.start.Bits() + s.n) }

// Buffer returns the backing buffer.
func (s Span) Buffer() []byte { return s.buf }

func (s Span) abs(off int) int { return s.start.Bits() + off }

func (s Span) at(off int) Address { return fromBits(s.abs(off)) }

// checkInt validates an integer access of width bits at offset off.
func (s Span) checkInt(off, width int) error {
	if width > MaxWidth {
		return widthError(width)
	}
	return s.check(off, width)
}

// check validates width bits at span offset off.
func (s Span) check(off, width int) error {
	if off < 0 || width < 0 || off > s.n-width {
		at := s.start
		if off >= 0 {
			at = s.at(off)
		}
		return &BoundsError{At: at, Width: width, Len: len(s.buf)}
	}
	return nil
}

// Slice returns the sub-span [from, to) of s.
func (s Span) Slice(from, to int) (Span, error) {
	if from < 0 || to < from || to > s.n {
		return Span{}, fmt.Errorf("%w: slice [%d:%d] of %d bits", ErrBounds, from, to, s.n)
	}
	return Span{buf: s.buf, start: s.at(from), n: to - from}, nil
}

// ReadUint reads width bits at offset off; see ReadUint.
func (s Span) ReadUint(off, width int) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	if err := s.checkInt(off, width); err != nil {
		return 0, err
	}
	return getBits(s.buf, s.abs(off), width), nil
}

// ReadInt reads a sign-extended width bit integer at offset off.
func (s Span) ReadInt(off, width int) (int64, error) {
	u, err := s.ReadUint(off, width)
	if err != nil || width == 0 {
		return 0, err
	}
	return signExtend(u, width), nil
}

func (s Span) Bit(off int) (bool, error) {
	u, err := s.ReadUint(off, 1)
	return u != 0, err
}

// WriteUint writes v in width bits at offset off; see WriteUint.
func (s Span) WriteUint(off, width int, v uint64) error {
	if width == 0 {
		return nil
	}
	if err := s.checkInt(off, width); err != nil {
		return err
	}
	return WriteUint(s.buf, s.at(off), width, v)
}

// WriteUintTrunc writes the low width bits of v at offset off.
func (s Span) WriteUintTrunc(off, width int, v uint64) error {
	if width == 0 {
		return nil
	}
	if err := s.checkInt(off, width); err != nil {
		return err
	}
	return WriteUintTrunc(s.buf, s.at(off), width, v)
}

// WriteInt writes v as a width bit signed integer at offset off.
func (s Span) WriteInt(off, width int, v int64) error {
	if width == 0 {
		return nil
	}
	if err := s.checkInt(off, width); err != nil {
		return err
	}
	return WriteInt(s.buf, s.at(off), width, v)
}

func (s Span) SetBit(off int, bit bool) error {
	if err := s.check(off, 1); err != nil {
		return err
	}
	return WriteBit(s.buf, s.at(off), bit)
}

// Fill sets every bit of s to value.
func (s Span) Fill(value bool) {
	if s.n > 0 {
		fillBits(s.buf, s.start.Bits(), s.n, value)
	}
}

// CopyFrom copies all of src into the start of s. src may alias s.
func (s Span) CopyFrom(src Span) error {
	if src.n > s.n {
		return &BoundsError{At: s.start, Width: src.n, Len: len(s.buf)}
	}
	return Copy(s.buf, s.start, src.buf, src.start, src.n)
}

// SwapWith exchanges the contents of two equally long, non-overlapping spans.
func (s Span) SwapWith(o Span) error {
	if s.n != o.n {
		return fmt.Errorf("%w: swap of %d and %d bit spans", ErrBounds, s.n, o.n)
	}
	return Swap(s.buf, s.start, o.buf, o.start, s.n)
}

// Equal reports whether s and o hold the same bits.
func (s Span) Equal(o Span) bool {
	if s.n != o.n {
		return false
	}
	for done := 0; done < s.n; {
		c := min(MaxWidth, s.n-done)
		if getBits(s.buf, s.abs(done), c) != getBits(o.buf, o.abs(done), c) {
			return false
		}
		done += c
	}
	return true
}

// String renders the bits of s as 0s and 1s in address order.
func (s Span) String() string {
	var sb strings.Builder
	sb.Grow(s.n)
	for i := 0; i < s.n; i++ {
		if getBits(s.buf, s.abs(i), 1) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Cursor returns a cursor positioned at the start of s.
func (s Span) Cursor() *Cursor { return NewCursor(s) }
