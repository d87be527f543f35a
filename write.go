package bitptr

import (
	"fmt"
	"math/bits"
)

// WriteUint stores v in width bits starting at at, leaving every other bit
// of buf untouched. It fails with ErrValueOverflow if v needs more than
// width bits; see WriteUintTrunc for the truncating variant. Nothing is
// written on error. A zero width is a no-op.
func WriteUint(buf []byte, at Address, width int, v uint64) error {
	if width == 0 {
		return nil
	}
	if err := checkWidth(buf, at, width); err != nil {
		return err
	}
	if bits.Len64(v) > width {
		return fmt.Errorf("%w: %d in %d bits", ErrValueOverflow, v, width)
	}
	setBits(buf, at.Bits(), width, v)
	return nil
}

// WriteUintTrunc stores the low width bits of v, discarding the rest.
func WriteUintTrunc(buf []byte, at Address, width int, v uint64) error {
	if width == 0 {
		return nil
	}
	if err := checkWidth(buf, at, width); err != nil {
		return err
	}
	setBits(buf, at.Bits(), width, v)
	return nil
}

// WriteInt stores v as a width bit two's complement integer. It fails with
// ErrValueOverflow unless -2^(width-1) <= v < 2^(width-1).
func WriteInt(buf []byte, at Address, width int, v int64) error {
	if width == 0 {
		return nil
	}
	if err := checkWidth(buf, at, width); err != nil {
		return err
	}
	if !fitsInt(v, width) {
		return fmt.Errorf("%w: %d in %d signed bits", ErrValueOverflow, v, width)
	}
	setBits(buf, at.Bits(), width, uint64(v))
	return nil
}

// WriteIntTrunc stores the low width bits of the two's complement form of v.
func WriteIntTrunc(buf []byte, at Address, width int, v int64) error {
	return WriteUintTrunc(buf, at, width, uint64(v))
}

// WriteBit sets (true) or clears (false) the bit at at.
func WriteBit(buf []byte, at Address, bit bool) error {
	if err := Check(buf, at, 1); err != nil {
		return err
	}
	mask := byte(0x80) >> at.bit
	if bit {
		buf[at.byte] |= mask
	} else {
		buf[at.byte] &^= mask
	}
	return nil
}

func fitsInt(v int64, width int) bool {
	if width >= 64 {
		return true
	}
	lim := int64(1) << uint(width-1)
	return v >= -lim && v < lim
}

// setBits stores the low width bits (1..64) of v at absolute bit position
// pos with a masked read-modify-write per touched byte.
func setBits(buf []byte, pos, width int, v uint64) {
	i, off := pos>>3, pos&7
	for width > 0 {
		avail := 8 - off
		n := min(avail, width)
		shift := uint(avail - n)
		mask := byte(0xFF>>uint(8-n)) << shift
		b := byte(v>>uint(width-n)) << shift
		buf[i] = buf[i]&^mask | b&mask
		width -= n
		i++
		off = 0
	}
}
