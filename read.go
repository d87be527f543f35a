package bitptr

import "fmt"

// MaxWidth is the widest integer access, the size of the result type.
const MaxWidth = 64

func widthError(width int) error {
	return fmt.Errorf("%w: %d > %d", ErrWidthTooLarge, width, MaxWidth)
}

// ReadUint reads width bits starting at at and returns them as an unsigned
// integer, the first bit being the most significant. A zero width returns 0
// without looking at buf.
func ReadUint(buf []byte, at Address, width int) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	if err := checkWidth(buf, at, width); err != nil {
		return 0, err
	}
	return getBits(buf, at.Bits(), width), nil
}

// ReadInt reads width bits like ReadUint and sign-extends from bit width-1.
func ReadInt(buf []byte, at Address, width int) (int64, error) {
	u, err := ReadUint(buf, at, width)
	if err != nil || width == 0 {
		return 0, err
	}
	return signExtend(u, width), nil
}

// ReadBit reads the single bit at at.
func ReadBit(buf []byte, at Address) (bool, error) {
	if err := Check(buf, at, 1); err != nil {
		return false, err
	}
	return buf[at.byte]&(0x80>>at.bit) != 0, nil
}

func signExtend(u uint64, width int) int64 {
	shift := uint(64 - width)
	return int64(u<<shift) >> shift
}

// getBits gathers width bits (1..64) from absolute bit position pos, one
// touched byte at a time. Bounds are the caller's responsibility.
func getBits(buf []byte, pos, width int) uint64 {
	var v uint64
	i, off := pos>>3, pos&7
	for width > 0 {
		avail := 8 - off
		n := min(avail, width)
		b := buf[i] >> uint(avail-n) & (0xFF >> uint(8-n))
		v = v<<uint(n) | uint64(b)
		width -= n
		i++
		off = 0
	}
	return v
}
