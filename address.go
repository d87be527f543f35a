package bitptr

import (
	"fmt"
	"math"
)

// maxByte keeps byte*8+7 inside int.
const maxByte = (math.MaxInt - 7) / 8

// Address is a bit position within a byte buffer: a byte index plus a
// sub-byte bit offset in [0,8), numbered per Order. It does not reference
// the buffer. Addresses are always normalized, so == compares positions.
type Address struct {
	byte int
	bit  uint8
}

// NewAddress validates byteOffset and bitOffset; it does not normalize.
// Use AddressOf or Advance to build an address from a raw bit count.
func NewAddress(byteOffset, bitOffset int) (Address, error) {
	if byteOffset < 0 || byteOffset > maxByte {
		return Address{}, fmt.Errorf("%w: byte offset %d", ErrOutOfRange, byteOffset)
	}
	if bitOffset < 0 || bitOffset >= 8 {
		return Address{}, fmt.Errorf("%w: %d", ErrInvalidBitOffset, bitOffset)
	}
	return Address{byte: byteOffset, bit: uint8(bitOffset)}, nil
}

// AddressOf returns the normalized address of absolute bit position bits.
func AddressOf(bits int) (Address, error) {
	if bits < 0 {
		return Address{}, fmt.Errorf("%w: bit position %d", ErrOutOfRange, bits)
	}
	return fromBits(bits), nil
}

func fromBits(bits int) Address {
	return Address{byte: bits >> 3, bit: uint8(bits & 7)}
}

// Byte returns the index of the byte holding the addressed bit.
func (a Address) Byte() int { return a.byte }

// Bit returns the sub-byte offset, in [0,8).
func (a Address) Bit() int { return int(a.bit) }

// Bits returns the absolute bit position, byte*8 + bit.
func (a Address) Bits() int { return a.byte<<3 + int(a.bit) }

// Advance adds a signed bit delta. It fails with ErrOutOfRange if the result
// is negative or not representable; it does not know about any buffer.
func (a Address) Advance(delta int) (Address, error) {
	pos := a.Bits()
	if (delta > 0 && pos > math.MaxInt-delta) || pos+delta < 0 {
		return a, fmt.Errorf("%w: %v%+d", ErrOutOfRange, a, delta)
	}
	return fromBits(pos + delta), nil
}

// AdvanceBytes moves the address by delta whole bytes, keeping the
// sub-byte offset.
func (a Address) AdvanceBytes(delta int) (Address, error) {
	if (delta > 0 && a.byte > maxByte-delta) || a.byte+delta < 0 {
		return a, fmt.Errorf("%w: %v%+d bytes", ErrOutOfRange, a, delta)
	}
	a.byte += delta
	return a, nil
}

// Distance returns the signed number of bits from a to b (b - a).
func Distance(a, b Address) int { return b.Bits() - a.Bits() }

func (a Address) IsByteAligned() bool { return a.bit == 0 }

// BitsUntilByteBoundary returns how many bits remain before the next byte
// boundary, 0 when already aligned.
func (a Address) BitsUntilByteBoundary() int { return (8 - int(a.bit)) & 7 }

// NextByteBoundary returns the first byte-aligned address at or after a.
func (a Address) NextByteBoundary() Address {
	if a.bit == 0 {
		return a
	}
	return Address{byte: a.byte + 1}
}

// Compare returns -1, 0 or +1 ordering a against b.
func (a Address) Compare(b Address) int {
	switch {
	case a.byte < b.byte:
		return -1
	case a.byte > b.byte:
		return 1
	case a.bit < b.bit:
		return -1
	case a.bit > b.bit:
		return 1
	}
	return 0
}

func (a Address) Less(b Address) bool { return a.Compare(b) < 0 }

// String formats the address as byte.bit.
func (a Address) String() string { return fmt.Sprintf("%d.%d", a.byte, a.bit) }
