package bitptr

// BitOrder names how bits within a byte are numbered and how a run of bits
// is composed into an integer.
type BitOrder int

const (
	// MSBFirst numbers bit 0 as the most significant bit of a byte, and the
	// first bit of a run becomes the most significant bit of the value.
	MSBFirst BitOrder = iota
	// LSBFirst numbers bit 0 as the least significant bit of a byte.
	// Not implemented by this package; listed so Order is unambiguous.
	LSBFirst
)

// Order is the convention used by every read, write, copy and fill in this
// package.
const Order = MSBFirst

func (o BitOrder) String() string {
	switch o {
	case MSBFirst:
		return "msb-first"
	case LSBFirst:
		return "lsb-first"
	default:
		return "unknown"
	}
}
