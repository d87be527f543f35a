package bitptr

import (
	"errors"
	"fmt"
)

var (
	ErrBounds           = errors.New("bit range out of bounds")
	ErrOutOfRange       = errors.New("bit address out of range")
	ErrWidthTooLarge    = errors.New("bit width too large")
	ErrValueOverflow    = errors.New("value does not fit in bit width")
	ErrInvalidBitOffset = errors.New("sub-byte bit offset not in [0,8)")
	ErrOverlap          = errors.New("bit ranges overlap")
	ErrClaimed          = errors.New("bit range already claimed")
)

// BoundsError reports an access of Width bits at At in a buffer of Len bytes
// that does not fit. It matches ErrBounds with errors.Is.
type BoundsError struct {
	At    Address
	Width int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: %d bits at %v in %d byte buffer", ErrBounds, e.Width, e.At, e.Len)
}

func (e *BoundsError) Unwrap() error { return ErrBounds }
