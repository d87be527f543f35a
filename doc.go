// Package bitptr reads and writes data at arbitrary bit offsets within byte
// slices, the bit-granular counterpart of a raw byte pointer.
//
// An Address is a normalized (byte, bit) position; a Span is a non-owning
// view of a run of bits in a caller-owned buffer. Bits are numbered MSB
// first (see Order): bit 0 of a byte is its most significant bit, and the
// first bit of a run becomes the most significant bit of an integer read
// from it.
//
//	buf := []byte{0b10110000, 0b00001111}
//	at, _ := bitptr.NewAddress(0, 4)
//	_ = bitptr.WriteUint(buf, at, 8, 0xFF) // buf == {0b10111111, 0b11111111}
//
// Every fallible call validates its whole range before touching memory, so
// an error never leaves a partial write behind. Nothing here locks: callers
// sharing a buffer between goroutines must serialize access themselves, or
// coordinate through Claims. Two writers on different bits of the same byte
// still race.
package bitptr
