package bitptr

import "fmt"

// Swap exchanges n bits at xAt in x with n bits at yAt in y. The two bit
// ranges must not overlap; they may share a byte. Overlapping ranges fail
// with ErrOverlap and leave both buffers untouched.
func Swap(x []byte, xAt Address, y []byte, yAt Address, n int) error {
	if n == 0 {
		return nil
	}
	if err := Check(x, xAt, n); err != nil {
		return err
	}
	if err := Check(y, yAt, n); err != nil {
		return err
	}
	xp, yp := xAt.Bits(), yAt.Bits()
	if a, b := memBit(x, xp), memBit(y, yp); max(a, b)-min(a, b) < uint64(n) {
		return fmt.Errorf("%w: %d bits at %v and %v", ErrOverlap, n, xAt, yAt)
	}
	for done := 0; done < n; {
		c := min(MaxWidth, n-done)
		a := getBits(x, xp+done, c)
		b := getBits(y, yp+done, c)
		setBits(x, xp+done, c, b)
		setBits(y, yp+done, c, a)
		done += c
	}
	return nil
}
