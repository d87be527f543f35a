package bitptr

// Check reports whether width bits starting at at lie within buf. It returns
// a *BoundsError if width is negative, if at does not address a byte of buf,
// or if the run extends past the last bit of buf.
func Check(buf []byte, at Address, width int) error {
	if width < 0 || at.byte >= len(buf) || width > len(buf)<<3-at.Bits() {
		return &BoundsError{At: at, Width: width, Len: len(buf)}
	}
	return nil
}

// checkWidth validates an integer access of at most 64 bits.
func checkWidth(buf []byte, at Address, width int) error {
	if width > 64 {
		return widthError(width)
	}
	return Check(buf, at, width)
}
