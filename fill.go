package bitptr

// Fill sets n bits starting at at to 1 when value is true, or to 0.
func Fill(buf []byte, at Address, n int, value bool) error {
	if n == 0 {
		return nil
	}
	if err := Check(buf, at, n); err != nil {
		return err
	}
	fillBits(buf, at.Bits(), n, value)
	return nil
}

func fillBits(buf []byte, pos, n int, value bool) {
	var ones uint64
	var b byte
	if value {
		ones, b = ^uint64(0), 0xFF
	}
	if head := min((8-pos&7)&7, n); head > 0 {
		setBits(buf, pos, head, ones)
		pos += head
		n -= head
	}
	i := pos >> 3
	for ; n >= 8; n -= 8 {
		buf[i] = b
		i++
	}
	if n > 0 {
		setBits(buf, i<<3, n, ones)
	}
}
