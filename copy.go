package bitptr

import "unsafe"

// Copy copies n bits from src starting at srcAt to dst starting at dstAt.
// dst and src may be the same buffer, or different slices of one array, and
// the ranges may overlap: afterwards the destination holds what the source
// held before the call. Bits outside the destination range are untouched.
// Both ranges are validated before anything is written.
func Copy(dst []byte, dstAt Address, src []byte, srcAt Address, n int) error {
	if n == 0 {
		return nil
	}
	if err := Check(src, srcAt, n); err != nil {
		return err
	}
	if err := Check(dst, dstAt, n); err != nil {
		return err
	}
	dp, sp := dstAt.Bits(), srcAt.Bits()
	backward := false
	if d, s := memBit(dst, dp), memBit(src, sp); d > s && d-s < uint64(n) {
		backward = true
	}
	if dp&7 == sp&7 {
		copyAligned(dst, dp, src, sp, n, backward)
	} else {
		copyShifted(dst, dp, src, sp, n, backward)
	}
	return nil
}

// memBit returns the bit position of pos within the memory backing buf, so
// ranges of different slices over one array can be compared.
func memBit(buf []byte, pos int) uint64 {
	return uint64(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))<<3 + uint64(pos)
}

// copyAligned handles ranges sharing their sub-byte offset: head bits up to
// the first byte boundary, whole bytes through the builtin copy, then the
// tail. With backward set the pieces are moved tail first.
func copyAligned(dst []byte, dp int, src []byte, sp int, n int, backward bool) {
	head := min((8-dp&7)&7, n)
	whole := (n - head) >> 3
	tail := (n - head) & 7
	db, sb := (dp+head)>>3, (sp+head)>>3

	moveHead := func() {
		if head > 0 {
			setBits(dst, dp, head, getBits(src, sp, head))
		}
	}
	moveTail := func() {
		if tail > 0 {
			off := n - tail
			setBits(dst, dp+off, tail, getBits(src, sp+off, tail))
		}
	}
	if backward {
		moveTail()
		copy(dst[db:db+whole], src[sb:sb+whole])
		moveHead()
		return
	}
	moveHead()
	copy(dst[db:db+whole], src[sb:sb+whole])
	moveTail()
}

// copyShifted moves the range in 64 bit chunks through the masked
// read/write routines. Each chunk is fully read before it is written.
func copyShifted(dst []byte, dp int, src []byte, sp int, n int, backward bool) {
	if backward {
		for rem := n; rem > 0; {
			c := min(MaxWidth, rem)
			rem -= c
			setBits(dst, dp+rem, c, getBits(src, sp+rem, c))
		}
		return
	}
	for done := 0; done < n; {
		c := min(MaxWidth, n-done)
		setBits(dst, dp+done, c, getBits(src, sp+done, c))
		done += c
	}
}
