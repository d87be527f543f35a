package bitptr

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// be16 lays a 16 bit value out in address order.
func be16(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

// refCopy copies n bits one at a time through a snapshot of the source.
func refCopy(buf []byte, dp, sp, n int) []byte {
	out := bytes.Clone(buf)
	for i := 0; i < n; i++ {
		putBitAt(out, dp+i, bitAt(buf, sp+i))
	}
	return out
}

func TestCopyWithinByte(t *testing.T) {
	x := be16(0b0101101110010110)
	y := be16(0)
	require.NoError(t, Copy(y, addr(t, 0, 3), x, addr(t, 1, 1), 4))
	require.Equal(t, be16(0b0000010000000000), y)
}

func TestCopyAcrossBytes(t *testing.T) {
	x := be16(0b0101101110010110)
	y := be16(0b1111111111111111)
	require.NoError(t, Copy(y, addr(t, 0, 3), x, addr(t, 0, 7), 7))
	require.Equal(t, be16(0b1111100101111111), y)
}

func TestCopyAlignedBytes(t *testing.T) {
	src := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}
	dst := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	require.NoError(t, Copy(dst, addr(t, 0, 4), src, addr(t, 0, 4), 28))
	require.Equal(t, []byte{0xFE, 0xAD, 0xBE, 0xEF, 0xFF}, dst)
}

func TestCopyOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	orig := make([]byte, 40)
	rng.Read(orig)

	for _, n := range []int{1, 5, 8, 13, 64, 70, 130} {
		for k := 0; k <= n; k++ {
			for _, base := range []int{0, 3, 8} {
				// destination after source, then before it
				for _, dir := range [][2]int{{base + k, base}, {base, base + k}} {
					dp, sp := dir[0], dir[1]
					buf := bytes.Clone(orig)
					want := refCopy(buf, dp, sp, n)
					require.NoError(t, Copy(buf, fromBits(dp), buf, fromBits(sp), n))
					require.Equal(t, want, buf, "n=%d dst=%d src=%d", n, dp, sp)
				}
			}
		}
	}
}

func TestCopyOverlapSubslice(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	orig := make([]byte, 40)
	rng.Read(orig)

	for _, n := range []int{3, 16, 29, 100} {
		for _, sp := range []int{0, 5, 16, 21} {
			for _, dp := range []int{0, 2, 8, 13} {
				// dst is buf[2:], 16 bits after buf in memory
				buf := bytes.Clone(orig)
				want := refCopy(buf, 16+dp, sp, n)
				require.NoError(t, Copy(buf[2:], fromBits(dp), buf, fromBits(sp), n))
				require.Equal(t, want, buf, "n=%d dst=%d src=%d", n, dp, sp)

				// and the other way around
				buf = bytes.Clone(orig)
				want = refCopy(buf, dp, 16+sp, n)
				require.NoError(t, Copy(buf, fromBits(dp), buf[2:], fromBits(sp), n))
				require.Equal(t, want, buf, "n=%d dst=%d src=+%d", n, dp, sp)
			}
		}
	}
}

func TestCopyBounds(t *testing.T) {
	src := []byte{0x12, 0x34}
	dst := []byte{0xAB, 0xCD}

	require.ErrorIs(t, Copy(dst, addr(t, 0, 0), src, addr(t, 0, 4), 13), ErrBounds)
	require.ErrorIs(t, Copy(dst, addr(t, 1, 1), src, addr(t, 0, 0), 8), ErrBounds)
	require.ErrorIs(t, Copy(dst, addr(t, 0, 0), src, addr(t, 0, 0), -1), ErrBounds)
	require.Equal(t, []byte{0xAB, 0xCD}, dst)
	require.Equal(t, []byte{0x12, 0x34}, src)

	require.NoError(t, Copy(nil, addr(t, 9, 0), nil, addr(t, 3, 3), 0))
}

func TestSwap(t *testing.T) {
	cases := []struct {
		name     string
		xAt, yAt int
		n        int
		wantX    uint16
		wantY    uint16
	}{
		{"within byte", 9, 3, 4, 0b0101101110100110, 0b1110010011010010},
		{"across bytes", 7, 3, 7, 0b0101101010001110, 0b1111100101010010},
		{"aligned start", 8, 0, 5, 0b0101101111101110, 0b1001000011010010},
		{"aligned end", 5, 13, 3, 0b0101101010010110, 0b1110100011010011},
		{"different byte width", 2, 6, 5, 0b0100110110010110, 0b1110100110110010},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := be16(0b0101101110010110)
			y := be16(0b1110100011010010)
			require.NoError(t, Swap(x, fromBits(c.xAt), y, fromBits(c.yAt), c.n))
			require.Equal(t, be16(c.wantX), x)
			require.Equal(t, be16(c.wantY), y)
		})
	}
}

func TestSwapSharedByte(t *testing.T) {
	buf := []byte{0xA5}
	require.NoError(t, Swap(buf, addr(t, 0, 0), buf, addr(t, 0, 4), 4))
	require.Equal(t, []byte{0x5A}, buf)
}

func TestSwapLong(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x, y := make([]byte, 24), make([]byte, 24)
	rng.Read(x)
	rng.Read(y)
	x0, y0 := bytes.Clone(x), bytes.Clone(y)

	require.NoError(t, Swap(x, addr(t, 0, 3), y, addr(t, 1, 6), 150))
	for i := 0; i < 150; i++ {
		require.Equal(t, bitAt(y0, 14+i), bitAt(x, 3+i))
		require.Equal(t, bitAt(x0, 3+i), bitAt(y, 14+i))
	}
}

func TestSwapOverlap(t *testing.T) {
	buf := []byte{0x0F, 0xF0}
	require.ErrorIs(t, Swap(buf, addr(t, 0, 0), buf, addr(t, 0, 4), 8), ErrOverlap)
	require.ErrorIs(t, Swap(buf, addr(t, 0, 0), buf[1:], addr(t, 0, 0), 9), ErrBounds)
	require.ErrorIs(t, Swap(buf[1:], addr(t, 0, 0), buf, addr(t, 0, 4), 5), ErrOverlap)
	require.Equal(t, []byte{0x0F, 0xF0}, buf)
}

func TestFill(t *testing.T) {
	x := be16(0b0101101110010110)
	require.NoError(t, Fill(x, addr(t, 1, 1), 4, false))
	require.Equal(t, be16(0b0101101110000110), x)

	y := be16(0b0101101110010110)
	require.NoError(t, Fill(y, addr(t, 0, 3), 4, true))
	require.Equal(t, be16(0b0101111110010110), y)

	x = be16(0b0101101110010110)
	require.NoError(t, Fill(x, addr(t, 0, 7), 7, false))
	require.Equal(t, be16(0b0101101000000010), x)

	y = be16(0b0101101110010110)
	require.NoError(t, Fill(y, addr(t, 0, 3), 7, true))
	require.Equal(t, be16(0b0101111111010110), y)

	buf := make([]byte, 4)
	require.NoError(t, Fill(buf, addr(t, 0, 3), 26, true))
	require.Equal(t, []byte{0x1F, 0xFF, 0xFF, 0xF8}, buf)
	require.NoError(t, Fill(buf, addr(t, 1, 0), 16, false))
	require.Equal(t, []byte{0x1F, 0x00, 0x00, 0xF8}, buf)

	require.ErrorIs(t, Fill(buf, addr(t, 3, 1), 8, true), ErrBounds)
	require.Equal(t, []byte{0x1F, 0x00, 0x00, 0xF8}, buf)
	require.NoError(t, Fill(buf, addr(t, 9, 0), 0, true))
}
