package bitptr

import "fmt"

// maxVarintGroups is the number of 7 bit groups a uint64 can need.
const maxVarintGroups = 10

// Cursor is a sequential reader/writer over a Span. It only tracks a bit
// position; every access goes through the span, so a failed read or write
// leaves both the position and the buffer unchanged.
type Cursor struct {
	span Span
	pos  int
}

func NewCursor(s Span) *Cursor {
	return &Cursor{span: s}
}

// Pos returns the current offset from the start of the span.
func (c *Cursor) Pos() int { return c.pos }

// Address returns the absolute buffer address of the current position.
func (c *Cursor) Address() Address { return c.span.at(c.pos) }

func (c *Cursor) Remaining() int { return c.span.n - c.pos }

func (c *Cursor) Span() Span { return c.span }

// Seek moves to offset pos of the span, which may equal its length.
func (c *Cursor) Seek(pos int) error {
	if pos < 0 || pos > c.span.n {
		return fmt.Errorf("%w: seek to %d of %d bits", ErrBounds, pos, c.span.n)
	}
	c.pos = pos
	return nil
}

// Skip moves by n bits, backwards when n is negative.
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.pos + n)
}

// Align moves forward to the next byte boundary of the underlying buffer.
func (c *Cursor) Align() error {
	return c.Skip(c.Address().BitsUntilByteBoundary())
}

func (c *Cursor) Reset() { c.pos = 0 }

func (c *Cursor) ReadBit() (bool, error) {
	b, err := c.span.Bit(c.pos)
	if err == nil {
		c.pos++
	}
	return b, err
}

func (c *Cursor) ReadUint(width int) (uint64, error) {
	v, err := c.span.ReadUint(c.pos, width)
	if err == nil {
		c.pos += width
	}
	return v, err
}

func (c *Cursor) ReadInt(width int) (int64, error) {
	v, err := c.span.ReadInt(c.pos, width)
	if err == nil {
		c.pos += width
	}
	return v, err
}

func (c *Cursor) WriteBit(bit bool) error {
	if err := c.span.SetBit(c.pos, bit); err != nil {
		return err
	}
	c.pos++
	return nil
}

func (c *Cursor) WriteUint(width int, v uint64) error {
	if err := c.span.WriteUint(c.pos, width, v); err != nil {
		return err
	}
	c.pos += width
	return nil
}

func (c *Cursor) WriteUintTrunc(width int, v uint64) error {
	if err := c.span.WriteUintTrunc(c.pos, width, v); err != nil {
		return err
	}
	c.pos += width
	return nil
}

func (c *Cursor) WriteInt(width int, v int64) error {
	if err := c.span.WriteInt(c.pos, width, v); err != nil {
		return err
	}
	c.pos += width
	return nil
}

// WriteUvarint writes x as 8 bit groups holding a continuation bit and 7
// payload bits, low groups first. The groups need not be byte aligned.
func (c *Cursor) WriteUvarint(x uint64) error {
	var scratch [maxVarintGroups]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	i++
	if err := c.span.check(c.pos, i<<3); err != nil {
		return err
	}
	for _, g := range scratch[:i] {
		setBits(c.span.buf, c.span.abs(c.pos), 8, uint64(g))
		c.pos += 8
	}
	return nil
}

// ReadUvarint reads a value written by WriteUvarint. It fails with
// ErrValueOverflow when the groups do not terminate within 64 bits of
// payload, and leaves the position unchanged on any error.
func (c *Cursor) ReadUvarint() (uint64, error) {
	var x uint64
	var s uint
	pos := c.pos
	for i := 0; i < maxVarintGroups; i++ {
		g, err := c.span.ReadUint(pos, 8)
		if err != nil {
			return 0, err
		}
		pos += 8
		if g < 0x80 {
			if i == maxVarintGroups-1 && g > 1 {
				break
			}
			c.pos = pos
			return x | g<<s, nil
		}
		x |= (g & 0x7F) << s
		s += 7
	}
	return 0, fmt.Errorf("%w: uvarint exceeds 64 bits", ErrValueOverflow)
}
