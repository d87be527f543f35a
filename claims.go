package bitptr

import (
	"fmt"
	"sync"
)

// Claims tracks which parts of one buffer are reserved by concurrent users.
// Writes are read-modify-write on whole bytes, so two claims conflict as soon
// as they touch the same byte, even when their bits are disjoint.
//
// Claims does not guard the buffer itself; it only arbitrates ranges between
// callers that agree to claim before writing. The zero value is ready to use.
type Claims struct {
	mu   sync.Mutex
	next uint64
	held map[uint64]byteRange
}

type byteRange struct {
	from, to int // [from, to)
}

func (r byteRange) overlaps(o byteRange) bool {
	return r.from < o.to && o.from < r.to
}

// Claim is a reservation obtained from Claims.Claim.
type Claim struct {
	owner *Claims
	id    uint64
	span  byteRange
	once  sync.Once
}

// Claim reserves the bytes touched by n bits at at. It fails with
// ErrClaimed if any of those bytes is already held. A zero n claims nothing
// and always succeeds.
func (c *Claims) Claim(at Address, n int) (*Claim, error) {
	if n < 0 {
		return nil, &BoundsError{At: at, Width: n}
	}
	r := byteRange{from: at.byte, to: (at.Bits() + n + 7) >> 3}
	if n == 0 {
		r.to = r.from
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if r.to > r.from {
		for _, h := range c.held {
			if h.overlaps(r) {
				return nil, fmt.Errorf("%w: bytes [%d,%d) overlap [%d,%d)", ErrClaimed, r.from, r.to, h.from, h.to)
			}
		}
	}
	if c.held == nil {
		c.held = make(map[uint64]byteRange)
	}
	c.next++
	c.held[c.next] = r
	return &Claim{owner: c, id: c.next, span: r}, nil
}

// Held returns the number of outstanding claims.
func (c *Claims) Held() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.held)
}

// Release returns the range to the owner. Calling it again is a no-op.
func (cl *Claim) Release() {
	cl.once.Do(func() {
		cl.owner.mu.Lock()
		delete(cl.owner.held, cl.id)
		cl.owner.mu.Unlock()
	})
}

// Bytes returns the claimed byte range [from, to).
func (cl *Claim) Bytes() (from, to int) { return cl.span.from, cl.span.to }
