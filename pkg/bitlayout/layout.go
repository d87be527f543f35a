package bitlayout

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/bitptr"
)

var (
	ErrEmptyName      = errors.New("field name is empty")
	ErrDuplicateField = errors.New("duplicate field name")
	ErrFieldWidth     = errors.New("field width must be in [1,64]")
	ErrUnknownField   = errors.New("unknown field")
	ErrNotStruct      = errors.New("expected struct")
	ErrNotStructPtr   = errors.New("expected pointer to struct")
	ErrUnsupported    = errors.New("unsupported type")
)

// Field is one run of bits in a record. Fields are laid out back to back in
// declaration order with no padding.
type Field struct {
	Name   string `yaml:"name"`
	Bits   int    `yaml:"bits"`
	Signed bool   `yaml:"signed,omitempty"`
}

// Layout describes a packed record of bit fields.
//
//	name: header
//	fields:
//	  - {name: version, bits: 3}
//	  - {name: delta, bits: 12, signed: true}
type Layout struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// Value is a decoded field. U holds the raw bits; I holds the sign-extended
// value for signed fields and int64(U) otherwise.
type Value struct {
	Name   string
	Signed bool
	U      uint64
	I      int64
}

func (v Value) String() string {
	if v.Signed {
		return strconv.FormatInt(v.I, 10)
	}
	return strconv.FormatUint(v.U, 10)
}

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads a YAML layout from r, rejecting unknown keys.
func Load(r io.Reader) (*Layout, error) {
	var l Layout
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Layout) Validate() error {
	seen := make(map[string]struct{}, len(l.Fields))
	for i, f := range l.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: field %d", ErrEmptyName, i)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Bits < 1 || f.Bits > bitptr.MaxWidth {
			return fmt.Errorf("%w: %q has %d bits", ErrFieldWidth, f.Name, f.Bits)
		}
	}
	return nil
}

// Bits returns the record size in bits.
func (l *Layout) Bits() int {
	n := 0
	for _, f := range l.Fields {
		n += f.Bits
	}
	return n
}

// Offset returns the bit offset of the named field within the record.
func (l *Layout) Offset(name string) (int, bool) {
	off := 0
	for _, f := range l.Fields {
		if f.Name == name {
			return off, true
		}
		off += f.Bits
	}
	return 0, false
}

func (l *Layout) record(s bitptr.Span) (bitptr.Span, error) {
	n := l.Bits()
	if s.Len() < n {
		return bitptr.Span{}, &bitptr.BoundsError{At: s.Start(), Width: n, Len: len(s.Buffer())}
	}
	return s.Slice(0, n)
}

// Decode reads one record from the start of s.
func (l *Layout) Decode(s bitptr.Span) ([]Value, error) {
	rec, err := l.record(s)
	if err != nil {
		return nil, err
	}
	c := rec.Cursor()
	out := make([]Value, 0, len(l.Fields))
	for _, f := range l.Fields {
		u, err := c.ReadUint(f.Bits)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		v := Value{Name: f.Name, Signed: f.Signed, U: u, I: int64(u)}
		if f.Signed {
			shift := uint(64 - f.Bits)
			v.I = int64(u<<shift) >> shift
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode writes vals into the record at the start of s. Signed fields take
// Value.I, unsigned ones Value.U; fields without a value keep their bits.
// The record is assembled in a scratch buffer and copied back, so a bad
// value leaves s untouched.
func (l *Layout) Encode(s bitptr.Span, vals []Value) error {
	rec, err := l.record(s)
	if err != nil {
		return err
	}
	offsets := make(map[string]int, len(l.Fields))
	fields := make(map[string]Field, len(l.Fields))
	off := 0
	for _, f := range l.Fields {
		offsets[f.Name], fields[f.Name] = off, f
		off += f.Bits
	}

	scratch := bitptr.Whole(make([]byte, (rec.Len()+7)>>3))
	if err := scratch.CopyFrom(rec); err != nil {
		return err
	}
	for _, v := range vals {
		f, ok := fields[v.Name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, v.Name)
		}
		if f.Signed {
			err = scratch.WriteInt(offsets[v.Name], f.Bits, v.I)
		} else {
			err = scratch.WriteUint(offsets[v.Name], f.Bits, v.U)
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", v.Name, err)
		}
	}
	built, err := scratch.Slice(0, rec.Len())
	if err != nil {
		return err
	}
	return rec.CopyFrom(built)
}
