package bitlayout

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/rawbytedev/bitptr"
	"github.com/rawbytedev/bitptr/internal/common"
)

// Codec packs structs into bit records. Exported integer and bool fields are
// laid out in declaration order; a `bits:"N"` tag narrows a field to N bits
// and `bits:"-"` skips it. Plans are built once per type and cached, so a
// Codec is safe for concurrent use.
type Codec struct {
	mu   sync.RWMutex
	plan map[reflect.Type]*structPlan
}

type structPlan struct {
	layout Layout
	fields []fieldInfo
}

type fieldInfo struct {
	idx    int
	kind   reflect.Kind
	bits   int
	signed bool
}

func NewCodec() *Codec {
	return &Codec{plan: make(map[reflect.Type]*structPlan)}
}

func (c *Codec) getPlan(t reflect.Type) (*structPlan, error) {
	c.mu.RLock()
	if p, ok := c.plan[t]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check
	if p, ok := c.plan[t]; ok {
		return p, nil
	}

	p := &structPlan{layout: Layout{Name: t.Name()}}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, tagged := sf.Tag.Lookup("bits")
		if tag == "-" {
			continue
		}
		kind := sf.Type.Kind()
		if !common.IsPackableKind(kind) {
			return nil, fmt.Errorf("%w: field %s of kind %s", ErrUnsupported, sf.Name, kind)
		}
		width := common.KindBits(kind)
		if tagged {
			n, err := strconv.Atoi(tag)
			if err != nil || n < 1 || n > width || (kind == reflect.Bool && n != 1) {
				return nil, fmt.Errorf("%w: field %s tagged %q", ErrFieldWidth, sf.Name, tag)
			}
			width = n
		}
		signed := common.IsSignedKind(kind)
		p.fields = append(p.fields, fieldInfo{idx: i, kind: kind, bits: width, signed: signed})
		p.layout.Fields = append(p.layout.Fields, Field{Name: sf.Name, Bits: width, Signed: signed})
	}

	if c.plan == nil {
		c.plan = make(map[reflect.Type]*structPlan)
	}
	c.plan[t] = p
	return p, nil
}

// LayoutOf returns the record layout used for v's struct type.
func (c *Codec) LayoutOf(v any) (*Layout, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	p, err := c.getPlan(t)
	if err != nil {
		return nil, err
	}
	l := p.layout
	l.Fields = append([]Field(nil), p.layout.Fields...)
	return &l, nil
}

// Pack writes the fields of v (a struct or pointer to struct) into the
// record at the start of s. A value that does not fit its width fails with
// bitptr.ErrValueOverflow and nothing is written.
func (c *Codec) Pack(s bitptr.Span, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrNotStruct
	}
	p, err := c.getPlan(rv.Type())
	if err != nil {
		return err
	}
	vals := make([]Value, len(p.fields))
	for i, f := range p.fields {
		fv := rv.Field(f.idx)
		val := Value{Name: p.layout.Fields[i].Name, Signed: f.signed}
		switch {
		case f.kind == reflect.Bool:
			if fv.Bool() {
				val.U = 1
			}
		case f.signed:
			val.I = fv.Int()
		default:
			val.U = fv.Uint()
		}
		vals[i] = val
	}
	return p.layout.Encode(s, vals)
}

// Unpack reads the record at the start of s into out, a pointer to struct.
func (c *Codec) Unpack(s bitptr.Span, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	dst := rv.Elem()
	p, err := c.getPlan(dst.Type())
	if err != nil {
		return err
	}
	vals, err := p.layout.Decode(s)
	if err != nil {
		return err
	}
	for i, f := range p.fields {
		fv := dst.Field(f.idx)
		switch {
		case f.kind == reflect.Bool:
			fv.SetBool(vals[i].U != 0)
		case f.signed:
			fv.SetInt(vals[i].I)
		default:
			fv.SetUint(vals[i].U)
		}
	}
	return nil
}
