package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"

	"github.com/rawbytedev/bitptr"
)

var (
	_ pflag.Value = (*addrValue)(nil)
	_ pflag.Value = (*levelValue)(nil)
)

// addrValue accepts an absolute bit index ("13") or byte.bit ("1.5").
type addrValue struct {
	a bitptr.Address
}

func (v *addrValue) String() string { return v.a.String() }

func (v *addrValue) Type() string { return "address" }

func (v *addrValue) Set(s string) error {
	a, err := parseAddress(s)
	if err != nil {
		return err
	}
	v.a = a
	return nil
}

func parseAddress(s string) (bitptr.Address, error) {
	byteStr, bitStr, dotted := strings.Cut(s, ".")
	if !dotted {
		n, err := strconv.Atoi(s)
		if err != nil {
			return bitptr.Address{}, fmt.Errorf("address %q: %w", s, err)
		}
		return bitptr.AddressOf(n)
	}
	b, err := strconv.Atoi(byteStr)
	if err != nil {
		return bitptr.Address{}, fmt.Errorf("address %q: byte: %w", s, err)
	}
	bit, err := strconv.Atoi(bitStr)
	if err != nil {
		return bitptr.Address{}, fmt.Errorf("address %q: bit: %w", s, err)
	}
	return bitptr.NewAddress(b, bit)
}

type levelValue struct {
	l zapcore.Level
}

func (v *levelValue) String() string { return v.l.String() }

func (v *levelValue) Type() string { return "level" }

func (v *levelValue) Set(s string) error { return v.l.UnmarshalText([]byte(s)) }
