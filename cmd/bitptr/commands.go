package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rawbytedev/bitptr"
	"github.com/rawbytedev/bitptr/pkg/bitlayout"
)

func newReadCommand(a *app) *cobra.Command {
	var (
		at     addrValue
		width  int
		signed bool
	)
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read an integer field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load()
			if err != nil {
				return err
			}
			a.log.Debug("read", zap.Stringer("at", at.a), zap.Int("width", width), zap.Bool("signed", signed))
			if signed {
				v, err := bitptr.ReadInt(buf, at.a, width)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			}
			v, err := bitptr.ReadUint(buf, at.a, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
	cmd.Flags().Var(&at, "at", "bit address (N or byte.bit)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "field width in bits (0-64)")
	cmd.Flags().BoolVar(&signed, "signed", false, "sign-extend the field")
	_ = cmd.MarkFlagRequired("width")
	return cmd
}

func newWriteCommand(a *app) *cobra.Command {
	var (
		at       addrValue
		width    int
		value    string
		signed   bool
		truncate bool
	)
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write an integer field",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load()
			if err != nil {
				return err
			}
			a.log.Debug("write", zap.Stringer("at", at.a), zap.Int("width", width),
				zap.String("value", value), zap.Bool("signed", signed), zap.Bool("truncate", truncate))
			if signed {
				v, err := strconv.ParseInt(value, 0, 64)
				if err != nil {
					return fmt.Errorf("--value: %w", err)
				}
				if truncate {
					err = bitptr.WriteIntTrunc(buf, at.a, width, v)
				} else {
					err = bitptr.WriteInt(buf, at.a, width, v)
				}
				if err != nil {
					return err
				}
				return a.store(cmd, buf)
			}
			v, err := strconv.ParseUint(value, 0, 64)
			if err != nil {
				return fmt.Errorf("--value: %w", err)
			}
			if truncate {
				err = bitptr.WriteUintTrunc(buf, at.a, width, v)
			} else {
				err = bitptr.WriteUint(buf, at.a, width, v)
			}
			if err != nil {
				return err
			}
			return a.store(cmd, buf)
		},
	}
	cmd.Flags().Var(&at, "at", "bit address (N or byte.bit)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "field width in bits (0-64)")
	cmd.Flags().StringVar(&value, "value", "", "value to store (decimal, 0x hex or 0b binary)")
	cmd.Flags().BoolVar(&signed, "signed", false, "store a two's complement value")
	cmd.Flags().BoolVar(&truncate, "truncate", false, "keep the low bits of a value that does not fit")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newCopyCommand(a *app) *cobra.Command {
	var (
		from, to addrValue
		n        int
	)
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a bit range within the buffer; the ranges may overlap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load()
			if err != nil {
				return err
			}
			a.log.Debug("copy", zap.Stringer("from", from.a), zap.Stringer("to", to.a), zap.Int("len", n))
			if err := bitptr.Copy(buf, to.a, buf, from.a, n); err != nil {
				return err
			}
			return a.store(cmd, buf)
		},
	}
	cmd.Flags().Var(&from, "from", "source bit address")
	cmd.Flags().Var(&to, "to", "destination bit address")
	cmd.Flags().IntVarP(&n, "len", "n", 0, "number of bits")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("len")
	return cmd
}

func newFillCommand(a *app) *cobra.Command {
	var (
		at    addrValue
		n     int
		value bool
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Set a bit range to all ones or all zeros",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load()
			if err != nil {
				return err
			}
			a.log.Debug("fill", zap.Stringer("at", at.a), zap.Int("len", n), zap.Bool("value", value))
			if err := bitptr.Fill(buf, at.a, n, value); err != nil {
				return err
			}
			return a.store(cmd, buf)
		},
	}
	cmd.Flags().Var(&at, "at", "bit address (N or byte.bit)")
	cmd.Flags().IntVarP(&n, "len", "n", 0, "number of bits")
	cmd.Flags().BoolVar(&value, "value", false, "fill with ones")
	_ = cmd.MarkFlagRequired("len")
	return cmd
}

// tail returns the span from at to the end of buf, or n bits when n >= 0.
func tail(buf []byte, at bitptr.Address, n int) (bitptr.Span, error) {
	if n < 0 {
		n = len(buf)<<3 - at.Bits()
	}
	return bitptr.NewSpan(buf, at, n)
}

func newDumpCommand(a *app) *cobra.Command {
	var (
		at addrValue
		n  int
	)
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print a bit range as 0s and 1s",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := a.load()
			if err != nil {
				return err
			}
			s, err := tail(buf, at.a, n)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s.String())
			return err
		},
	}
	cmd.Flags().Var(&at, "at", "bit address (N or byte.bit)")
	cmd.Flags().IntVarP(&n, "len", "n", -1, "number of bits (default: to the end)")
	return cmd
}

func newDecodeCommand(a *app) *cobra.Command {
	var (
		at     addrValue
		layout string
	)
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a record described by a YAML layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(layout)
			if err != nil {
				return err
			}
			l, err := bitlayout.Load(f)
			f.Close()
			if err != nil {
				return err
			}
			buf, err := a.load()
			if err != nil {
				return err
			}
			s, err := tail(buf, at.a, -1)
			if err != nil {
				return err
			}
			vals, err := l.Decode(s)
			if err != nil {
				return err
			}
			a.log.Debug("decoded", zap.String("layout", l.Name), zap.Int("fields", len(vals)), zap.Int("bits", l.Bits()))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Field", "Offset", "Bits", "Value"})
			table.SetBorder(true)
			off := 0
			for i, v := range vals {
				bits := l.Fields[i].Bits
				table.Append([]string{v.Name, strconv.Itoa(off), strconv.Itoa(bits), v.String()})
				off += bits
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().Var(&at, "at", "record start (N or byte.bit)")
	cmd.Flags().StringVarP(&layout, "layout", "l", "", "YAML layout file")
	_ = cmd.MarkFlagRequired("layout")
	return cmd
}
