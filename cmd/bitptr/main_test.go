package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/rawbytedev/bitptr"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(zaptest.NewLogger(t))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseAddress(t *testing.T) {
	a, err := parseAddress("13")
	require.NoError(t, err)
	require.Equal(t, "1.5", a.String())

	a, err = parseAddress("2.3")
	require.NoError(t, err)
	require.Equal(t, 19, a.Bits())

	_, err = parseAddress("-1")
	require.ErrorIs(t, err, bitptr.ErrOutOfRange)
	_, err = parseAddress("1.8")
	require.ErrorIs(t, err, bitptr.ErrInvalidBitOffset)
	_, err = parseAddress("x")
	require.Error(t, err)
	_, err = parseAddress("1.")
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	out, err := run(t, "--hex", "0x5AF0", "read", "--at", "4", "--width", "8")
	require.NoError(t, err)
	require.Equal(t, "175\n", out)

	out, err = run(t, "--hex", "5af0", "read", "--at", "0.4", "-w", "4", "--signed")
	require.NoError(t, err)
	require.Equal(t, "-6\n", out)

	_, err = run(t, "--hex", "5af0", "read", "--at", "1.4", "-w", "8")
	require.ErrorIs(t, err, bitptr.ErrBounds)

	_, err = run(t, "--hex", "5af0", "read", "-w", "65")
	require.ErrorIs(t, err, bitptr.ErrWidthTooLarge)
}

func TestWrite(t *testing.T) {
	out, err := run(t, "--hex", "0000", "write", "--at", "1.2", "-w", "3", "--value", "5")
	require.NoError(t, err)
	require.Equal(t, "0028\n", out)

	_, err = run(t, "--hex", "0000", "write", "--at", "1.2", "-w", "3", "--value", "9")
	require.ErrorIs(t, err, bitptr.ErrValueOverflow)

	out, err = run(t, "--hex", "0000", "write", "--at", "1.2", "-w", "3", "--value", "9", "--truncate")
	require.NoError(t, err)
	require.Equal(t, "0008\n", out)

	out, err = run(t, "--hex", "0000", "write", "-w", "4", "--value", "-1", "--signed")
	require.NoError(t, err)
	require.Equal(t, "f000\n", out)

	out, err = run(t, "--hex", "0000", "write", "-w", "8", "--value", "0b101")
	require.NoError(t, err)
	require.Equal(t, "0500\n", out)

	_, err = run(t, "--hex", "0000", "write", "-w", "8", "--value", "nope")
	require.Error(t, err)
}

func TestCopyFillDump(t *testing.T) {
	out, err := run(t, "--hex", "ff00", "copy", "--from", "0", "--to", "4", "--len", "8")
	require.NoError(t, err)
	require.Equal(t, "fff0\n", out)

	out, err = run(t, "--hex", "0000", "fill", "--at", "3", "--len", "6", "--value")
	require.NoError(t, err)
	require.Equal(t, "1f80\n", out)

	out, err = run(t, "--hex", "a5", "dump", "--at", "2", "--len", "4")
	require.NoError(t, err)
	require.Equal(t, "1001\n", out)

	out, err = run(t, "--hex", "a5", "dump", "--at", "0.6")
	require.NoError(t, err)
	require.Equal(t, "01\n", out)
}

func TestDecode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "header.yaml")
	layout := "name: header\nfields:\n  - {name: version, bits: 3}\n  - {name: flags, bits: 5}\n  - {name: delta, bits: 12, signed: true}\n"
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o644))

	out, err := run(t, "--hex", "43ffe0", "decode", "--layout", path)
	require.NoError(t, err)
	require.Contains(t, out, "version")
	require.Contains(t, out, "delta")
	require.Contains(t, out, "-2")

	_, err = run(t, "--hex", "43", "decode", "--layout", path)
	require.ErrorIs(t, err, bitptr.ErrBounds)
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"buf.bin", "buf.bin.zst"} {
		path := filepath.Join(dir, name)
		out, err := run(t, "--hex", "0000", "--out", path, "fill", "--len", "8", "--value")
		require.NoError(t, err)
		require.Empty(t, out)

		out, err = run(t, "--file", path, "dump")
		require.NoError(t, err)
		require.Equal(t, "1111111100000000\n", out, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "buf.bin"))
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0x00}, raw)
}

func TestInputFlags(t *testing.T) {
	_, err := run(t, "dump")
	require.ErrorIs(t, err, errNoInput)

	_, err = run(t, "--hex", "00", "--file", "x", "dump")
	require.Error(t, err)

	_, err = run(t, "--hex", "zz", "dump")
	require.Error(t, err)

	_, err = run(t, "--hex", "00", "read", "--at", "1.9", "-w", "1")
	require.Error(t, err)

	_, err = run(t, "--log-level", "loud", "--hex", "00", "dump")
	require.Error(t, err)
}
