package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rawbytedev/bitptr"
)

var errNoInput = errors.New("no input: set --hex or --file")

type app struct {
	hexIn string
	file  string
	out   string
	level levelValue

	log *zap.Logger
}

// newRootCommand builds the CLI. A nil logger is replaced by a console
// logger on stderr at the --log-level threshold.
func newRootCommand(log *zap.Logger) *cobra.Command {
	a := &app{log: log, level: levelValue{l: zapcore.InfoLevel}}
	root := &cobra.Command{
		Use:           "bitptr",
		Short:         "Inspect and edit buffers at bit granularity",
		Long:          fmt.Sprintf("Inspect and edit buffers at bit granularity.\nBits are numbered %s.", bitptr.Order),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return nil
			}
			l, err := newLogger(a.level.l)
			if err != nil {
				return fmt.Errorf("failed to initialize zap logger: %w", err)
			}
			a.log = l
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.hexIn, "hex", "", "input buffer as hex")
	flags.StringVarP(&a.file, "file", "f", "", "input file (.zst is decompressed)")
	flags.StringVarP(&a.out, "out", "o", "", "write the result to this file instead of stdout (.zst is compressed)")
	flags.Var(&a.level, "log-level", "log level (debug, info, warn, error)")
	root.MarkFlagsMutuallyExclusive("hex", "file")

	root.AddCommand(
		newReadCommand(a),
		newWriteCommand(a),
		newCopyCommand(a),
		newFillCommand(a),
		newDumpCommand(a),
		newDecodeCommand(a),
	)
	return root
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// load returns the input buffer.
func (a *app) load() ([]byte, error) {
	switch {
	case a.hexIn != "" && a.file != "":
		return nil, errors.New("--hex and --file are mutually exclusive")
	case a.hexIn != "":
		s := strings.TrimPrefix(strings.TrimPrefix(a.hexIn, "0x"), "0X")
		buf, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("--hex: %w", err)
		}
		return buf, nil
	case a.file != "":
		data, err := os.ReadFile(a.file)
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(a.file, ".zst") {
			a.log.Debug("loaded", zap.String("file", a.file), zap.Int("bytes", len(data)))
			return data, nil
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		buf, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", a.file, err)
		}
		a.log.Debug("loaded", zap.String("file", a.file), zap.Int("compressed", len(data)), zap.Int("bytes", len(buf)))
		return buf, nil
	default:
		return nil, errNoInput
	}
}

// store emits a modified buffer: hex on stdout, or the --out file.
func (a *app) store(cmd *cobra.Command, buf []byte) error {
	if a.out == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(buf))
		return err
	}
	f, err := os.Create(a.out)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(a.out, ".zst") {
		_, err = f.Write(buf)
		err = multierr.Append(err, f.Close())
	} else {
		var enc *zstd.Encoder
		enc, err = zstd.NewWriter(f)
		if err == nil {
			_, err = enc.Write(buf)
			err = multierr.Append(err, enc.Close())
		}
		err = multierr.Append(err, f.Close())
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", a.out, err)
	}
	a.log.Info("wrote", zap.String("file", a.out), zap.Int("bytes", len(buf)))
	return nil
}
