package main

import (
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"go.uber.org/zap"

	"github.com/rawbytedev/bitptr"
	"github.com/rawbytedev/bitptr/pkg/bitlayout"
)

// Heap profiling driver: packs and unpacks records at unaligned offsets,
// shifts them with overlapping copies and writes mem.prof.
func main() {
	var (
		iterations int
		linger     time.Duration
	)
	flag.IntVar(&iterations, "n", 10000, "iterations")
	flag.DurationVar(&linger, "linger", 0, "keep the pprof endpoint up after profiling")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	go func() {
		logger.Info("pprof", zap.Error(http.ListenAndServe("localhost:6060", nil)))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		logger.Fatal("create profile", zap.Error(err))
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	type record struct {
		Kind  uint8  `bits:"4"`
		Len   uint16 `bits:"11"`
		Delta int32  `bits:"21"`
		Seq   uint64 `bits:"40"`
		Ack   bool
	}
	codec := bitlayout.NewCodec()
	buf := make([]byte, 64)
	start, _ := bitptr.NewAddress(1, 5)
	s, err := bitptr.NewSpan(buf, start, 77)
	if err != nil {
		logger.Fatal("span", zap.Error(err))
	}
	from, _ := bitptr.AddressOf(13)
	to, _ := bitptr.AddressOf(29)

	begin := time.Now()
	for i := 0; i < iterations; i++ {
		z := record{Kind: uint8(i & 15), Len: uint16(i & 2047), Delta: int32(-i), Seq: uint64(i) << 8, Ack: i&1 == 0}
		if err := codec.Pack(s, z); err != nil {
			logger.Fatal("pack", zap.Int("i", i), zap.Error(err))
		}
		res := &record{}
		if err := codec.Unpack(s, res); err != nil {
			logger.Fatal("unpack", zap.Int("i", i), zap.Error(err))
		}
		if err := bitptr.Copy(buf, to, buf, from, 200); err != nil {
			logger.Fatal("copy", zap.Error(err))
		}
	}
	logger.Info("done", zap.Int("iterations", iterations), zap.Duration("elapsed", time.Since(begin)))

	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.Fatal("write profile", zap.Error(err))
	}
	time.Sleep(linger)
}
