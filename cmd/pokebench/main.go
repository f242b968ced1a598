// Command pokebench measures encode and decode throughput of the
// fixed-layout codec against a general-purpose serializer, on a workload
// shaped like a display-list batch.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/oy3o/pokebuf"
)

type config struct {
	Iterations int    `env:"POKEBENCH_ITERATIONS" envDefault:"100000"`
	Batch      int    `env:"POKEBENCH_BATCH" envDefault:"64"`
	Codec      string `env:"POKEBENCH_CODEC" envDefault:"pokebuf"`
	Verify     bool   `env:"POKEBENCH_VERIFY" envDefault:"true"`
}

type style uint32

const (
	styleNone style = iota
	styleSolid
	styleDashed
)

func init() {
	pokebuf.RegisterEnum(styleNone, styleSolid, styleDashed)
}

type fill struct {
	Color uint32
}

type stroke struct {
	Color uint32
	Width float32
}

type paint struct {
	pokebuf.Union
	Fill   *fill
	Stroke *stroke
}

// item is the benchmark workload: rectangle, spatial placement, paint
// union, style discriminant, and an optional hit-test tag.
type item struct {
	Rect    [4]float32
	Spatial uint64
	Paint   paint
	Kind    style
	Tag     pokebuf.Option[uint32]
	Visible bool
}

func makeBatch(n int) []item {
	items := make([]item, n)
	for i := range items {
		it := item{
			Rect:    [4]float32{float32(i), float32(i + 1), 100, 50},
			Spatial: uint64(i * 7),
			Kind:    styleSolid,
			Visible: i%2 == 0,
		}
		if i%2 == 0 {
			it.Paint.Fill = pokebuf.Ptr(fill{Color: 0xFF00FF00})
		} else {
			it.Paint.Stroke = pokebuf.Ptr(stroke{Color: 0xFF0000FF, Width: 2})
		}
		if i%3 == 0 {
			it.Tag = pokebuf.Some(uint32(i))
		}
		items[i] = it
	}
	return items
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pokebench:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	flag.IntVar(&cfg.Iterations, "n", cfg.Iterations, "number of batch encode/decode iterations")
	flag.IntVar(&cfg.Batch, "batch", cfg.Batch, "items per encoded batch")
	flag.StringVar(&cfg.Codec, "codec", cfg.Codec, "codec to exercise: pokebuf or msgpack")
	flag.BoolVar(&cfg.Verify, "verify", cfg.Verify, "decode a batch and compare it against the input")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting benchmark",
		zap.String("codec", cfg.Codec),
		zap.Int("iterations", cfg.Iterations),
		zap.Int("batch", cfg.Batch),
	)

	items := makeBatch(cfg.Batch)
	switch cfg.Codec {
	case "pokebuf":
		return runPokebuf(logger, cfg, items)
	case "msgpack":
		return runMsgpack(logger, cfg, items)
	default:
		return fmt.Errorf("unknown codec %q", cfg.Codec)
	}
}

func runPokebuf(logger *zap.Logger, cfg config, items []item) error {
	codec, err := pokebuf.NewCodec[item]()
	if err != nil {
		return fmt.Errorf("compile codec: %w", err)
	}
	logger.Info("codec compiled", zap.Int("max_size_per_item", codec.MaxSize()))

	buf := make([]byte, cfg.Batch*codec.MaxSize())
	var encoded int

	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		at := 0
		for j := range items {
			if at, err = codec.PokeInto(buf, at, &items[j]); err != nil {
				return fmt.Errorf("encode item %d: %w", j, err)
			}
		}
		encoded = at
	}
	reportEncode(logger, cfg, time.Since(start), encoded)

	decoded := make([]item, cfg.Batch)
	start = time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		at := 0
		for j := range decoded {
			if at, err = codec.PeekFrom(buf[:encoded], at, &decoded[j]); err != nil {
				return fmt.Errorf("decode item %d: %w", j, err)
			}
		}
	}
	reportDecode(logger, cfg, time.Since(start), encoded)

	if cfg.Verify {
		return verify(logger, items, decoded)
	}
	return nil
}

func runMsgpack(logger *zap.Logger, cfg config, items []item) error {
	var buf bytes.Buffer
	var err error

	enc := msgpack.NewEncoder(&buf)
	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		buf.Reset()
		enc.Reset(&buf)
		for j := range items {
			if err = enc.Encode(&items[j]); err != nil {
				return fmt.Errorf("encode item %d: %w", j, err)
			}
		}
	}
	encoded := buf.Len()
	reportEncode(logger, cfg, time.Since(start), encoded)

	decoded := make([]item, cfg.Batch)
	data := buf.Bytes()
	reader := pokebuf.NewExactReader(data)
	dec := msgpack.NewDecoder(reader)

	start = time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		reader.Reset()
		dec.Reset(reader)
		for j := range decoded {
			if err = dec.Decode(&decoded[j]); err != nil {
				return fmt.Errorf("decode item %d: %w", j, err)
			}
		}
	}
	reportDecode(logger, cfg, time.Since(start), encoded)

	if cfg.Verify {
		return verify(logger, items, decoded)
	}
	return nil
}

func reportEncode(logger *zap.Logger, cfg config, elapsed time.Duration, batchBytes int) {
	logger.Info("encode complete",
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes_per_batch", batchBytes),
		zap.Float64("items_per_sec", rate(cfg, elapsed)),
		zap.Float64("mb_per_sec", mbRate(cfg, elapsed, batchBytes)),
	)
}

func reportDecode(logger *zap.Logger, cfg config, elapsed time.Duration, batchBytes int) {
	logger.Info("decode complete",
		zap.Duration("elapsed", elapsed),
		zap.Float64("items_per_sec", rate(cfg, elapsed)),
		zap.Float64("mb_per_sec", mbRate(cfg, elapsed, batchBytes)),
	)
}

func rate(cfg config, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(cfg.Iterations) * float64(cfg.Batch) / elapsed.Seconds()
}

func mbRate(cfg config, elapsed time.Duration, batchBytes int) float64 {
	if elapsed <= 0 {
		return 0
	}
	total := float64(cfg.Iterations) * float64(batchBytes)
	return total / (1 << 20) / elapsed.Seconds()
}

func verify(logger *zap.Logger, want, got []item) error {
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("verification failed: decoded batch differs from input")
	}
	logger.Info("verification passed", zap.Int("items", len(want)))
	return nil
}
