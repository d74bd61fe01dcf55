package miscfs

import (
	"fmt"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type preset uint8

const (
	presetDefault preset = iota
	presetFastest
	presetBest
	presetNumeric
)

// Compression selects the compression level of a writer.
//
// There are three presets, Fastest, DefaultCompression and Best, which map to the
// corresponding settings of every codec. Level(n) gives numeric control; each codec
// clamps n into its own range:
//
//	| Level | gzip      | bzip2 | xz  | brotli |
//	| ----: | --------: | ----: | --: | -----: |
//	|     0 | 0 (store) |     1 |   0 |      0 |
//	|   1-9 |       1-9 |   1-9 | 1-9 |    1-9 |
//	| 10-11 |         9 |     9 |   9 |  10-11 |
//	|  >=12 |         9 |     9 |   9 |     11 |
//
// zstd maps n through zstd.EncoderLevelFromZstd and lz4 maps n to lz4.Level1..Level9
// (0 is lz4.Fast). Snappy has no levels. The zero value is DefaultCompression.
type Compression struct {
	preset preset
	level  uint8
}

var (
	// Fastest provides the fastest compression possible
	Fastest = Compression{preset: presetFastest}
	// DefaultCompression is a reasonable default which corresponds to level 6
	DefaultCompression = Compression{preset: presetDefault}
	// Best provides the best compression possible
	Best = Compression{preset: presetBest}
)

// Level returns a numeric compression level
func Level(n uint8) Compression {
	return Compression{preset: presetNumeric, level: n}
}

func (c Compression) String() string {
	switch c.preset {
	case presetFastest:
		return "fastest"
	case presetBest:
		return "best"
	case presetNumeric:
		return fmt.Sprintf("level(%d)", c.level)
	default:
		return "default"
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func (c Compression) gzipLevel() int {
	switch c.preset {
	case presetFastest:
		return gzip.BestSpeed
	case presetBest:
		return gzip.BestCompression
	case presetNumeric:
		return clamp(int(c.level), gzip.NoCompression, gzip.BestCompression)
	default:
		return gzip.DefaultCompression
	}
}

func (c Compression) bzip2Level() int {
	switch c.preset {
	case presetFastest:
		return bzip2.BestSpeed
	case presetBest:
		return bzip2.BestCompression
	case presetNumeric:
		return clamp(int(c.level), bzip2.BestSpeed, bzip2.BestCompression)
	default:
		return bzip2.DefaultCompression
	}
}

// xz presets 0-9 and their dictionary sizes, as used by the xz command line tool
var xzDictCaps = [10]int{
	256 << 10, 1 << 20, 2 << 20, 4 << 20, 4 << 20,
	8 << 20, 8 << 20, 16 << 20, 32 << 20, 64 << 20,
}

func (c Compression) xzPreset() int {
	switch c.preset {
	case presetFastest:
		return 0
	case presetBest:
		return 9
	case presetNumeric:
		return clamp(int(c.level), 0, 9)
	default:
		return 6
	}
}

func (c Compression) xzDictCap() int {
	return xzDictCaps[c.xzPreset()]
}

func (c Compression) zstdLevel() zstd.EncoderLevel {
	switch c.preset {
	case presetFastest:
		return zstd.SpeedFastest
	case presetBest:
		return zstd.SpeedBestCompression
	case presetNumeric:
		return zstd.EncoderLevelFromZstd(int(c.level))
	default:
		return zstd.SpeedDefault
	}
}

var lz4Levels = [10]lz4.CompressionLevel{
	lz4.Fast, lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4,
	lz4.Level5, lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

func (c Compression) lz4Level() lz4.CompressionLevel {
	switch c.preset {
	case presetFastest:
		return lz4.Fast
	case presetBest:
		return lz4.Level9
	case presetNumeric:
		return lz4Levels[clamp(int(c.level), 0, 9)]
	default:
		return lz4.Level6
	}
}

func (c Compression) brotliLevel() int {
	switch c.preset {
	case presetFastest:
		return brotli.BestSpeed
	case presetBest:
		return brotli.BestCompression
	case presetNumeric:
		return clamp(int(c.level), brotli.BestSpeed, brotli.BestCompression)
	default:
		return brotli.DefaultCompression
	}
}
