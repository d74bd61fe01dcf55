package miscfs

import (
	"io"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// createCompressor creates a compressor for the specified file type.
// Closing the compressor finalises the stream but does not close w.
func createCompressor(ft FileType, w io.Writer, level Compression, threads int) (io.WriteCloser, error) {
	if threads < 1 {
		threads = 1
	}
	switch ft {
	case Gzip:
		return gzip.NewWriterLevel(w, level.gzipLevel())
	case Bzip2:
		return bzip2.NewWriter(w, &bzip2.WriterConfig{Level: level.bzip2Level()})
	case Xz:
		return xz.WriterConfig{
			DictCap:  level.xzDictCap(),
			CheckSum: xz.CRC64,
		}.NewWriter(w)
	case Zstd:
		return zstd.NewWriter(w,
			zstd.WithEncoderLevel(level.zstdLevel()),
			zstd.WithEncoderConcurrency(threads),
		)
	case LZ4:
		zw := lz4.NewWriter(w)
		opts := []lz4.Option{lz4.CompressionLevelOption(level.lz4Level())}
		if threads > 1 {
			opts = append(opts, lz4.ConcurrencyOption(threads))
		}
		if err := zw.Apply(opts...); err != nil {
			return nil, err
		}
		return zw, nil
	case Snappy:
		return snappy.NewBufferedWriter(w), nil
	case Brotli:
		return brotli.NewWriterLevel(w, level.brotliLevel()), nil
	default:
		return nil, ErrUnsupportedFileType
	}
}

// createDecompressor creates a decompressor for the specified file type.
// Closing the decompressor releases codec resources but does not close r.
func createDecompressor(ft FileType, r io.Reader) (io.ReadCloser, error) {
	switch ft {
	case Gzip:
		// gzip.Reader reads concatenated members by default
		return gzip.NewReader(r)
	case Bzip2:
		return bzip2.NewReader(r, nil)
	case Xz:
		zr, err := xz.NewReader(r)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(zr), nil
	case Zstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case Snappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	case Brotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedFileType
	}
}
