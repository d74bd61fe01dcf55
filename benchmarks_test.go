package miscfs

import (
	"io"
	"testing"
)

// Benchmark data generators
func generateTestData(size int) []byte {
	// Generate semi-compressible data (mix of patterns and random)
	data := make([]byte, size)
	for i := range data {
		if i%4 == 0 {
			data[i] = byte(i % 256)
		} else {
			data[i] = byte(i % 64)
		}
	}
	return data
}

func generateHighlyCompressibleData(size int) []byte {
	data := make([]byte, size)
	pattern := []byte("The quick brown fox jumps over the lazy dog. ")
	for i := range data {
		data[i] = pattern[i%len(pattern)]
	}
	return data
}

func generateIncompressibleData(size int) []byte {
	// Generate pseudo-random data (hard to compress)
	data := make([]byte, size)
	seed := uint64(12345)
	for i := range data {
		seed = seed*1103515245 + 12345
		data[i] = byte(seed >> 16)
	}
	return data
}

func benchmarkWrite(b *testing.B, ft FileType, level Compression, data []byte) {
	mfs := newMemFS(b)
	name := AddExtension("bench", ft)

	b.ResetTimer()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		w, err := mfs.Writer(name).FileType(ft).CompressionLevel(level).Truncate()
		if err != nil {
			b.Fatal(err)
		}
		if err := writeAndClose(w, data); err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkRead(b *testing.B, ft FileType, data []byte) {
	mfs := newMemFS(b)
	name := AddExtension("bench", ft)
	if err := mfs.Write(name, data); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		r, err := mfs.OpenRead(name)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := io.Copy(io.Discard, r); err != nil {
			b.Fatal(err)
		}
		r.Close()
	}
}

func BenchmarkWrite(b *testing.B) {
	data := generateTestData(1024 * 1024)
	for _, ft := range allFileTypes {
		b.Run(ft.String(), func(b *testing.B) {
			benchmarkWrite(b, ft, DefaultCompression, data)
		})
	}
}

func BenchmarkWriteFastest(b *testing.B) {
	data := generateTestData(1024 * 1024)
	for _, ft := range allFileTypes {
		b.Run(ft.String(), func(b *testing.B) {
			benchmarkWrite(b, ft, Fastest, data)
		})
	}
}

func BenchmarkWriteIncompressible(b *testing.B) {
	data := generateIncompressibleData(1024 * 1024)
	for _, ft := range []FileType{Gzip, Zstd, LZ4, Snappy} {
		b.Run(ft.String(), func(b *testing.B) {
			benchmarkWrite(b, ft, DefaultCompression, data)
		})
	}
}

func BenchmarkRead(b *testing.B) {
	data := generateHighlyCompressibleData(1024 * 1024)
	for _, ft := range allFileTypes {
		b.Run(ft.String(), func(b *testing.B) {
			benchmarkRead(b, ft, data)
		})
	}
}

func BenchmarkDetectFileType(b *testing.B) {
	magic := []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}
	for i := 0; i < b.N; i++ {
		DetectFileTypeBytes(magic)
	}
}
