package miscfs

import (
	"bytes"
	"io"
)

// CompressBytes compresses a byte slice with the given file type and level
func CompressBytes(data []byte, ft FileType, level Compression) ([]byte, error) {
	if !ft.IsCompressed() {
		return bytes.Clone(data), nil
	}

	var buf bytes.Buffer
	compressor, err := createCompressor(ft, &buf, level, 1)
	if err != nil {
		return nil, err
	}
	if _, err := compressor.Write(data); err != nil {
		compressor.Close()
		return nil, err
	}
	if err := compressor.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes decompresses a byte slice whose type is detected from its
// magic bytes. Data without known magic bytes is returned unchanged.
func DecompressBytes(data []byte) ([]byte, error) {
	return DecompressBytesAs(data, DetectFileTypeBytes(data))
}

// DecompressBytesAs decompresses a byte slice of a known file type
func DecompressBytesAs(data []byte, ft FileType) ([]byte, error) {
	if !ft.IsCompressed() {
		return bytes.Clone(data), nil
	}

	decompressor, err := createDecompressor(ft, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	return io.ReadAll(decompressor)
}

// CompressionRatio returns compressedSize/originalSize, lower is better
func CompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}
