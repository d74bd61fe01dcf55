package miscfs

import (
	"bytes"
	"errors"
	"testing"
)

func TestCompressBytes(t *testing.T) {
	testData := generateTestData(32 * 1024)

	for _, ft := range allFileTypes {
		t.Run(ft.String(), func(t *testing.T) {
			compressed, err := CompressBytes(testData, ft, DefaultCompression)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			if ft.IsCompressed() && len(compressed) >= len(testData) {
				t.Errorf("Expected compression, got %d bytes from %d", len(compressed), len(testData))
			}

			decompressed, err := DecompressBytesAs(compressed, ft)
			if err != nil {
				t.Fatalf("Failed to decompress: %v", err)
			}
			if !bytes.Equal(decompressed, testData) {
				t.Fatal("Decompressed data does not match")
			}
		})
	}
}

func TestCompressBytesPlainTextCopies(t *testing.T) {
	data := []byte("plain")
	out, err := CompressBytes(data, PlainText, DefaultCompression)
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	out[0] = 'P'
	if data[0] != 'p' {
		t.Error("Expected CompressBytes to return a copy")
	}
}

func TestDecompressBytesDetects(t *testing.T) {
	testData := []byte("detect me")

	compressed, err := CompressBytes(testData, Bzip2, Best)
	if err != nil {
		t.Fatalf("Failed to compress: %v", err)
	}
	out, err := DecompressBytes(compressed)
	if err != nil {
		t.Fatalf("Failed to decompress: %v", err)
	}
	if !bytes.Equal(out, testData) {
		t.Fatalf("Expected %q, got %q", testData, out)
	}

	out, err = DecompressBytes(testData)
	if err != nil {
		t.Fatalf("Failed to decompress plaintext: %v", err)
	}
	if !bytes.Equal(out, testData) {
		t.Fatalf("Expected plaintext to be unchanged, got %q", out)
	}
}

func TestDecompressBytesCorrupt(t *testing.T) {
	corrupt := []byte{0x1f, 0x8b, 0xff, 0xff, 0xff, 0xff}
	if _, err := DecompressBytes(corrupt); err == nil {
		t.Error("Expected error for corrupt gzip data")
	}
}

func TestUnsupportedFileType(t *testing.T) {
	if _, err := CompressBytes([]byte("x"), FileType("rar"), DefaultCompression); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Expected ErrUnsupportedFileType, got %v", err)
	}
	if _, err := DecompressBytesAs([]byte("x"), FileType("rar")); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Expected ErrUnsupportedFileType, got %v", err)
	}
}

func TestCompressionRatio(t *testing.T) {
	if got := CompressionRatio(0, 10); got != 0 {
		t.Errorf("Expected 0 for empty input, got %f", got)
	}
	if got := CompressionRatio(100, 25); got != 0.25 {
		t.Errorf("Expected 0.25, got %f", got)
	}
}
