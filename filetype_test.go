package miscfs

import (
	"bytes"
	"errors"
	"testing"
)

func TestGuessFileType(t *testing.T) {
	tests := []struct {
		name     string
		expected FileType
	}{
		{"data.json", PlainText},
		{"data", PlainText},
		{"data.gz", Gzip},
		{"data.GZ", Gzip},
		{"data.gzip", Gzip},
		{"data.bz2", Bzip2},
		{"data.bzip2", Bzip2},
		{"data.xz", Xz},
		{"data.jsonl.xz", Xz},
		{"data.zst", Zstd},
		{"data.zstd", Zstd},
		{"data.lz4", LZ4},
		{"data.sz", Snappy},
		{"data.snappy", Snappy},
		{"data.br", Brotli},
		{"data.xz.json", PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessFileType(tt.name); got != tt.expected {
				t.Errorf("GuessFileType(%q) = %s, expected %s", tt.name, got, tt.expected)
			}
		})
	}
}

func TestDetectFileTypeBytes(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected FileType
	}{
		{"empty", nil, PlainText},
		{"json", []byte(`{"a":1}`), PlainText},
		{"xz", []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}, Xz},
		{"xz truncated", []byte{0xfd, '7', 'z', 'X', 'Z'}, PlainText},
		{"gzip", []byte{0x1f, 0x8b, 0x08}, Gzip},
		{"bzip2", []byte("BZh91AY&SY"), Bzip2},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}, Zstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18, 0x64}, LZ4},
		{"snappy", []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}, Snappy},
		{"snappy truncated", []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a'}, PlainText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFileTypeBytes(tt.data); got != tt.expected {
				t.Errorf("DetectFileTypeBytes(%x) = %s, expected %s", tt.data, got, tt.expected)
			}
		})
	}
}

func TestDetectFileTypeCompressed(t *testing.T) {
	testData := []byte("magic bytes are written by every encoder")

	for _, ft := range allFileTypes {
		if ft == Brotli {
			continue
		}
		t.Run(ft.String(), func(t *testing.T) {
			compressed, err := CompressBytes(testData, ft, DefaultCompression)
			if err != nil {
				t.Fatalf("Failed to compress data: %v", err)
			}
			got, err := DetectFileType(bytes.NewReader(compressed))
			if err != nil {
				t.Fatalf("Failed to detect file type: %v", err)
			}
			if got != ft {
				t.Errorf("Expected %s, got %s", ft, got)
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestDetectFileTypeReadError(t *testing.T) {
	if _, err := DetectFileType(failingReader{}); err == nil {
		t.Error("Expected read error to be returned")
	}

	got, err := DetectFileType(bytes.NewReader([]byte("ab")))
	if err != nil {
		t.Fatalf("Expected short input to be accepted, got %v", err)
	}
	if got != PlainText {
		t.Errorf("Expected plaintext, got %s", got)
	}
}

func TestExtensions(t *testing.T) {
	if got := AddExtension("data.json", Gzip); got != "data.json.gz" {
		t.Errorf("Expected data.json.gz, got %s", got)
	}
	if got := AddExtension("data.json.gz", Gzip); got != "data.json.gz" {
		t.Errorf("Expected extension not to be added twice, got %s", got)
	}
	if got := AddExtension("data.json", PlainText); got != "data.json" {
		t.Errorf("Expected plaintext to have no extension, got %s", got)
	}

	name, ft, ok := StripExtension("data.json.zst")
	if !ok || name != "data.json" || ft != Zstd {
		t.Errorf("StripExtension = (%s, %s, %v), expected (data.json, zstd, true)", name, ft, ok)
	}
	name, ft, ok = StripExtension("data.json")
	if ok || name != "data.json" || ft != PlainText {
		t.Errorf("StripExtension = (%s, %s, %v), expected (data.json, plaintext, false)", name, ft, ok)
	}
}

func TestFileTypeMethods(t *testing.T) {
	for _, ft := range allFileTypes {
		if ft.IsCompressed() != (ft != PlainText) {
			t.Errorf("%s: unexpected IsCompressed %v", ft, ft.IsCompressed())
		}
		if ft.IsCompressed() && GuessFileType("x"+ft.Extension()) != ft {
			t.Errorf("%s: extension %q does not map back", ft, ft.Extension())
		}
	}

	var zero FileType
	if zero.String() != "plaintext" {
		t.Errorf("Expected zero value to print as plaintext, got %s", zero.String())
	}
	if zero.IsCompressed() {
		t.Error("Expected zero value not to be compressed")
	}
}
