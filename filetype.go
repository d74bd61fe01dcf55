package miscfs

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// FileType represents the on-disk encoding of a file
type FileType string

const (
	PlainText FileType = "plaintext"
	Gzip      FileType = "gzip"
	Bzip2     FileType = "bzip2"
	Xz        FileType = "xz"
	Zstd      FileType = "zstd"
	LZ4       FileType = "lz4"
	Snappy    FileType = "snappy"
	Brotli    FileType = "brotli"
)

// magicLen is the number of leading bytes needed to recognise every format.
const magicLen = 10

// Extension mapping
var extensionMap = map[FileType]string{
	Gzip:   ".gz",
	Bzip2:  ".bz2",
	Xz:     ".xz",
	Zstd:   ".zst",
	LZ4:    ".lz4",
	Snappy: ".sz",
	Brotli: ".br",
}

// Reverse extension mapping (extension -> file type)
var reverseExtensionMap = map[string]FileType{
	".gz":     Gzip,
	".gzip":   Gzip,
	".bz2":    Bzip2,
	".bzip":   Bzip2,
	".bzip2":  Bzip2,
	".xz":     Xz,
	".zst":    Zstd,
	".zstd":   Zstd,
	".lz4":    LZ4,
	".sz":     Snappy,
	".snappy": Snappy,
	".br":     Brotli,
}

// Magic bytes in the order they are checked. Brotli streams carry no magic.
var magicBytes = []struct {
	ft    FileType
	magic []byte
}{
	{Xz, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}},
	{Gzip, []byte{0x1f, 0x8b}},
	{Bzip2, []byte{'B', 'Z', 'h'}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte{0xff, 0x06, 0x00, 0x00, 's', 'N', 'a', 'P', 'p', 'Y'}},
}

// String returns the name of the file type
func (ft FileType) String() string {
	if ft == "" {
		return string(PlainText)
	}
	return string(ft)
}

// Extension returns the canonical file extension, or "" for PlainText
func (ft FileType) Extension() string {
	return extensionMap[ft]
}

// IsCompressed reports whether the file type uses a codec
func (ft FileType) IsCompressed() bool {
	return ft != "" && ft != PlainText
}

// GuessFileType guesses the file type from the last extension of name.
// Unknown extensions fall back to PlainText.
func GuessFileType(name string) FileType {
	ext := strings.ToLower(filepath.Ext(name))
	if ft, ok := reverseExtensionMap[ext]; ok {
		return ft
	}
	return PlainText
}

// DetectFileTypeBytes detects the file type from the leading bytes of data
func DetectFileTypeBytes(data []byte) FileType {
	for _, m := range magicBytes {
		if len(data) >= len(m.magic) && bytes.Equal(data[:len(m.magic)], m.magic) {
			return m.ft
		}
	}
	return PlainText
}

// DetectFileType reads the magic bytes from r and detects the file type.
// The consumed bytes are not pushed back.
func DetectFileType(r io.Reader) (FileType, error) {
	buf := make([]byte, magicLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return DetectFileTypeBytes(buf[:n]), nil
}

// AddExtension appends the extension of ft to name unless it is already present
func AddExtension(name string, ft FileType) string {
	ext := ft.Extension()
	if ext == "" || GuessFileType(name) == ft {
		return name
	}
	return name + ext
}

// StripExtension removes a compression extension from name
func StripExtension(name string) (string, FileType, bool) {
	ext := filepath.Ext(name)
	if ft, ok := reverseExtensionMap[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(name, ext), ft, true
	}
	return name, PlainText, false
}
