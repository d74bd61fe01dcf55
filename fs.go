package miscfs

import (
	"bytes"
	"io"
)

// Read reads the entire decompressed content of a file
func (mfs *FS) Read(name string) ([]byte, error) {
	r, err := mfs.OpenRead(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadString reads the entire decompressed content of a file into a string
func (mfs *FS) ReadString(name string) (string, error) {
	data, err := mfs.Read(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write writes data as the entire content of a file.
//
// The file type is chosen from the extension; unrecognised extensions are
// written as plaintext. The file is created or truncated.
func (mfs *FS) Write(name string, data []byte) error {
	w, err := mfs.Writer(name).Truncate()
	if err != nil {
		return err
	}
	return writeAndClose(w, data)
}

// Append appends data to a file, creating it if needed.
// For compressed types a new stream is appended.
func (mfs *FS) Append(name string, data []byte) error {
	w, err := mfs.Writer(name).Append()
	if err != nil {
		return err
	}
	return writeAndClose(w, data)
}

func writeAndClose(w *Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// OpenRead opens a file of the operating system filesystem for reading and
// decompresses it transparently. See (*FS).OpenRead.
func OpenRead(name string) (*Reader, error) {
	return Default().OpenRead(name)
}

// OpenReadWithCapacity is like OpenRead with a read buffer of capacity bytes
func OpenReadWithCapacity(name string, capacity int) (*Reader, error) {
	return Default().OpenReadWithCapacity(name, capacity)
}

// OpenWrite creates a builder to write a file of the operating system filesystem
func OpenWrite(name string) *WriteBuilder {
	return Default().Writer(name)
}

// Read reads the entire decompressed content of a file
func Read(name string) ([]byte, error) {
	return Default().Read(name)
}

// ReadString reads the entire decompressed content of a file into a string
func ReadString(name string) (string, error) {
	return Default().ReadString(name)
}

// Write writes data as the entire content of a file, compressed according
// to its extension
func Write(name string, data []byte) error {
	return Default().Write(name, data)
}

// Append appends data to a file
func Append(name string, data []byte) error {
	return Default().Append(name, data)
}
