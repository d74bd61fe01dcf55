package miscfs

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/absfs/absfs"
)

// Reader reads the decompressed content of a file
type Reader struct {
	mfs  *FS
	base absfs.File
	name string
	ft   FileType

	// src is the decompressor, or the buffered base file for plaintext
	src          io.Reader
	decompressor io.ReadCloser

	bytesRead int64
	closed    bool
	mu        sync.Mutex
}

// OpenRead opens name for reading and decompresses it transparently.
//
// The file type is detected from the magic bytes at the start of the file:
// xz, gzip, bzip2, zstd, lz4 and framed snappy are recognised. Brotli has no
// magic bytes and is only used for names ending in .br when
// Config.TrustExtension is set. Everything else is read as plaintext.
//
// File I/O is always buffered with a buffer of Config.BufferSize bytes.
func (mfs *FS) OpenRead(name string) (*Reader, error) {
	return mfs.openRead(name, mfs.cfg().BufferSize)
}

// OpenReadWithCapacity is like OpenRead but uses a read buffer of capacity bytes
func (mfs *FS) OpenReadWithCapacity(name string, capacity int) (*Reader, error) {
	return mfs.openRead(name, capacity)
}

func (mfs *FS) openRead(name string, capacity int) (*Reader, error) {
	config := mfs.cfg()
	log := mfs.logger()

	info, err := mfs.base.Stat(name)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrNotAFile}
	}

	base, err := mfs.base.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("miscfs: could not open file %s: %w", name, err)
	}

	br := bufio.NewReaderSize(base, capacity)
	// Short files are plaintext; Peek reports io.EOF for them
	magic, err := br.Peek(magicLen)
	if err != nil && err != io.EOF {
		base.Close()
		return nil, fmt.Errorf("miscfs: could not read magic bytes of %s: %w", name, err)
	}

	ft := DetectFileTypeBytes(magic)
	if ft == PlainText && config.TrustExtension && GuessFileType(name) == Brotli && len(magic) > 0 {
		ft = Brotli
	}

	r := &Reader{
		mfs:  mfs,
		base: base,
		name: name,
		ft:   ft,
		src:  br,
	}

	if ft.IsCompressed() {
		log.Debug().Str("file", name).Stringer("type", ft).Msg("file is detected to have a compressed type")
		dec, err := createDecompressor(ft, br)
		if err != nil {
			base.Close()
			return nil, fmt.Errorf("miscfs: file %s is detected to have type %s: %w", name, ft, err)
		}
		r.decompressor = dec
		r.src = dec
	} else {
		log.Debug().Str("file", name).Msg("open file as plaintext")
	}

	mfs.incrementStat(&mfs.stats.FilesOpened)
	mfs.stats.IncrementFileTypeCount(ft)
	return r, nil
}

// Read reads decompressed data
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, fs.ErrClosed
	}

	n, err := r.src.Read(p)
	if n > 0 {
		r.bytesRead += int64(n)
		r.mfs.addBytes(&r.mfs.stats.BytesRead, int64(n))
	}
	return n, err
}

// Close releases the decompressor and closes the underlying file
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.decompressor != nil {
		err = r.decompressor.Close()
		r.mfs.incrementStat(&r.mfs.stats.FilesDecompressed)
	}
	if cerr := r.base.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Name returns the name the reader was opened with
func (r *Reader) Name() string {
	return r.name
}

// FileType returns the detected file type
func (r *Reader) FileType() FileType {
	return r.ft
}

// BytesRead returns the number of decompressed bytes read so far
func (r *Reader) BytesRead() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bytesRead
}
