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

// WriteBuilder controls how a writeable file will be opened.
//
// The file type is guessed from the extension of the name unless it is set
// explicitly with FileType. Finish with Truncate or Append.
type WriteBuilder struct {
	mfs  *FS
	name string

	fileType       FileType
	level          Compression
	bufferCapacity int
	threads        int
	create         bool
	createNew      bool
}

// Writer creates a builder to open name for writing
func (mfs *FS) Writer(name string) *WriteBuilder {
	config := mfs.cfg()
	return &WriteBuilder{
		mfs:            mfs,
		name:           name,
		level:          config.Level,
		bufferCapacity: config.BufferSize,
		threads:        config.Threads,
		create:         true,
	}
}

// FileType overrides the file type guessed from the extension
func (b *WriteBuilder) FileType(ft FileType) *WriteBuilder {
	b.fileType = ft
	return b
}

// CompressionLevel sets the compression level. It has no effect for PlainText.
func (b *WriteBuilder) CompressionLevel(level Compression) *WriteBuilder {
	b.level = level
	return b
}

// BufferCapacity sets the size of the write buffer in bytes
func (b *WriteBuilder) BufferCapacity(capacity int) *WriteBuilder {
	b.bufferCapacity = capacity
	return b
}

// Create sets whether a missing file is created (default: true)
func (b *WriteBuilder) Create(create bool) *WriteBuilder {
	b.create = create
	return b
}

// CreateNew requires that no file exists at the target location.
// If set, Create is ignored.
func (b *WriteBuilder) CreateNew(createNew bool) *WriteBuilder {
	b.createNew = createNew
	return b
}

// Threads gives the maximal number of encoder goroutines. It is used by zstd
// and lz4; 0 has the same effect as 1.
func (b *WriteBuilder) Threads(threads uint8) *WriteBuilder {
	b.threads = max(int(threads), 1)
	return b
}

// Truncate opens the file in truncate mode
func (b *WriteBuilder) Truncate() (*Writer, error) {
	return b.open(os.O_TRUNC)
}

// Append opens the file in append mode. Appending to a compressed file adds
// a new stream; gzip, xz and zstd readers read concatenated streams.
func (b *WriteBuilder) Append() (*Writer, error) {
	return b.open(os.O_APPEND)
}

func (b *WriteBuilder) open(mode int) (*Writer, error) {
	mfs := b.mfs
	log := mfs.logger()

	ft := b.fileType
	if ft == "" {
		ft = GuessFileType(b.name)
	}

	flag := os.O_WRONLY | mode
	switch {
	case b.createNew:
		flag |= os.O_CREATE | os.O_EXCL
	case b.create:
		flag |= os.O_CREATE
	}

	base, err := mfs.base.OpenFile(b.name, flag, 0666)
	if err != nil {
		return nil, fmt.Errorf("miscfs: could not open file %s: %w", b.name, err)
	}

	w := &Writer{
		mfs:  mfs,
		base: base,
		name: b.name,
		ft:   ft,
		buf:  bufio.NewWriterSize(base, max(b.bufferCapacity, 16)),
	}
	w.dst = w.buf

	if ft.IsCompressed() {
		compressor, err := createCompressor(ft, w.buf, b.level, b.threads)
		if err != nil {
			base.Close()
			return nil, fmt.Errorf("miscfs: could not create %s compressor for %s: %w", ft, b.name, err)
		}
		w.compressor = compressor
		w.dst = compressor
	}

	log.Debug().Str("file", b.name).Stringer("type", ft).Stringer("level", b.level).Msg("open file for writing")
	return w, nil
}

// Writer writes and compresses data. Compressed streams are only complete
// after Close.
type Writer struct {
	mfs  *FS
	base absfs.File
	name string
	ft   FileType

	buf        *bufio.Writer
	compressor io.WriteCloser
	// dst is the compressor, or the buffer for plaintext
	dst io.Writer

	bytesWritten int64
	closed       bool
	mu           sync.Mutex
}

// Write writes uncompressed data
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, fs.ErrClosed
	}
	n, err := w.dst.Write(p)
	w.bytesWritten += int64(n)
	return n, err
}

// WriteString writes a string
func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush flushes buffered data to the file. Compressors without a flush
// operation keep their pending block until Close.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fs.ErrClosed
	}
	if f, ok := w.compressor.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return w.buf.Flush()
}

// Close finalises the compressed stream, flushes and closes the file
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var err error
	if w.compressor != nil {
		err = w.compressor.Close()
	}
	if ferr := w.buf.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	if cerr := w.base.Close(); cerr != nil && err == nil {
		err = cerr
	}

	w.mfs.incrementStat(&w.mfs.stats.FilesWritten)
	if w.compressor != nil {
		w.mfs.incrementStat(&w.mfs.stats.FilesCompressed)
	}
	w.mfs.addBytes(&w.mfs.stats.BytesWritten, w.bytesWritten)
	w.mfs.stats.IncrementFileTypeCount(w.ft)
	return err
}

// Name returns the name the writer was opened with
func (w *Writer) Name() string {
	return w.name
}

// FileType returns the file type being written
func (w *Writer) FileType() FileType {
	return w.ft
}
