package miscfs

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/absfs/absfs"
	"github.com/rs/zerolog"
)

// Config holds filesystem configuration
type Config struct {
	// Buffer size for reading and writing (default: 64KB)
	BufferSize int

	// Read files with a .br extension as brotli. Brotli streams have no magic
	// bytes, so they are never detected from content alone.
	TrustExtension bool // default: true

	// Default compression level for writers
	Level Compression

	// Maximal number of encoder goroutines (zstd and lz4 only)
	Threads int // default: 1

	// Logger receives format detection and open/close events
	Logger zerolog.Logger
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BufferSize:     64 * 1024, // 64KB
		TrustExtension: true,
		Level:          DefaultCompression,
		Threads:        1,
		Logger:         zerolog.Nop(),
	}
}

// Stats holds I/O statistics
type Stats struct {
	FilesOpened       int64
	FilesDecompressed int64
	FilesWritten      int64
	FilesCompressed   int64

	// Uncompressed byte counts
	BytesRead    int64
	BytesWritten int64

	FileTypeCounts sync.Map // map[FileType]*atomic.Int64
}

// GetFileTypeCount returns the count for a specific file type
func (s *Stats) GetFileTypeCount(ft FileType) int64 {
	if val, ok := s.FileTypeCounts.Load(ft); ok {
		return val.(*atomic.Int64).Load()
	}
	return 0
}

// IncrementFileTypeCount increments the count for a specific file type
func (s *Stats) IncrementFileTypeCount(ft FileType) {
	val, _ := s.FileTypeCounts.LoadOrStore(ft, new(atomic.Int64))
	val.(*atomic.Int64).Add(1)
}

var (
	ErrUnsupportedFileType = errors.New("miscfs: unsupported file type")
	ErrNotAFile            = errors.New("miscfs: path does not point to a file")
)

// FS reads and writes compressed files on top of a base filesystem
type FS struct {
	base   absfs.Filer
	config *Config
	stats  Stats
	mu     sync.RWMutex
}

// New creates a new filesystem wrapper. A nil config selects DefaultConfig.
func New(base absfs.Filer, config *Config) (*FS, error) {
	if base == nil {
		return nil, errors.New("miscfs: nil base filesystem")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.Threads < 1 {
		config.Threads = 1
	}

	return &FS{
		base:   base,
		config: config,
	}, nil
}

// Base returns the underlying filesystem
func (mfs *FS) Base() absfs.Filer {
	return mfs.base
}

func (mfs *FS) cfg() Config {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return *mfs.config
}

func (mfs *FS) logger() *zerolog.Logger {
	mfs.mu.RLock()
	l := mfs.config.Logger
	mfs.mu.RUnlock()
	return &l
}

// SetLogger replaces the logger
func (mfs *FS) SetLogger(l zerolog.Logger) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.config.Logger = l
}

// SetLevel changes the default compression level for new writers
func (mfs *FS) SetLevel(level Compression) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.config.Level = level
}

// Stats returns current statistics
func (mfs *FS) Stats() *Stats {
	snapshot := &Stats{
		FilesOpened:       atomic.LoadInt64(&mfs.stats.FilesOpened),
		FilesDecompressed: atomic.LoadInt64(&mfs.stats.FilesDecompressed),
		FilesWritten:      atomic.LoadInt64(&mfs.stats.FilesWritten),
		FilesCompressed:   atomic.LoadInt64(&mfs.stats.FilesCompressed),
		BytesRead:         atomic.LoadInt64(&mfs.stats.BytesRead),
		BytesWritten:      atomic.LoadInt64(&mfs.stats.BytesWritten),
	}
	mfs.stats.FileTypeCounts.Range(func(k, v any) bool {
		c := new(atomic.Int64)
		c.Store(v.(*atomic.Int64).Load())
		snapshot.FileTypeCounts.Store(k, c)
		return true
	})
	return snapshot
}

// ResetStats resets statistics to zero
func (mfs *FS) ResetStats() {
	atomic.StoreInt64(&mfs.stats.FilesOpened, 0)
	atomic.StoreInt64(&mfs.stats.FilesDecompressed, 0)
	atomic.StoreInt64(&mfs.stats.FilesWritten, 0)
	atomic.StoreInt64(&mfs.stats.FilesCompressed, 0)
	atomic.StoreInt64(&mfs.stats.BytesRead, 0)
	atomic.StoreInt64(&mfs.stats.BytesWritten, 0)
	mfs.stats.FileTypeCounts.Range(func(k, _ any) bool {
		mfs.stats.FileTypeCounts.Delete(k)
		return true
	})
}

// incrementStat atomically increments a stat counter
func (mfs *FS) incrementStat(counter *int64) {
	atomic.AddInt64(counter, 1)
}

// addBytes atomically adds to a byte counter
func (mfs *FS) addBytes(counter *int64, n int64) {
	atomic.AddInt64(counter, n)
}

var (
	defaultOnce sync.Once
	defaultFS   *FS
)

// Default returns the FS over the operating system filesystem used by the
// package-level functions.
func Default() *FS {
	defaultOnce.Do(func() {
		defaultFS, _ = New(OSFS(), nil)
	})
	return defaultFS
}
