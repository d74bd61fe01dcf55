// Package miscfs provides transparent compression for file I/O on top of any
// absfs.Filer implementation, plus helpers to read and write whole files.
//
// Readers detect the compression format from the magic bytes at the start of
// a file and hide it behind a plain io.Reader. Writers pick the format from the
// file extension, or from an explicit FileType.
//
// # Features
//
//   - Transparent decompression of xz, gzip, bzip2, zstd, lz4, snappy and brotli
//   - Compression selected from the file extension
//   - Compression presets (Fastest, DefaultCompression, Best) and numeric levels
//   - Truncate and append modes, create and create-new semantics
//   - Statistics tracking
//   - Works on the OS filesystem (OSFS) or in memory (NewMemFS)
//
// # Quick Start
//
//	// Write a file - compressed as xz because of the extension
//	if err := miscfs.Write("data.txt.xz", []byte("Hello, compressed world!")); err != nil {
//	    return err
//	}
//
//	// Read it back - the format is detected from the content
//	text, err := miscfs.ReadString("data.txt.xz")
//
// # Writer options
//
//	fsys, _ := miscfs.New(miscfs.OSFS(), nil)
//	w, err := fsys.Writer("log.jsonl.zst").
//	    CompressionLevel(miscfs.Best).
//	    Threads(4).
//	    Append()
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
// Compressed writers only produce a complete stream after Close.
//
// The jsonl subpackage builds a multi-threaded JSON lines parser on top of
// OpenRead.
package miscfs
