package miscfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/absfs/absfs"
)

// normalizePath normalizes a path for consistent storage/lookup
// It removes leading slashes and cleans the path
func normalizePath(name string) string {
	name = filepath.Clean(filepath.ToSlash(name))
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "."
	}
	return name
}

// memFS is a simple in-memory filesystem
type memFS struct {
	nodes map[string]*memNode
	mu    sync.RWMutex
}

// memNode is the shared content of a file or directory
type memNode struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory filesystem.
// Every handle opened on the same name shares its content.
func NewMemFS() absfs.Filer {
	return &memFS{
		nodes: map[string]*memNode{
			".": {mode: fs.ModeDir | 0755, modTime: time.Now()},
		},
	}
}

func (mfs *memFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.nodes[name]

	switch {
	case exists && flag&(os.O_CREATE|os.O_EXCL) == os.O_CREATE|os.O_EXCL:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrExist}
	case !exists && flag&os.O_CREATE == 0:
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	case !exists:
		if parent, ok := mfs.nodes[filepath.Dir(name)]; !ok || !parent.mode.IsDir() {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}
		node = &memNode{mode: perm, modTime: time.Now()}
		mfs.nodes[name] = node
	}

	if node.mode.IsDir() {
		if flag&(os.O_WRONLY|os.O_RDWR) != 0 {
			return nil, &fs.PathError{Op: "open", Path: name, Err: errors.New("is a directory")}
		}
		return &memFile{mfs: mfs, node: node, name: name, flag: flag}, nil
	}

	if flag&os.O_TRUNC != 0 && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		node.data = node.data[:0]
		node.modTime = time.Now()
	}

	return &memFile{mfs: mfs, node: node, name: name, flag: flag}, nil
}

func (mfs *memFS) Mkdir(name string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.nodes[name]; exists {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	if parent, ok := mfs.nodes[filepath.Dir(name)]; !ok || !parent.mode.IsDir() {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrNotExist}
	}
	mfs.nodes[name] = &memNode{mode: fs.ModeDir | perm.Perm(), modTime: time.Now()}
	return nil
}

func (mfs *memFS) Remove(name string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	if _, exists := mfs.nodes[name]; !exists || name == "." {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if len(mfs.childrenLocked(name)) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	delete(mfs.nodes, name)
	return nil
}

func (mfs *memFS) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	node, exists := mfs.nodes[name]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return node.info(name), nil
}

// childrenLocked lists the direct children of dir sorted by name.
// The caller must hold mfs.mu.
func (mfs *memFS) childrenLocked(dir string) []fs.FileInfo {
	var infos []fs.FileInfo
	for path, node := range mfs.nodes {
		if path != "." && path != dir && filepath.Dir(path) == dir {
			infos = append(infos, node.info(path))
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	return infos
}

// Rename renames a file
func (mfs *memFS) Rename(oldpath, newpath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	oldpath = normalizePath(oldpath)
	newpath = normalizePath(newpath)

	node, exists := mfs.nodes[oldpath]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}
	mfs.nodes[newpath] = node
	delete(mfs.nodes, oldpath)
	return nil
}

// Chmod changes file permissions
func (mfs *memFS) Chmod(name string, mode os.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.nodes[name]
	if !exists {
		return &fs.PathError{Op: "chmod", Path: name, Err: fs.ErrNotExist}
	}
	node.mode = node.mode.Type() | mode.Perm()
	return nil
}

// Chtimes changes file access and modification times
func (mfs *memFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	name = normalizePath(name)
	node, exists := mfs.nodes[name]
	if !exists {
		return &fs.PathError{Op: "chtimes", Path: name, Err: fs.ErrNotExist}
	}
	node.modTime = mtime
	return nil
}

// Chown changes file owner (no-op for memFS)
func (mfs *memFS) Chown(name string, uid, gid int) error {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	name = normalizePath(name)
	if _, exists := mfs.nodes[name]; !exists {
		return &fs.PathError{Op: "chown", Path: name, Err: fs.ErrNotExist}
	}
	return nil
}

func (n *memNode) info(path string) fs.FileInfo {
	return &memFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(n.data)),
		mode:    n.mode,
		modTime: n.modTime,
	}
}

type memFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memFileInfo) Name() string       { return fi.name }
func (fi *memFileInfo) Size() int64        { return fi.size }
func (fi *memFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memFileInfo) Sys() interface{}   { return nil }

// memFile is a handle on a memNode with its own offset
type memFile struct {
	mfs    *memFS
	node   *memNode
	name   string
	flag   int
	pos    int64
	closed bool
}

func (mf *memFile) check(op string, write bool) error {
	if mf.closed {
		return &fs.PathError{Op: op, Path: mf.name, Err: fs.ErrClosed}
	}
	if mf.node.mode.IsDir() {
		return &fs.PathError{Op: op, Path: mf.name, Err: errors.New("is a directory")}
	}
	if write && mf.flag&(os.O_WRONLY|os.O_RDWR) == 0 {
		return &fs.PathError{Op: op, Path: mf.name, Err: fs.ErrPermission}
	}
	if !write && mf.flag&os.O_WRONLY != 0 {
		return &fs.PathError{Op: op, Path: mf.name, Err: fs.ErrPermission}
	}
	return nil
}

func (mf *memFile) Name() string {
	return mf.name
}

func (mf *memFile) Read(p []byte) (int, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if err := mf.check("read", false); err != nil {
		return 0, err
	}
	if mf.pos >= int64(len(mf.node.data)) {
		return 0, io.EOF
	}
	n := copy(p, mf.node.data[mf.pos:])
	mf.pos += int64(n)
	return n, nil
}

func (mf *memFile) ReadAt(b []byte, off int64) (int, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if err := mf.check("read", false); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "read", Path: mf.name, Err: fs.ErrInvalid}
	}
	if off >= int64(len(mf.node.data)) {
		return 0, io.EOF
	}
	n := copy(b, mf.node.data[off:])
	if n < len(b) {
		return n, io.EOF
	}
	return n, nil
}

func (mf *memFile) Write(p []byte) (int, error) {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if err := mf.check("write", true); err != nil {
		return 0, err
	}
	if mf.flag&os.O_APPEND != 0 {
		mf.pos = int64(len(mf.node.data))
	}
	n := mf.writeAtLocked(p, mf.pos)
	mf.pos += int64(n)
	return n, nil
}

func (mf *memFile) WriteAt(b []byte, off int64) (int, error) {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if err := mf.check("write", true); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, &fs.PathError{Op: "write", Path: mf.name, Err: fs.ErrInvalid}
	}
	return mf.writeAtLocked(b, off), nil
}

func (mf *memFile) writeAtLocked(b []byte, off int64) int {
	if end := off + int64(len(b)); end > int64(len(mf.node.data)) {
		grown := make([]byte, end)
		copy(grown, mf.node.data)
		mf.node.data = grown
	}
	n := copy(mf.node.data[off:], b)
	mf.node.modTime = time.Now()
	return n
}

func (mf *memFile) WriteString(s string) (int, error) {
	return mf.Write([]byte(s))
}

func (mf *memFile) Close() error {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if mf.closed {
		return &fs.PathError{Op: "close", Path: mf.name, Err: fs.ErrClosed}
	}
	mf.closed = true
	return nil
}

func (mf *memFile) Seek(offset int64, whence int) (int64, error) {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if mf.closed {
		return 0, &fs.PathError{Op: "seek", Path: mf.name, Err: fs.ErrClosed}
	}

	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = mf.pos + offset
	case io.SeekEnd:
		pos = int64(len(mf.node.data)) + offset
	default:
		return 0, &fs.PathError{Op: "seek", Path: mf.name, Err: fs.ErrInvalid}
	}
	if pos < 0 {
		return 0, &fs.PathError{Op: "seek", Path: mf.name, Err: fs.ErrInvalid}
	}
	mf.pos = pos
	return pos, nil
}

func (mf *memFile) Stat() (fs.FileInfo, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()
	return mf.node.info(mf.name), nil
}

func (mf *memFile) Sync() error {
	return nil
}

func (mf *memFile) Truncate(size int64) error {
	mf.mfs.mu.Lock()
	defer mf.mfs.mu.Unlock()

	if err := mf.check("truncate", true); err != nil {
		return err
	}
	if size < 0 {
		return &fs.PathError{Op: "truncate", Path: mf.name, Err: fs.ErrInvalid}
	}
	if size <= int64(len(mf.node.data)) {
		mf.node.data = mf.node.data[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, mf.node.data)
		mf.node.data = grown
	}
	mf.node.modTime = time.Now()
	return nil
}

func (mf *memFile) Readdir(n int) ([]os.FileInfo, error) {
	mf.mfs.mu.RLock()
	defer mf.mfs.mu.RUnlock()

	if !mf.node.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: mf.name, Err: errors.New("not a directory")}
	}
	infos := mf.mfs.childrenLocked(mf.name)
	if n > 0 && len(infos) > n {
		infos = infos[:n]
	}
	return infos, nil
}

func (mf *memFile) Readdirnames(n int) ([]string, error) {
	infos, err := mf.Readdir(n)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}
