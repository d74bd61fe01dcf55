package miscfs

import (
	"io/fs"
	"os"
	"time"

	"github.com/absfs/absfs"
)

// osFS is an absfs.Filer backed by the os package. Names are used as given.
type osFS struct{}

// OSFS returns a filesystem backed by the operating system
func OSFS() absfs.Filer {
	return osFS{}
}

func (osFS) OpenFile(name string, flag int, perm fs.FileMode) (absfs.File, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		// avoid returning a typed nil inside the interface
		return nil, err
	}
	return f, nil
}

func (osFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

func (osFS) Remove(name string) error {
	return os.Remove(name)
}

func (osFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

func (osFS) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}

func (osFS) Chown(name string, uid, gid int) error {
	return os.Chown(name, uid, gid)
}
