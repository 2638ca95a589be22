package fatnav

import (
	"errors"
	"os"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/afero"
)

// Fs exposes a Volume as read only afero.Fs.
// Paths are slash separated and relative to the root of the volume, each
// component is matched like SetDirectory does.
type Fs struct {
	volume *Volume
}

var _ afero.Fs = (*Fs)(nil)

// NewFs creates an afero.Fs reading from volume.
func NewFs(volume *Volume) *Fs {
	return &Fs{volume: volume}
}

func components(name string) []string {
	name = path.Clean("/" + name)
	if name == "/" {
		return nil
	}
	return strings.Split(name[1:], "/")
}

// pathError converts navigator errors into the errors afero users check for,
// so os.IsNotExist works like it does for afero.MemMapFs.
func pathError(op, name string, err error) error {
	switch {
	case errors.Is(err, ErrDirNotFound), errors.Is(err, ErrFileNotFound):
		err = os.ErrNotExist
	case errors.Is(err, ErrInvalidDirName), errors.Is(err, ErrInvalidFileName):
		err = os.ErrInvalid
	}
	return &os.PathError{Op: op, Path: name, Err: err}
}

func (fs *Fs) Open(name string) (afero.File, error) {
	parts := components(name)

	d := fs.volume.RootDir()
	if len(parts) == 0 {
		return fs.volume.OpenDir(&d), nil
	}

	if err := fs.volume.Walk(&d, parts[:len(parts)-1]...); err != nil {
		return nil, pathError("open", name, err)
	}

	base := parts[len(parts)-1]
	e, err := fs.volume.findDir(&d, base)
	if err == nil {
		child := fs.volume.child(&d, e)
		return fs.volume.openDir(&child, e.FileInfo()), nil
	}
	if !errors.Is(err, ErrDirNotFound) {
		return nil, pathError("open", name, err)
	}

	f, err := fs.volume.Open(&d, base)
	if err != nil {
		return nil, pathError("open", name, err)
	}
	return f, nil
}

// OpenFile only supports os.O_RDONLY.
func (fs *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EROFS}
	}
	return fs.Open(name)
}

func (fs *Fs) Stat(name string) (os.FileInfo, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Stat()
}

func (fs *Fs) Name() string {
	return "fatnav"
}

func (fs *Fs) Create(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "create", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Mkdir(name string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) MkdirAll(path string, perm os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Remove(name string) error {
	return &os.PathError{Op: "remove", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) RemoveAll(path string) error {
	return &os.PathError{Op: "remove", Path: path, Err: syscall.EROFS}
}

func (fs *Fs) Rename(oldname, newname string) error {
	return &os.LinkError{Op: "rename", Old: oldname, New: newname, Err: syscall.EROFS}
}

func (fs *Fs) Chmod(name string, mode os.FileMode) error {
	return &os.PathError{Op: "chmod", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chown(name string, uid, gid int) error {
	return &os.PathError{Op: "chown", Path: name, Err: syscall.EROFS}
}

func (fs *Fs) Chtimes(name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: syscall.EROFS}
}
