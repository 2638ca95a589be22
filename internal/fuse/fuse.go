//go:build linux
// +build linux

// Package fuse serves a read-only filesystem, usually a fatnav.Fs, through
// FUSE.
package fuse

import (
	"context"
	"io"
	"os"
	"path"
	"sync"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/spf13/afero"
)

// FS is the root of the FUSE tree. The navigator is not re-entrant, so every
// request is served while holding mtx.
type FS struct {
	fs  afero.Fs
	mtx sync.Mutex
}

// New creates a FUSE tree serving src.
func New(src afero.Fs) *FS {
	return &FS{fs: src}
}

func (f *FS) Root() (fs.Node, error) {
	return &Dir{
		fs:   f,
		path: "/",
	}, nil
}

func (f *FS) stat(p string) (os.FileInfo, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	info, err := f.fs.Stat(p)
	if os.IsNotExist(err) {
		return nil, fuse.ENOENT
	}
	return info, err
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs   *FS
	path string
	info os.FileInfo
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	if d.info != nil {
		a.Mtime = d.info.ModTime()
	}
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	p := path.Join(d.path, name)
	info, err := d.fs.stat(p)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return &Dir{fs: d.fs, path: p, info: info}, nil
	}
	return &File{fs: d.fs, path: p, info: info}, nil
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mtx.Lock()
	defer d.fs.mtx.Unlock()

	infos, err := afero.ReadDir(d.fs.fs, d.path)
	if err != nil {
		return nil, err
	}

	dirEntries := make([]fuse.Dirent, len(infos))
	for i, info := range infos {
		dirEntries[i] = fuse.Dirent{
			Name: info.Name(),
			Type: fuse.DT_File,
		}
		if info.IsDir() {
			dirEntries[i].Type = fuse.DT_Dir
		}
	}
	return dirEntries, nil
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	fs   *FS
	path string
	info os.FileInfo
}

func (f *File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(f.info.Size())
	a.Mtime = f.info.ModTime()
	return nil
}

func (f *File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int64(req.Size)
	offset := req.Offset
	fileSize := f.info.Size()

	if offset >= fileSize {
		// Trying to read past EOF
		resp.Data = []byte{}
		return nil
	}

	// Clamp size if reading near EOF
	if offset+size > fileSize {
		size = fileSize - offset
	}

	f.fs.mtx.Lock()
	defer f.fs.mtx.Unlock()

	file, err := f.fs.fs.Open(f.path)
	if err != nil {
		return err
	}
	defer file.Close()

	buf := make([]byte, size)
	n, err := file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return err
	}

	resp.Data = buf[:n]
	return nil
}
