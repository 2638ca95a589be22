package fatnav

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
)

// GoFile is a File satisfying fs.ReadDirFile.
type GoFile struct {
	*File
}

func (g GoFile) ReadDir(n int) ([]fs.DirEntry, error) {
	infos, err := g.File.Readdir(n)
	return dirEntries(infos), err
}

func dirEntries(infos []fs.FileInfo) []fs.DirEntry {
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries
}

// GoFs wraps Fs to be compatible with fs.FS. Stat comes from Fs, so it is an
// fs.StatFS as well as an fs.ReadDirFS.
type GoFs struct {
	*Fs
}

var (
	_ fs.StatFS    = GoFs{}
	_ fs.ReadDirFS = GoFs{}
)

// NewGoFS exposes volume as fs.FS.
func NewGoFS(volume *Volume) *GoFs {
	return &GoFs{NewFs(volume)}
}

func (g GoFs) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	file, err := g.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	f, ok := file.(*File)
	if !ok {
		return nil, errors.New("invalid File implementation")
	}
	return GoFile{f}, nil
}

// ReadDir lists name sorted by file name.
func (g GoFs) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	infos, err := afero.ReadDir(g.Fs, name)
	if err != nil {
		return nil, err
	}
	return dirEntries(infos), nil
}
