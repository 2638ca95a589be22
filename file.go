package fatnav

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/aligator/fatnav/checkpoint"
	"github.com/spf13/afero"
)

// These errors may occur while processing a file.
var (
	ErrReadFile = errors.New("could not read file completely")
	ErrSeekFile = errors.New("could not seek inside of the file")
	ErrReadDir  = errors.New("could not read the directory")
)

// fatFileFs provides all methods needed from a volume for File.
// It mainly exists to be able to mock the Volume in tests.
// Generated mock using mockgen:
//  mockgen -source=file.go -destination=mock_file_test.go -package fatnav
type fatFileFs interface {
	readFileAt(cluster uint32, fileSize int64, offset int64, readSize int64) ([]byte, error)
	readDir(dir *Dir) ([]os.FileInfo, error)
}

// File is an opened file or directory of a Volume. It is read only, all
// writing methods fail with syscall.EROFS.
type File struct {
	fs   fatFileFs
	path string

	isDirectory bool
	// dir is the directory itself if isDirectory is set.
	dir Dir

	firstCluster uint32
	stat         os.FileInfo
	offset       int64
}

// Open opens the regular file name inside of d.
// May return ErrInvalidFileName, ErrFileNotFound, ErrFailedReadSector or
// ErrCorruptFatEntry.
func (v *Volume) Open(d *Dir, name string) (*File, error) {
	e, err := v.findFile(d, name)
	if err != nil {
		return nil, err
	}

	return &File{
		fs:           v,
		path:         join(d.LongPath(), e.LongName),
		firstCluster: e.FirstCluster(),
		stat:         e.FileInfo(),
	}, nil
}

// OpenDir opens d itself, e.g. to call Readdir on it.
func (v *Volume) OpenDir(d *Dir) *File {
	stat := rootFileInfo()
	if !d.IsRoot() {
		stat = entryFileInfo{
			name:   d.LongName,
			header: EntryHeader{Attribute: AttrDirectory},
		}
	}
	return v.openDir(d, stat)
}

func (v *Volume) openDir(d *Dir, stat os.FileInfo) *File {
	return &File{
		fs:           v,
		path:         d.LongPath(),
		isDirectory:  true,
		dir:          *d,
		firstCluster: d.FirstCluster,
		stat:         stat,
	}
}

// readDir returns all entries of dir except "." and "..".
func (v *Volume) readDir(dir *Dir) ([]os.FileInfo, error) {
	var result []os.FileInfo

	e := &Entry{}
	e.Init(dir)
	for {
		err := v.Next(e)
		if errors.Is(err, ErrEndOfDirectory) {
			return result, nil
		}
		if err != nil {
			return nil, err
		}

		if e.ShortName == "." || e.ShortName == ".." {
			continue
		}
		result = append(result, e.FileInfo())
	}
}

func (f *File) Close() error {
	f.fs = nil
	f.path = ""
	f.isDirectory = false
	f.dir = Dir{}
	f.firstCluster = 0
	f.stat = nil
	f.offset = 0

	return nil
}

// readAt reads up to len(p) bytes at off. io.EOF is only returned if off is
// at or past the end of the file.
func (f *File) readAt(p []byte, off int64) (int, error) {
	if p == nil {
		return 0, nil
	}

	if f.isDirectory {
		return 0, checkpoint.Wrap(syscall.EISDIR, ErrReadFile)
	}

	if f.stat.Size() <= off {
		return 0, io.EOF
	}

	data, err := f.fs.readFileAt(f.firstCluster, f.stat.Size(), off, int64(len(p)))
	n := copy(p, data)
	if err != nil {
		return n, checkpoint.Wrap(err, ErrReadFile)
	}
	return n, nil
}

// Read reads from the current offset and advances it by the bytes read,
// even if an error occurred.
func (f *File) Read(p []byte) (int, error) {
	n, err := f.readAt(p, f.offset)
	f.offset += int64(n)
	return n, err
}

// ReadAt does not change the offset. Unlike Read it returns io.EOF together
// with the data if the end of the file was reached before p was filled.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	n, err := f.readAt(p, off)
	if err == nil && n < len(p) {
		return n, io.EOF
	}
	return n, err
}

// Seek jumps to a specific offset in the file. This affects all Read operation except ReadAt.
// May return a syscall.EINVAL error if the whence value is invalid.
// May return an afero.ErrOutOfRange error if the offset is out of range.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset = f.offset + offset
	case io.SeekEnd:
		offset = f.stat.Size() + offset
	default:
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v, whence: %v", syscall.EINVAL, offset, whence), ErrSeekFile)
	}

	if offset < 0 || offset > f.stat.Size() {
		return 0, checkpoint.Wrap(fmt.Errorf("%w, offset: %v, whence: %v", afero.ErrOutOfRange, offset, whence), ErrSeekFile)
	}

	f.offset = offset
	return offset, nil
}

func (f *File) Write(p []byte) (n int, err error) {
	return 0, checkpoint.From(syscall.EROFS)
}

func (f *File) WriteAt(p []byte, off int64) (n int, err error) {
	return 0, checkpoint.From(syscall.EROFS)
}

func (f *File) Name() string {
	return f.stat.Name()
}

// Readdir reads the contents of a directory.
// Like os.File.Readdir, a count > 0 returns at most count entries and io.EOF
// at the end, count <= 0 returns all remaining entries.
// May return syscall.ENOTDIR if the current File is no directory.
func (f *File) Readdir(count int) ([]os.FileInfo, error) {
	if !f.isDirectory {
		return nil, checkpoint.Wrap(syscall.ENOTDIR, ErrReadDir)
	}

	content, err := f.fs.readDir(&f.dir)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrReadDir)
	}

	// For directories the offset counts entries.
	if f.offset > int64(len(content)) {
		f.offset = int64(len(content))
	}
	content = content[f.offset:]

	if count > 0 {
		if len(content) == 0 {
			return nil, io.EOF
		}
		if count < len(content) {
			content = content[:count]
		}
	}
	f.offset += int64(len(content))

	return content, nil
}

func (f *File) Readdirnames(count int) ([]string, error) {
	content, err := f.Readdir(count)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(content))
	for i, entry := range content {
		names[i] = entry.Name()
	}

	return names, nil
}

func (f *File) Stat() (os.FileInfo, error) {
	return f.stat, nil
}

func (f *File) Sync() error {
	return checkpoint.From(syscall.EROFS)
}

func (f *File) Truncate(size int64) error {
	return checkpoint.From(syscall.EROFS)
}

func (f *File) WriteString(s string) (ret int, err error) {
	return f.Write([]byte(s))
}
