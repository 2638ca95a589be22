package fatnav

import (
	"os"
	"time"
)

// FileInfo describes the current entry of the cursor.
// Sys returns the EntryHeader.
func (e *Entry) FileInfo() os.FileInfo {
	return entryFileInfo{
		name:   e.LongName,
		header: e.Header(),
	}
}

// rootFileInfo describes the root directory, which has no entry of its own.
func rootFileInfo() os.FileInfo {
	return entryFileInfo{
		name:   "/",
		header: EntryHeader{Attribute: AttrDirectory},
	}
}

type entryFileInfo struct {
	name   string
	header EntryHeader
}

func (e entryFileInfo) Name() string {
	return e.name
}

func (e entryFileInfo) Size() int64 {
	return int64(e.header.FileSize)
}

// Mode is read only for everyone as nothing can be written anyway.
func (e entryFileInfo) Mode() os.FileMode {
	if e.IsDir() {
		return os.ModeDir | 0555
	}
	return 0444
}

func (e entryFileInfo) ModTime() time.Time {
	return ParseDateTime(e.header.WriteDate, e.header.WriteTime, 0)
}

func (e entryFileInfo) IsDir() bool {
	return e.header.Attribute&AttrDirectory == AttrDirectory
}

func (e entryFileInfo) Sys() interface{} {
	return e.header
}
