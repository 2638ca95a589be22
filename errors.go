package fatnav

import (
	"errors"
	"fmt"
	"io"
)

// Code is the result of a navigator operation.
// The numeric values are the one-hot flags used by the print error verb and
// are kept stable for tools parsing that output.
type Code uint8

const (
	Success          Code = 0x00
	InvalidFileName  Code = 0x01
	InvalidDirName   Code = 0x02
	FileNotFound     Code = 0x04
	DirNotFound      Code = 0x08
	EndOfFile        Code = 0x10
	EndOfDirectory   Code = 0x20
	CorruptFatEntry  Code = 0x40
	FailedReadSector Code = 0x80
)

// These errors may be returned by the navigator. Check them with errors.Is,
// they are usually decorated by a checkpoint carrying the cause.
var (
	ErrInvalidFileName  error = InvalidFileName
	ErrInvalidDirName   error = InvalidDirName
	ErrFileNotFound     error = FileNotFound
	ErrDirNotFound      error = DirNotFound
	ErrEndOfFile        error = EndOfFile
	ErrEndOfDirectory   error = EndOfDirectory
	ErrCorruptFatEntry  error = CorruptFatEntry
	ErrFailedReadSector error = FailedReadSector
)

func (c Code) String() string {
	switch c {
	case Success:
		return "SUCCESS"
	case InvalidFileName:
		return "INVALID_FILE_NAME"
	case InvalidDirName:
		return "INVALID_DIR_NAME"
	case FileNotFound:
		return "FILE_NOT_FOUND"
	case DirNotFound:
		return "DIR_NOT_FOUND"
	case EndOfFile:
		return "END_OF_FILE"
	case EndOfDirectory:
		return "END_OF_DIRECTORY"
	case CorruptFatEntry:
		return "CORRUPT_FAT_ENTRY"
	case FailedReadSector:
		return "FAILED_READ_SECTOR"
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(c))
}

func (c Code) Error() string {
	switch c {
	case InvalidFileName:
		return "invalid file name"
	case InvalidDirName:
		return "invalid directory name"
	case FileNotFound:
		return "file not found"
	case DirNotFound:
		return "directory not found"
	case EndOfFile:
		return "end of file"
	case EndOfDirectory:
		return "end of directory"
	case CorruptFatEntry:
		return "corrupt FAT entry"
	case FailedReadSector:
		return "failed to read sector"
	}
	return c.String()
}

// BootSectorError describes why a volume could not be loaded.
// It is disjoint from Code.
type BootSectorError uint8

const (
	BootSectorNotFound BootSectorError = iota + 1
	FailedReadBootSector
	NotBootSector
	InvalidBytesPerSector
	InvalidSectorsPerCluster
)

// These errors may occur while loading the BPB.
var (
	ErrBootSectorNotFound       error = BootSectorNotFound
	ErrFailedReadBootSector     error = FailedReadBootSector
	ErrNotBootSector            error = NotBootSector
	ErrInvalidBytesPerSector    error = InvalidBytesPerSector
	ErrInvalidSectorsPerCluster error = InvalidSectorsPerCluster
)

func (e BootSectorError) String() string {
	switch e {
	case BootSectorNotFound:
		return "BOOT_SECTOR_NOT_FOUND"
	case FailedReadBootSector:
		return "FAILED_READ_BOOT_SECTOR"
	case NotBootSector:
		return "NOT_BOOT_SECTOR"
	case InvalidBytesPerSector:
		return "INVALID_BYTES_PER_SECTOR"
	case InvalidSectorsPerCluster:
		return "INVALID_SECTORS_PER_CLUSTER"
	}
	return fmt.Sprintf("UNKNOWN_BOOT_SECTOR_ERROR(%d)", uint8(e))
}

func (e BootSectorError) Error() string {
	switch e {
	case BootSectorNotFound:
		return "boot sector not found"
	case FailedReadBootSector:
		return "failed to read boot sector"
	case NotBootSector:
		return "sector is not a boot sector"
	case InvalidBytesPerSector:
		return "unsupported bytes per sector"
	case InvalidSectorsPerCluster:
		return "invalid sectors per cluster"
	}
	return e.String()
}

// CodeOf returns the navigator code carried by err.
// A nil error is Success. ok is false if err carries no Code.
func CodeOf(err error) (code Code, ok bool) {
	if err == nil {
		return Success, true
	}
	if errors.As(err, &code) {
		return code, true
	}
	return 0, false
}

// IsEnd reports whether err is one of the two normal terminations:
// ErrEndOfDirectory or ErrEndOfFile.
func IsEnd(err error) bool {
	return errors.Is(err, ErrEndOfDirectory) || errors.Is(err, ErrEndOfFile)
}

// PrintError writes the symbolic name and flag value of err to w, e.g.
//
//	DIR_NOT_FOUND (0x08): directory not found
//
// Errors carrying no Code are written as they are.
func PrintError(w io.Writer, err error) error {
	var boot BootSectorError
	if errors.As(err, &boot) {
		_, werr := fmt.Fprintf(w, "%s: %v\n", boot, boot)
		return werr
	}

	code, ok := CodeOf(err)
	if !ok {
		_, werr := fmt.Fprintf(w, "%v\n", err)
		return werr
	}
	if code == Success {
		_, werr := fmt.Fprintf(w, "%s (0x%02X)\n", code, uint8(code))
		return werr
	}
	_, werr := fmt.Fprintf(w, "%s (0x%02X): %v\n", code, uint8(code), code)
	return werr
}
