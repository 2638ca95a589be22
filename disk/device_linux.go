//go:build linux

package disk

import (
	"fmt"
	"os"

	"github.com/aligator/fatnav"
	"github.com/aligator/fatnav/checkpoint"
	"golang.org/x/sys/unix"
)

// OpenDevice opens a block device or an image file at path read only.
// For block devices the logical sector size has to be 512 bytes.
func OpenDevice(path string) (*ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, checkpoint.From(err)
	}

	if stat.Mode()&os.ModeDevice != 0 {
		size, err := unix.IoctlGetInt(int(f.Fd()), unix.BLKSSZGET)
		if err != nil {
			f.Close()
			return nil, checkpoint.Wrap(fmt.Errorf("ioctl BLKSSZGET: %w", err), ErrSectorSize)
		}
		if size != fatnav.SectorSize {
			f.Close()
			return nil, checkpoint.Wrap(fmt.Errorf("%s has %d byte sectors", path, size), ErrSectorSize)
		}
	}

	return &ImageFile{
		Image:  NewImage(f),
		closer: f,
	}, nil
}
