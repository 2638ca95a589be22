//go:build !linux

package disk

import (
	"os"

	"github.com/aligator/fatnav/checkpoint"
)

// OpenDevice opens an image file at path read only.
// The sector size of block devices is only checked on linux.
func OpenDevice(path string) (*ImageFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return &ImageFile{
		Image:  NewImage(f),
		closer: f,
	}, nil
}
