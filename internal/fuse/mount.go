//go:build !linux
// +build !linux

package fuse

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Mount is only supported on Linux.
func Mount(mountpoint string, src afero.Fs, log logrus.FieldLogger) error {
	return errors.New("FUSE mount is only supported on Linux")
}
