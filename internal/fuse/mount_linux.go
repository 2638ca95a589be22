//go:build linux
// +build linux

package fuse

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	fusefs "bazil.org/fuse/fs"
	"github.com/aligator/fatnav/checkpoint"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrMountpoint is returned if the mountpoint cannot be used.
var ErrMountpoint = errors.New("unusable mountpoint")

// Mount serves src read only at mountpoint. It returns once the filesystem
// got unmounted, either by the user or after an interrupt or SIGTERM.
func Mount(mountpoint string, src afero.Fs, log logrus.FieldLogger) error {
	release, err := claimMountpoint(afero.NewOsFs(), mountpoint)
	if err != nil {
		return err
	}
	defer release()

	c, err := fuse.Mount(mountpoint,
		fuse.ReadOnly(),
		fuse.FSName("fatnav"),
		fuse.Subtype("fatnav"),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	served := make(chan error, 1)
	go func() {
		served <- fusefs.New(c, nil).Serve(New(src))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	log = log.WithField("mountpoint", mountpoint)
	log.Info("mounted")
	for {
		select {
		case err := <-served:
			log.Info("unmounted")
			return err
		case sig := <-stop:
			log.WithField("signal", sig).Info("unmounting")
			// Serve returns after a successful unmount.
			if err := fuse.Unmount(mountpoint); err != nil {
				log.WithError(err).Warn("unmount failed, signal again to retry")
			}
		}
	}
}

// claimMountpoint checks that path is an empty directory on fs. A missing
// directory is created and removed again by release.
func claimMountpoint(fs afero.Fs, path string) (release func(), err error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrMountpoint)
	}
	if !exists {
		if err := fs.Mkdir(path, 0755); err != nil {
			return nil, checkpoint.Wrap(err, ErrMountpoint)
		}
		return func() { _ = fs.Remove(path) }, nil
	}

	if isDir, err := afero.IsDir(fs, path); err != nil {
		return nil, checkpoint.Wrap(err, ErrMountpoint)
	} else if !isDir {
		return nil, checkpoint.Wrap(fmt.Errorf("%s: %w", path, syscall.ENOTDIR), ErrMountpoint)
	}

	if empty, err := afero.IsEmpty(fs, path); err != nil {
		return nil, checkpoint.Wrap(err, ErrMountpoint)
	} else if !empty {
		return nil, checkpoint.Wrap(fmt.Errorf("%s: %w", path, syscall.ENOTEMPTY), ErrMountpoint)
	}
	return func() {}, nil
}
