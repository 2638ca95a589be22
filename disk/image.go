// Package disk provides fatnav.Disk implementations for disk images and block
// devices.
package disk

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"syscall"

	"github.com/aligator/fatnav"
	"github.com/aligator/fatnav/checkpoint"
	"github.com/diskfs/go-diskfs/partition/mbr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// These errors may occur while reading from a disk.
var (
	ErrReadSector       = errors.New("could not read sector")
	ErrNoFAT32Partition = errors.New("neither a FAT32 boot sector nor a FAT32 partition found")
	ErrSectorSize       = errors.New("unsupported logical sector size")
)

// Image reads sectors from a disk image, a partition or a whole disk.
type Image struct {
	r   io.ReaderAt
	log logrus.FieldLogger
}

var _ fatnav.Disk = (*Image)(nil)

// NewImage creates an Image reading from r. Sector 0 is at offset 0 of r.
func NewImage(r io.ReaderAt) *Image {
	return &Image{
		r:   r,
		log: logrus.StandardLogger(),
	}
}

// SetLogger replaces the logger, which defaults to the logrus standard logger.
func (i *Image) SetLogger(log logrus.FieldLogger) {
	i.log = log
}

// ReadSector reads the sector at addr. Short reads are errors.
func (i *Image) ReadSector(addr uint32, buf *[fatnav.SectorSize]byte) error {
	n, err := i.r.ReadAt(buf[:], int64(addr)*fatnav.SectorSize)
	if n == fatnav.SectorSize {
		// ReaderAt may return io.EOF together with the last full sector.
		return nil
	}

	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return checkpoint.Wrap(fmt.Errorf("sector %d, read %d bytes: %w", addr, n, err), ErrReadSector)
}

// FindBootSector returns 0 if sector 0 is a FAT32 boot sector. Otherwise
// sector 0 is read as MBR and the start of the first FAT32 partition is
// returned.
func (i *Image) FindBootSector() (uint32, error) {
	var buf [fatnav.SectorSize]byte
	if err := i.ReadSector(0, &buf); err != nil {
		return 0, err
	}

	if IsVolumeBootRecord(&buf) {
		i.log.Debug("found FAT boot sector at sector 0")
		return 0, nil
	}

	table, err := mbr.Read(readOnlyFile{io.NewSectionReader(i.r, 0, math.MaxInt64)}, fatnav.SectorSize, fatnav.SectorSize)
	if err != nil {
		return 0, checkpoint.Wrap(err, ErrNoFAT32Partition)
	}

	for n, p := range table.Partitions {
		if p.Type != mbr.Fat32LBA && p.Type != mbr.Fat32CHS {
			continue
		}

		i.log.WithFields(logrus.Fields{
			"partition": n + 1,
			"start":     p.Start,
			"size":      p.Size,
		}).Debug("found FAT32 partition")
		return p.Start, nil
	}

	return 0, checkpoint.From(ErrNoFAT32Partition)
}

// IsVolumeBootRecord reports whether buf looks like the first sector of a FAT
// volume rather than an MBR. It does not validate the geometry.
func IsVolumeBootRecord(buf *[fatnav.SectorSize]byte) bool {
	if buf[510] != 0x55 || buf[511] != 0xAA {
		return false
	}

	// Valid jump instructions.
	if !(buf[0] == 0xEB && buf[2] == 0x90) && buf[0] != 0xE9 {
		return false
	}

	// Boot loaders in an MBR may start with a jump as well, but leave the BPB
	// area empty.
	switch binary.LittleEndian.Uint16(buf[11:]) {
	case 512, 1024, 2048, 4096:
	default:
		return false
	}
	return buf[13] != 0 && buf[16] != 0
}

// readOnlyFile satisfies the file interface go-diskfs expects.
type readOnlyFile struct {
	*io.SectionReader
}

func (readOnlyFile) WriteAt(p []byte, off int64) (int, error) {
	return 0, syscall.EROFS
}

// ImageFile is an Image backed by an opened file.
type ImageFile struct {
	*Image
	closer io.Closer
}

// Close closes the underlying file.
func (f *ImageFile) Close() error {
	return f.closer.Close()
}

// OpenImage opens the image at path of fs.
func OpenImage(fs afero.Fs, path string) (*ImageFile, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, checkpoint.From(err)
	}

	return &ImageFile{
		Image:  NewImage(f),
		closer: f,
	}, nil
}
