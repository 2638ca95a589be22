package fatnav

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/aligator/fatnav/checkpoint"
	"github.com/sirupsen/logrus"
)

// BPB contains the geometry of a FAT32 volume.
// It is read once by LoadBPB and never changes afterwards.
type BPB struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	NumFATs             uint8
	FATSize32           uint32
	RootCluster         uint32
	BootSector          uint32

	// DataRegionFirstSector is the absolute address of cluster 2.
	DataRegionFirstSector uint32

	// TotalSectors is 0 if the boot sector does not declare it.
	TotalSectors   uint32
	VolumeLabel    string
	FileSystemType string
}

// LoadBPB locates, reads and validates the boot sector of disk.
func LoadBPB(disk Disk) (BPB, error) {
	return loadBPB(disk, logrus.StandardLogger())
}

func loadBPB(disk Disk, log logrus.FieldLogger) (BPB, error) {
	addr, err := disk.FindBootSector()
	if err != nil {
		return BPB{}, checkpoint.Wrap(err, ErrBootSectorNotFound)
	}

	var buf [SectorSize]byte
	if err := disk.ReadSector(addr, &buf); err != nil {
		return BPB{}, checkpoint.Wrap(err, ErrFailedReadBootSector)
	}

	// The signature is checked first so a garbage sector is never decoded.
	if buf[SectorSize-2] != 0x55 || buf[SectorSize-1] != 0xAA {
		return BPB{}, checkpoint.From(ErrNotBootSector)
	}

	bs := bootSector{}
	if err := binary.Read(bytes.NewReader(buf[:]), binary.LittleEndian, &bs); err != nil {
		return BPB{}, checkpoint.Wrap(err, ErrNotBootSector)
	}

	if bs.BytesPerSector != SectorSize {
		return BPB{}, checkpoint.From(ErrInvalidBytesPerSector)
	}

	switch bs.SectorsPerCluster {
	case 1, 2, 4, 8, 16, 32, 64, 128:
	default:
		return BPB{}, checkpoint.From(ErrInvalidSectorsPerCluster)
	}

	bpb := BPB{
		BytesPerSector:      bs.BytesPerSector,
		SectorsPerCluster:   bs.SectorsPerCluster,
		ReservedSectorCount: bs.ReservedSectorCount,
		NumFATs:             bs.NumFATs,
		FATSize32:           bs.FATSize32,
		RootCluster:         bs.RootCluster,
		BootSector:          addr,
		TotalSectors:        bs.TotalSectors32,
		VolumeLabel:         strings.TrimRight(string(bs.BSVolumeLabel[:]), " \x00"),
		FileSystemType:      strings.TrimRight(string(bs.BSFileSystemType[:]), " \x00"),
	}
	if bs.TotalSectors16 != 0 {
		bpb.TotalSectors = uint32(bs.TotalSectors16)
	}
	bpb.DataRegionFirstSector = addr + uint32(bs.ReservedSectorCount) + uint32(bs.NumFATs)*bs.FATSize32

	log.WithFields(logrus.Fields{
		"bootSector":        bpb.BootSector,
		"sectorsPerCluster": bpb.SectorsPerCluster,
		"reservedSectors":   bpb.ReservedSectorCount,
		"fats":              bpb.NumFATs,
		"fatSize":           bpb.FATSize32,
		"rootCluster":       bpb.RootCluster,
		"dataRegion":        bpb.DataRegionFirstSector,
	}).Debug("loaded BPB")

	return bpb, nil
}

// ClusterCount returns the number of data clusters of the volume, or 0 if
// the boot sector does not declare its total size.
func (b *BPB) ClusterCount() uint32 {
	if b.TotalSectors == 0 || b.SectorsPerCluster == 0 {
		return 0
	}
	used := uint32(b.ReservedSectorCount) + uint32(b.NumFATs)*b.FATSize32
	if b.TotalSectors <= used {
		return 0
	}
	return (b.TotalSectors - used) / uint32(b.SectorsPerCluster)
}

// ClusterSize returns the size of one cluster in bytes.
func (b *BPB) ClusterSize() int64 {
	return int64(b.SectorsPerCluster) * SectorSize
}
