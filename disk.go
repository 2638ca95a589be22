package fatnav

//go:generate mockgen -source=disk.go -destination=mock_disk_test.go -package fatnav

// Disk is the block device the navigator reads from.
// Implementations are expected to block until the sector is available and
// to retry transient failures themselves. See package disk for images and
// block devices.
type Disk interface {
	// FindBootSector returns the absolute address of the FAT32 boot sector.
	FindBootSector() (uint32, error)
	// ReadSector fills buf with the sector at the absolute address addr.
	ReadSector(addr uint32, buf *[SectorSize]byte) error
}
