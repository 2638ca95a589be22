package fatnav

import (
	"encoding/binary"

	"github.com/aligator/fatnav/checkpoint"
)

const (
	// EndOfChain is the canonical end-of-chain value returned by NextCluster.
	EndOfChain uint32 = 0x0FFFFFFF

	firstDataCluster uint32 = 2
	clusterMask      uint32 = 0x0FFFFFFF
	badCluster       uint32 = 0x0FFFFFF7
	endOfChainMin    uint32 = 0x0FFFFFF8
)

// IsEndOfChain reports whether cluster marks the end of a cluster chain.
func IsEndOfChain(cluster uint32) bool {
	return cluster&clusterMask >= endOfChainMin
}

// FirstSectorOfCluster returns the absolute address of the first sector of cluster.
// cluster must be a data cluster (>= 2).
func (b *BPB) FirstSectorOfCluster(cluster uint32) uint32 {
	return b.DataRegionFirstSector + (cluster-firstDataCluster)*uint32(b.SectorsPerCluster)
}

// FATSectorAndOffset returns where the entry of cluster is stored in the first FAT.
func (b *BPB) FATSectorAndOffset(cluster uint32) (sector uint32, offset uint32) {
	byteOffset := cluster * 4
	return b.BootSector + uint32(b.ReservedSectorCount) + byteOffset/SectorSize, byteOffset % SectorSize
}

// validCluster reports whether cluster may be part of a chain on this volume.
func (b *BPB) validCluster(cluster uint32) bool {
	if cluster < firstDataCluster || cluster >= badCluster {
		return false
	}
	if count := b.ClusterCount(); count != 0 && cluster >= count+firstDataCluster {
		return false
	}
	return true
}

// NextCluster follows the FAT from cluster. buf is used as scratch space for the FAT sector.
// The result is either a data cluster or EndOfChain.
// May return ErrFailedReadSector or ErrCorruptFatEntry.
func NextCluster(bpb *BPB, disk Disk, cluster uint32, buf *[SectorSize]byte) (uint32, error) {
	sector, offset := bpb.FATSectorAndOffset(cluster)
	if err := disk.ReadSector(sector, buf); err != nil {
		return 0, checkpoint.Wrap(err, ErrFailedReadSector)
	}

	next := binary.LittleEndian.Uint32(buf[offset:]) & clusterMask
	if next >= endOfChainMin {
		return EndOfChain, nil
	}
	if !bpb.validCluster(next) {
		return 0, checkpoint.From(ErrCorruptFatEntry)
	}
	return next, nil
}

// Capacity returns the bytes the data region can hold, or 0 if the cluster
// count is unknown.
func (b *BPB) Capacity() int64 {
	return int64(b.ClusterCount()) * b.ClusterSize()
}

// chainGuard remembers the clusters of one chain, so a FAT entry pointing
// back into the chain is noticed.
type chainGuard map[uint32]struct{}

// visit records cluster. It returns false if it was visited before.
func (g chainGuard) visit(cluster uint32) bool {
	if _, ok := g[cluster]; ok {
		return false
	}
	g[cluster] = struct{}{}
	return true
}
