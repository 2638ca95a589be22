package fatnav

import (
	"errors"

	"github.com/aligator/fatnav/checkpoint"
	"github.com/sirupsen/logrus"
)

// findFile returns the regular file entry name of d.
func (v *Volume) findFile(d *Dir, name string) (*Entry, error) {
	if !v.validName(name) {
		return nil, checkpoint.From(ErrInvalidFileName)
	}

	e, err := v.lookup(d, func(e *Entry) bool {
		return !e.IsDir() && e.matches(name)
	})
	if errors.Is(err, ErrEndOfDirectory) {
		return nil, checkpoint.From(ErrFileNotFound)
	}
	return e, err
}

// ForEachFileSector calls sink with the content of the file name in d, one
// sector at a time. The last call only gets the bytes up to the file size.
// The slice passed to sink is reused and only valid during the call.
//
// It returns ErrEndOfFile after the whole file was delivered. An error
// returned by sink stops the walk and is returned unchanged.
// May return ErrInvalidFileName, ErrFileNotFound, ErrFailedReadSector or
// ErrCorruptFatEntry, the latter also if the cluster chain is shorter than
// the file.
func (v *Volume) ForEachFileSector(d *Dir, name string, sink func(data []byte) error) error {
	e, err := v.findFile(d, name)
	if err != nil {
		return err
	}

	return v.streamChain(e.FirstCluster(), e.Size(), sink)
}

func (v *Volume) streamChain(cluster uint32, size uint32, sink func(data []byte) error) error {
	remaining := size
	if remaining == 0 {
		return ErrEndOfFile
	}
	if !v.bpb.validCluster(cluster) {
		return checkpoint.From(ErrCorruptFatEntry)
	}
	if capacity := v.bpb.Capacity(); capacity != 0 && int64(size) > capacity {
		v.log.WithFields(logrus.Fields{
			"size":     size,
			"capacity": capacity,
		}).Warn("file is larger than the volume")
		return checkpoint.From(ErrCorruptFatEntry)
	}

	guard := chainGuard{}
	guard.visit(cluster)

	var buf [SectorSize]byte
	for {
		first := v.bpb.FirstSectorOfCluster(cluster)
		for s := uint32(0); s < uint32(v.bpb.SectorsPerCluster); s++ {
			if err := v.disk.ReadSector(first+s, &buf); err != nil {
				return checkpoint.Wrap(err, ErrFailedReadSector)
			}

			n := min(remaining, SectorSize)
			if err := sink(buf[:n]); err != nil {
				return err
			}
			remaining -= n
			if remaining == 0 {
				return ErrEndOfFile
			}
		}

		next, err := NextCluster(&v.bpb, v.disk, cluster, &buf)
		if err != nil {
			return err
		}
		if next == EndOfChain {
			v.log.WithFields(logrus.Fields{
				"cluster":   cluster,
				"remaining": remaining,
			}).Warn("cluster chain ends before the file does")
			return checkpoint.From(ErrCorruptFatEntry)
		}
		if !guard.visit(next) {
			v.log.WithFields(logrus.Fields{
				"cluster":   next,
				"remaining": remaining,
			}).Warn("file cluster chain loops")
			return checkpoint.From(ErrCorruptFatEntry)
		}
		cluster = next
	}
}

// readFileAt reads up to readSize bytes at offset of the file starting at
// cluster. It never reads past fileSize.
func (v *Volume) readFileAt(cluster uint32, fileSize int64, offset int64, readSize int64) ([]byte, error) {
	if offset >= fileSize || readSize <= 0 {
		return nil, nil
	}
	if offset+readSize > fileSize {
		readSize = fileSize - offset
	}
	if !v.bpb.validCluster(cluster) {
		return nil, checkpoint.From(ErrCorruptFatEntry)
	}
	if capacity := v.bpb.Capacity(); capacity != 0 && fileSize > capacity {
		return nil, checkpoint.From(ErrCorruptFatEntry)
	}

	guard := chainGuard{}
	guard.visit(cluster)

	var buf [SectorSize]byte
	next := func() error {
		n, err := NextCluster(&v.bpb, v.disk, cluster, &buf)
		if err != nil {
			return err
		}
		if n == EndOfChain || !guard.visit(n) {
			return checkpoint.From(ErrCorruptFatEntry)
		}
		cluster = n
		return nil
	}

	clusterSize := v.bpb.ClusterSize()
	for skip := offset / clusterSize; skip > 0; skip-- {
		if err := next(); err != nil {
			return nil, err
		}
	}

	data := make([]byte, 0, readSize)
	pos := offset % clusterSize
	for int64(len(data)) < readSize {
		sector := pos / SectorSize
		if sector == int64(v.bpb.SectorsPerCluster) {
			if err := next(); err != nil {
				return data, err
			}
			pos = 0
			continue
		}

		if err := v.disk.ReadSector(v.bpb.FirstSectorOfCluster(cluster)+uint32(sector), &buf); err != nil {
			return data, checkpoint.Wrap(err, ErrFailedReadSector)
		}

		from := pos % SectorSize
		n := min(SectorSize-from, readSize-int64(len(data)))
		data = append(data, buf[from:from+n]...)
		pos += n
	}

	return data, nil
}
