package fatnav

import (
	"github.com/aligator/fatnav/checkpoint"
	"github.com/sirupsen/logrus"
)

// Next advances e to the next live entry of its directory.
//
// It returns nil if an entry was read, ErrEndOfDirectory if the directory
// has no more entries. A finished cursor keeps returning ErrEndOfDirectory
// until it is initialized again.
// May return ErrFailedReadSector or ErrCorruptFatEntry. A failed sector read
// of the directory itself is retried by the next call, an error while
// following the cluster chain is returned again by every later call.
func (v *Volume) Next(e *Entry) error {
	if e.done {
		return ErrEndOfDirectory
	}
	if e.err != nil {
		return e.err
	}

	if !e.started {
		if !v.bpb.validCluster(e.cluster) {
			e.err = checkpoint.From(ErrCorruptFatEntry)
			return e.err
		}
		e.started = true
		e.visited = 1
	}

	for {
		addr := v.bpb.FirstSectorOfCluster(e.cluster) + uint32(e.sector)
		if !e.bufValid || e.bufSector != addr {
			if err := v.disk.ReadSector(addr, &e.buf); err != nil {
				e.bufValid = false
				return checkpoint.Wrap(err, ErrFailedReadSector)
			}
			e.bufSector = addr
			e.bufValid = true
		}

		for e.slot < slotsPerSector {
			pos := e.slot
			slot := e.buf[pos*slotSize : (pos+1)*slotSize]
			e.slot++

			switch classify(slot) {
			case kindTerminator:
				// Slots after the terminator are never looked at,
				// even if they look alive.
				e.done = true
				return ErrEndOfDirectory
			case kindDeleted, kindVolumeLabel:
				if e.run.active() {
					v.malformed(e, pos, "long name run interrupted")
				}
				e.run.reset()
			case kindLongName:
				wasBroken := e.run.broken
				if !e.run.add(slot) && !wasBroken {
					v.malformed(e, pos, "unexpected long name fragment")
				}
			case kindShortName:
				v.yield(e, slot, pos)
				return nil
			}
		}

		e.slot = 0
		e.sector++
		if e.sector < v.bpb.SectorsPerCluster {
			continue
		}

		// The sector buffer is reused for the FAT lookup.
		e.sector = 0
		e.bufValid = false
		next, err := NextCluster(&v.bpb, v.disk, e.cluster, &e.buf)
		if err != nil {
			e.err = err
			return err
		}
		if next == EndOfChain {
			e.done = true
			return ErrEndOfDirectory
		}

		e.visited++
		if count := v.bpb.ClusterCount(); count != 0 && e.visited > count {
			v.log.WithField("cluster", next).Warn("directory cluster chain loops")
			e.err = checkpoint.From(ErrCorruptFatEntry)
			return e.err
		}
		e.cluster = next
	}
}

// yield fills e from the short name slot at pos and ends the long name run.
func (v *Volume) yield(e *Entry, slot []byte, pos int) {
	copy(e.Slot[:], slot)
	e.ShortName = shortName(slot)
	e.LongName = e.ShortName
	e.LongNameUnits = nil

	e.snCluster = e.cluster
	e.snSector = e.sector
	e.snSlot = pos

	switch {
	case e.run.complete():
		units := e.run.name()
		name := printable(units)
		if len(name) > v.maxNameLen {
			v.malformed(e, pos, "long name too long")
			break
		}
		if len(name) > 0 {
			e.LongName = name
			e.LongNameUnits = units
		}
	case e.run.active():
		v.malformed(e, pos, "long name run incomplete")
	}

	e.run.reset()
}

func (v *Volume) malformed(e *Entry, pos int, msg string) {
	v.log.WithFields(logrus.Fields{
		"cluster": e.cluster,
		"sector":  e.sector,
		"slot":    pos,
	}).Warn(msg + ", falling back to the short name")
}
