package fatnav

import (
	"bytes"
	"encoding/binary"
)

type slotKind uint8

const (
	kindTerminator slotKind = iota
	kindDeleted
	kindLongName
	kindVolumeLabel
	kindShortName
)

func (k slotKind) String() string {
	switch k {
	case kindTerminator:
		return "terminator"
	case kindDeleted:
		return "deleted"
	case kindLongName:
		return "long name fragment"
	case kindVolumeLabel:
		return "volume label"
	case kindShortName:
		return "short name"
	}
	return "unknown"
}

// classify returns the kind of the 32 byte directory slot.
func classify(slot []byte) slotKind {
	switch {
	case slot[0] == slotTerminator:
		return kindTerminator
	case slot[0] == slotDeleted:
		return kindDeleted
	case slot[11]&AttrLongName == AttrLongName:
		return kindLongName
	case slot[11]&AttrVolumeID != 0:
		return kindVolumeLabel
	}
	return kindShortName
}

// shortName decodes the 8.3 name of a short name slot without padding.
// The case is preserved.
func shortName(slot []byte) string {
	var name [8]byte
	copy(name[:], slot[0:8])
	if name[0] == slotKanjiE5 {
		name[0] = slotDeleted
	}

	base := bytes.TrimRight(name[:], " ")
	ext := bytes.TrimRight(slot[8:11], " ")
	if len(ext) == 0 {
		return string(base)
	}
	return string(base) + "." + string(ext)
}

func decodeHeader(slot []byte) EntryHeader {
	// Decoding fixed size fields from a 32 byte slice cannot fail.
	h := EntryHeader{}
	_ = binary.Read(bytes.NewReader(slot), binary.LittleEndian, &h)
	return h
}

func decodeLongName(slot []byte) LongFilenameEntry {
	l := LongFilenameEntry{}
	_ = binary.Read(bytes.NewReader(slot), binary.LittleEndian, &l)
	return l
}

// FirstCluster combines the high and low cluster words.
func (h *EntryHeader) FirstCluster() uint32 {
	return uint32(h.FirstClusterHI)<<16 | uint32(h.FirstClusterLO)
}
