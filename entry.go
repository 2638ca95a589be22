package fatnav

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Entry is a cursor over the entries of one directory. After a successful
// Volume.Next it describes the entry just read; the next call resumes after it.
//
// An Entry owns a single sector buffer and must not be shared between
// goroutines.
type Entry struct {
	// LongName is the printable long name, or a copy of ShortName if the
	// entry has no (valid) long name.
	LongName string
	// ShortName is the 8.3 name without padding, e.g. "README.TXT".
	ShortName string
	// Slot is the raw short name slot of the entry.
	Slot [slotSize]byte
	// LongNameUnits are the UCS-2 units of the long name, nil if LongName
	// was copied from ShortName.
	LongNameUnits []uint16

	// Position of the next slot to read.
	cluster uint32
	sector  uint8
	slot    int

	// Position of the short name slot of the current entry.
	snCluster uint32
	snSector  uint8
	snSlot    int

	started bool
	done    bool
	visited uint32
	// err is returned by every later call once the cluster chain of the
	// directory could not be followed.
	err error

	buf       [SectorSize]byte
	bufSector uint32
	bufValid  bool

	run longNameRun
}

// InitRoot binds the cursor to the root directory.
func (e *Entry) InitRoot(bpb *BPB) {
	e.init(bpb.RootCluster)
}

// Init binds the cursor to dir, discarding any previous state.
func (e *Entry) Init(dir *Dir) {
	e.init(dir.FirstCluster)
}

func (e *Entry) init(cluster uint32) {
	*e = Entry{
		cluster: cluster,
	}
}

// Position returns the cluster, the sector inside the cluster and the slot
// inside the sector of the short name slot of the current entry.
func (e *Entry) Position() (cluster uint32, sector uint8, slot int) {
	return e.snCluster, e.snSector, e.snSlot
}

// Header decodes the short name slot.
func (e *Entry) Header() EntryHeader {
	return decodeHeader(e.Slot[:])
}

// Attributes returns the attribute byte.
func (e *Entry) Attributes() byte {
	return e.Slot[11]
}

func (e *Entry) IsDir() bool      { return e.Attributes()&AttrDirectory != 0 }
func (e *Entry) IsHidden() bool   { return e.Attributes()&AttrHidden != 0 }
func (e *Entry) IsSystem() bool   { return e.Attributes()&AttrSystem != 0 }
func (e *Entry) IsReadOnly() bool { return e.Attributes()&AttrReadOnly != 0 }

// FirstCluster returns the first cluster of the entry's data.
func (e *Entry) FirstCluster() uint32 {
	return uint32(binary.LittleEndian.Uint16(e.Slot[20:]))<<16 | uint32(binary.LittleEndian.Uint16(e.Slot[26:]))
}

// Size returns the declared file size in bytes. It is 0 for directories.
func (e *Entry) Size() uint32 {
	return binary.LittleEndian.Uint32(e.Slot[28:])
}

// DisplayName returns the long name converted from UCS-2 to UTF-8.
// It equals LongName for entries without long name units.
func (e *Entry) DisplayName() string {
	if e.LongNameUnits == nil {
		return e.LongName
	}

	raw := make([]byte, 2*len(e.LongNameUnits))
	for i, u := range e.LongNameUnits {
		binary.LittleEndian.PutUint16(raw[2*i:], u)
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(raw)
	if err != nil {
		return e.LongName
	}
	return string(decoded)
}

// matches compares name byte by byte with the long name first, then the short name.
func (e *Entry) matches(name string) bool {
	return e.LongName == name || e.ShortName == name
}
