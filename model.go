// File model contains the structs which match the direct structures of the FAT32 filesystem.

package fatnav

// SectorSize is the only sector size supported by the navigator.
const SectorSize = 512

const (
	slotSize       = 32
	slotsPerSector = SectorSize / slotSize
)

// Attributes of a directory entry (byte 11 of a slot).
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
	AttrLongName  = AttrReadOnly | AttrHidden | AttrSystem | AttrVolumeID
)

// Special values of the first name byte.
const (
	slotTerminator = 0x00
	slotDeleted    = 0xE5
	slotKanjiE5    = 0x05
)

const (
	lfnLastFlag    = 0x40
	lfnOrdinalMask = 0x3F
	lfnUnits       = 13
	// A long name has at most 255 characters, i.e. 20 fragments.
	lfnMaxFragments = 20
)

// bootSector is the complete first sector of a FAT32 volume.
type bootSector struct {
	JumpBoot            [3]byte
	OEMName             [8]byte
	BytesPerSector      uint16
	SectorsPerCluster   byte
	ReservedSectorCount uint16
	NumFATs             byte
	RootEntryCount      uint16
	TotalSectors16      uint16
	Media               byte
	FATSize16           uint16
	SectorsPerTrack     uint16
	NumberOfHeads       uint16
	HiddenSectors       uint32
	TotalSectors32      uint32

	// FAT32 extended BPB.
	FATSize32        uint32
	ExtFlags         uint16
	FSVersion        uint16
	RootCluster      uint32
	FSInfo           uint16
	BkBootSector     uint16
	Reserved         [12]byte
	BSDriveNumber    byte
	BSReserved1      byte
	BSBootSignature  byte
	BSVolumeID       uint32
	BSVolumeLabel    [11]byte
	BSFileSystemType [8]byte

	BootCode  [420]byte
	Signature [2]byte
}

// EntryHeader is a short name slot.
type EntryHeader struct {
	Name            [11]byte
	Attribute       byte
	NTReserved      byte
	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	FirstClusterHI  uint16
	WriteTime       uint16
	WriteDate       uint16
	FirstClusterLO  uint16
	FileSize        uint32
}

// LongFilenameEntry is one fragment of a long name.
type LongFilenameEntry struct {
	Sequence  byte
	First     [5]uint16
	Attribute byte
	EntryType byte
	Checksum  byte
	Second    [6]uint16
	Zero      [2]byte
	Third     [2]uint16
}

// units returns the 13 name characters of the fragment in order.
func (l *LongFilenameEntry) units() [lfnUnits]uint16 {
	var u [lfnUnits]uint16
	n := copy(u[:], l.First[:])
	n += copy(u[n:], l.Second[:])
	copy(u[n:], l.Third[:])
	return u
}
