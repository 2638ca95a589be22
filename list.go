package fatnav

// FieldMask selects the fields of a Record filled by ListDirectory.
type FieldMask uint8

const (
	ShortNameField    FieldMask = 0x01
	LongNameField     FieldMask = 0x02
	HiddenField       FieldMask = 0x04
	CreationField     FieldMask = 0x08
	LastAccessField   FieldMask = 0x10
	LastModifiedField FieldMask = 0x20
	TypeField         FieldMask = 0x40
	FileSizeField     FieldMask = 0x80
	AllFields         FieldMask = 0xFF
)

// Has reports whether all bits of f are set in m.
func (m FieldMask) Has(f FieldMask) bool {
	return m&f == f
}

// Record is one listed directory entry. Only the fields selected by Mask are
// set, all others are zero. Timestamps are the raw DOS words, see
// ParseDateTime.
type Record struct {
	Mask FieldMask

	ShortName string
	LongName  string

	// DisplayName is the long name in UTF-8. LongName replaces characters
	// outside of printable ASCII with '?'.
	DisplayName string

	// Attributes, set with HiddenField.
	Hidden   bool
	System   bool
	ReadOnly bool

	CreateTimeTenth byte
	CreateTime      uint16
	CreateDate      uint16
	LastAccessDate  uint16
	WriteTime       uint16
	WriteDate       uint16

	IsDir bool
	Size  uint32
}

// ListDirectory calls sink for each entry of d in on-disk order.
//
// If mask contains neither ShortNameField nor LongNameField nothing is
// listed. Without HiddenField entries marked hidden or system are skipped.
// It returns ErrEndOfDirectory after the last entry. An error returned by
// sink stops the listing and is returned unchanged.
// May return ErrFailedReadSector or ErrCorruptFatEntry.
func (v *Volume) ListDirectory(d *Dir, mask FieldMask, sink func(r Record) error) error {
	if mask&(ShortNameField|LongNameField) == 0 {
		return ErrEndOfDirectory
	}

	e := &Entry{}
	e.Init(d)
	for {
		if err := v.Next(e); err != nil {
			return err
		}

		if !mask.Has(HiddenField) && (e.IsHidden() || e.IsSystem()) {
			continue
		}

		if err := sink(newRecord(e, mask)); err != nil {
			return err
		}
	}
}

func newRecord(e *Entry, mask FieldMask) Record {
	h := e.Header()
	r := Record{Mask: mask}

	if mask.Has(ShortNameField) {
		r.ShortName = e.ShortName
	}
	if mask.Has(LongNameField) {
		r.LongName = e.LongName
		r.DisplayName = e.DisplayName()
	}
	if mask.Has(HiddenField) {
		r.Hidden = e.IsHidden()
		r.System = e.IsSystem()
		r.ReadOnly = e.IsReadOnly()
	}
	if mask.Has(CreationField) {
		r.CreateTimeTenth = h.CreateTimeTenth
		r.CreateTime = h.CreateTime
		r.CreateDate = h.CreateDate
	}
	if mask.Has(LastAccessField) {
		r.LastAccessDate = h.LastAccessDate
	}
	if mask.Has(LastModifiedField) {
		r.WriteTime = h.WriteTime
		r.WriteDate = h.WriteDate
	}
	if mask.Has(TypeField) {
		r.IsDir = e.IsDir()
	}
	if mask.Has(FileSizeField) {
		r.Size = h.FileSize
	}
	return r
}
