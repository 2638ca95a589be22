// Package fattest builds small FAT32 images in memory for tests.
//
// The builder writes exactly the slots it is told to write, so tests can
// also produce broken directories, e.g. malformed long name runs or looping
// cluster chains.
package fattest

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"
)

const (
	SectorSize = 512
	SlotSize   = 32

	EndOfChain uint32 = 0x0FFFFFFF
)

// Options describe the geometry of a new image. Zero values are replaced by
// defaults.
type Options struct {
	// BootSector is the sector of the volume inside the image. If it is not
	// 0, sector 0 holds an MBR with a single FAT32 partition.
	BootSector        uint32
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	// TotalSectors of the volume, defaults to 4096.
	TotalSectors uint32
	// FATSize in sectors, defaults to one entry per sector of the volume.
	FATSize uint32
	Label        string
}

// Image is a FAT32 image in memory.
type Image struct {
	data []byte

	BootSector        uint32
	SectorsPerCluster uint8
	ReservedSectors   uint16
	NumFATs           uint8
	FATSize           uint32
	TotalSectors      uint32
	RootCluster       uint32

	nextFree uint32
	root     *Dir
}

// New formats a new image.
func New(opts Options) *Image {
	if opts.SectorsPerCluster == 0 {
		opts.SectorsPerCluster = 1
	}
	if opts.ReservedSectors == 0 {
		opts.ReservedSectors = 32
	}
	if opts.NumFATs == 0 {
		opts.NumFATs = 2
	}
	if opts.TotalSectors == 0 {
		opts.TotalSectors = 4096
	}
	if opts.Label == "" {
		opts.Label = "NO NAME"
	}

	im := &Image{
		data:              make([]byte, int64(opts.BootSector+opts.TotalSectors)*SectorSize),
		BootSector:        opts.BootSector,
		SectorsPerCluster: opts.SectorsPerCluster,
		ReservedSectors:   opts.ReservedSectors,
		NumFATs:           opts.NumFATs,
		TotalSectors:      opts.TotalSectors,
		RootCluster:       2,
		nextFree:          3,
	}
	im.FATSize = opts.FATSize
	if im.FATSize == 0 {
		// One FAT entry per sector of the volume is more than enough.
		im.FATSize = (opts.TotalSectors*4 + SectorSize - 1) / SectorSize
	}

	im.writeBootSector(opts.Label)
	if opts.BootSector != 0 {
		im.writeMBR()
	}

	im.SetFAT(0, 0x0FFFFFF8)
	im.SetFAT(1, EndOfChain)
	im.SetFAT(im.RootCluster, EndOfChain)
	im.root = &Dir{im: im, Clusters: []uint32{im.RootCluster}}

	return im
}

func (im *Image) writeBootSector(label string) {
	b := im.Sector(im.BootSector)
	copy(b[0:], []byte{0xEB, 0x58, 0x90})
	copy(b[3:11], "fattest ")
	binary.LittleEndian.PutUint16(b[11:], SectorSize)
	b[13] = im.SectorsPerCluster
	binary.LittleEndian.PutUint16(b[14:], im.ReservedSectors)
	b[16] = im.NumFATs
	b[21] = 0xF8
	binary.LittleEndian.PutUint32(b[28:], im.BootSector)
	binary.LittleEndian.PutUint32(b[32:], im.TotalSectors)
	binary.LittleEndian.PutUint32(b[36:], im.FATSize)
	binary.LittleEndian.PutUint32(b[44:], im.RootCluster)
	binary.LittleEndian.PutUint16(b[48:], 1)
	binary.LittleEndian.PutUint16(b[50:], 6)
	b[64] = 0x80
	b[66] = 0x29
	copy(b[71:82], fmt.Sprintf("%-11s", label))
	copy(b[82:90], "FAT32   ")
	b[510] = 0x55
	b[511] = 0xAA
}

func (im *Image) writeMBR() {
	b := im.Sector(0)
	entry := b[446:462]
	entry[4] = 0x0C
	binary.LittleEndian.PutUint32(entry[8:], im.BootSector)
	binary.LittleEndian.PutUint32(entry[12:], im.TotalSectors)
	b[510] = 0x55
	b[511] = 0xAA
}

// Bytes returns the whole image. It is not copied.
func (im *Image) Bytes() []byte {
	return im.data
}

// ReadAt implements io.ReaderAt.
func (im *Image) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(im.data)) {
		return 0, io.EOF
	}
	n := copy(p, im.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Sector returns the sector at the absolute address addr.
func (im *Image) Sector(addr uint32) []byte {
	off := int64(addr) * SectorSize
	return im.data[off : off+SectorSize]
}

// DataRegion returns the absolute address of cluster 2.
func (im *Image) DataRegion() uint32 {
	return im.BootSector + uint32(im.ReservedSectors) + uint32(im.NumFATs)*im.FATSize
}

// ClusterSize in bytes.
func (im *Image) ClusterSize() int {
	return int(im.SectorsPerCluster) * SectorSize
}

// Cluster returns the content of cluster c.
func (im *Image) Cluster(c uint32) []byte {
	off := int64(im.DataRegion()+(c-2)*uint32(im.SectorsPerCluster)) * SectorSize
	return im.data[off : off+int64(im.ClusterSize())]
}

// SetFAT sets the entry of cluster in every FAT.
func (im *Image) SetFAT(cluster, value uint32) {
	for i := uint32(0); i < uint32(im.NumFATs); i++ {
		off := (int64(im.BootSector+uint32(im.ReservedSectors)+i*im.FATSize))*SectorSize + int64(cluster)*4
		binary.LittleEndian.PutUint32(im.data[off:], value)
	}
}

// FAT returns the entry of cluster in the first FAT.
func (im *Image) FAT(cluster uint32) uint32 {
	off := int64(im.BootSector+uint32(im.ReservedSectors))*SectorSize + int64(cluster)*4
	return binary.LittleEndian.Uint32(im.data[off:])
}

// Alloc allocates a chain of n clusters. Clusters are handed out in
// ascending order, so the chain is contiguous unless Skip was used.
func (im *Image) Alloc(n int) []uint32 {
	chain := make([]uint32, n)
	for i := range chain {
		chain[i] = im.nextFree
		im.nextFree++
		if i > 0 {
			im.SetFAT(chain[i-1], chain[i])
		}
	}
	if n > 0 {
		im.SetFAT(chain[n-1], EndOfChain)
	}
	return chain
}

// Skip leaves n free clusters, so the next allocation is not adjacent.
func (im *Image) Skip(n int) {
	im.nextFree += uint32(n)
}

// WriteChain writes data sequentially into the clusters of chain.
func (im *Image) WriteChain(chain []uint32, data []byte) {
	for _, c := range chain {
		if len(data) == 0 {
			return
		}
		n := copy(im.Cluster(c), data)
		data = data[n:]
	}
}

// Root returns the root directory.
func (im *Image) Root() *Dir {
	return im.root
}

// Dir is a directory being built. Slots are appended in order, the cluster
// chain grows when needed.
type Dir struct {
	im       *Image
	Clusters []uint32
	count    int
}

// Slots returns the number of slots written so far.
func (d *Dir) Slots() int {
	return d.count
}

// Add appends raw slots.
func (d *Dir) Add(slots ...[SlotSize]byte) *Dir {
	perCluster := d.im.ClusterSize() / SlotSize
	for _, s := range slots {
		i := d.count / perCluster
		if i == len(d.Clusters) {
			next := d.im.Alloc(1)[0]
			d.im.SetFAT(d.Clusters[i-1], next)
			d.Clusters = append(d.Clusters, next)
		}
		off := (d.count % perCluster) * SlotSize
		copy(d.im.Cluster(d.Clusters[i])[off:], s[:])
		d.count++
	}
	return d
}

// AddNamed appends the long name slots of long (if not empty) followed by
// the short name slot.
func (d *Dir) AddNamed(long string, short [SlotSize]byte) *Dir {
	if long != "" {
		d.Add(LongSlots(long, short)...)
	}
	return d.Add(short)
}

// Mkdir creates a subdirectory including its "." and ".." entries.
func (d *Dir) Mkdir(long, short string) *Dir {
	cluster := d.im.Alloc(1)[0]
	d.AddNamed(long, ShortSlot(short, AttrDirectory, cluster, 0))

	parent := d.Clusters[0]
	if parent == d.im.RootCluster {
		parent = 0
	}
	child := &Dir{im: d.im, Clusters: []uint32{cluster}}
	child.Add(
		ShortSlot(".", AttrDirectory, cluster, 0),
		ShortSlot("..", AttrDirectory, parent, 0),
	)
	return child
}

// File creates a regular file with the given content and returns its
// cluster chain.
func (d *Dir) File(long, short string, content []byte) []uint32 {
	n := (len(content) + d.im.ClusterSize() - 1) / d.im.ClusterSize()
	chain := d.im.Alloc(n)
	d.im.WriteChain(chain, content)

	first := uint32(0)
	if n > 0 {
		first = chain[0]
	}
	d.AddNamed(long, ShortSlot(short, AttrArchive, first, uint32(len(content))))
	return chain
}

// Attributes of a directory entry.
const (
	AttrReadOnly  = 0x01
	AttrHidden    = 0x02
	AttrSystem    = 0x04
	AttrVolumeID  = 0x08
	AttrDirectory = 0x10
	AttrArchive   = 0x20
	AttrLongName  = 0x0F
)

// ShortSlot builds a short name slot. name is given in its dotted form,
// e.g. "README.TXT", "." or "..".
func ShortSlot(name string, attr byte, cluster uint32, size uint32) [SlotSize]byte {
	var s [SlotSize]byte
	copy(s[0:11], pad83(name))
	s[11] = attr
	binary.LittleEndian.PutUint16(s[20:], uint16(cluster>>16))
	binary.LittleEndian.PutUint16(s[26:], uint16(cluster))
	binary.LittleEndian.PutUint32(s[28:], size)
	return s
}

// SetTimes sets the raw creation, access and write words of a short slot.
func SetTimes(s *[SlotSize]byte, tenth byte, createTime, createDate, accessDate, writeTime, writeDate uint16) {
	s[13] = tenth
	binary.LittleEndian.PutUint16(s[14:], createTime)
	binary.LittleEndian.PutUint16(s[16:], createDate)
	binary.LittleEndian.PutUint16(s[18:], accessDate)
	binary.LittleEndian.PutUint16(s[22:], writeTime)
	binary.LittleEndian.PutUint16(s[24:], writeDate)
}

func pad83(name string) string {
	if name == "." || name == ".." {
		return fmt.Sprintf("%-11s", name)
	}
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}
	return fmt.Sprintf("%-8s%-3s", base, ext)
}

// Checksum is the short name checksum stored in long name fragments.
func Checksum(short [SlotSize]byte) byte {
	var sum byte
	for _, c := range short[:11] {
		sum = (sum>>1 | sum<<7) + c
	}
	return sum
}

// unitOffsets are the positions of the 13 name units of a fragment.
var unitOffsets = [13]int{1, 3, 5, 7, 9, 14, 16, 18, 20, 22, 24, 28, 30}

// LongSlots builds the long name fragments for long in disk order, i.e.
// starting with the fragment carrying the 0x40 flag.
func LongSlots(long string, short [SlotSize]byte) [][SlotSize]byte {
	units := len(utf16.Encode([]rune(long)))
	return LongSlotsN(long, short, (units+12)/13)
}

// LongSlotsN is LongSlots using count fragments. Fragments past the end of
// the name are padded.
func LongSlotsN(long string, short [SlotSize]byte, count int) [][SlotSize]byte {
	units := utf16.Encode([]rune(long))
	if len(units) < count*13 {
		units = append(units, 0x0000)
	}
	for len(units) < count*13 {
		units = append(units, 0xFFFF)
	}

	sum := Checksum(short)
	slots := make([][SlotSize]byte, 0, count)
	for ordinal := count; ordinal >= 1; ordinal-- {
		var s [SlotSize]byte
		s[0] = byte(ordinal)
		if ordinal == count {
			s[0] |= 0x40
		}
		s[11] = AttrLongName
		s[13] = sum
		for i, off := range unitOffsets {
			binary.LittleEndian.PutUint16(s[off:], units[(ordinal-1)*13+i])
		}
		slots = append(slots, s)
	}
	return slots
}
