package fattest

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	im := New(Options{BootSector: 63, SectorsPerCluster: 4})

	require.Len(t, im.Bytes(), (63+4096)*SectorSize)
	require.Equal(t, uint32(32), im.FATSize)
	require.Equal(t, uint32(63+32+2*32), im.DataRegion())
	require.Equal(t, 4*SectorSize, im.ClusterSize())

	mbr := im.Sector(0)
	require.Equal(t, byte(0x0C), mbr[446+4])
	require.Equal(t, uint32(63), binary.LittleEndian.Uint32(mbr[446+8:]))

	vbr := im.Sector(63)
	require.Equal(t, []byte{0x55, 0xAA}, vbr[510:])
	require.Equal(t, "NO NAME    ", string(vbr[71:82]))
	require.Equal(t, EndOfChain, im.FAT(im.RootCluster))
}

func TestImage_Alloc(t *testing.T) {
	im := New(Options{})

	first := im.Alloc(3)
	require.Equal(t, []uint32{3, 4, 5}, first)
	require.Equal(t, uint32(4), im.FAT(3))
	require.Equal(t, uint32(5), im.FAT(4))
	require.Equal(t, EndOfChain, im.FAT(5))

	im.Skip(2)
	require.Equal(t, []uint32{8}, im.Alloc(1))
	require.Empty(t, im.Alloc(0))
}

func TestImage_SetFAT_AllCopies(t *testing.T) {
	im := New(Options{NumFATs: 2})
	im.SetFAT(10, 11)

	second := int64(im.ReservedSectors)*SectorSize + int64(im.FATSize)*SectorSize + 10*4
	require.Equal(t, uint32(11), binary.LittleEndian.Uint32(im.Bytes()[second:]))
}

func TestDir_Add_GrowsChain(t *testing.T) {
	im := New(Options{})
	root := im.Root()

	for i := 0; i < 17; i++ {
		root.Add(ShortSlot("A.TXT", AttrArchive, 0, 0))
	}
	require.Equal(t, 17, root.Slots())
	require.Len(t, root.Clusters, 2)
	require.Equal(t, root.Clusters[1], im.FAT(root.Clusters[0]))
	require.Equal(t, byte('A'), im.Cluster(root.Clusters[1])[0])
}

func TestDir_Mkdir(t *testing.T) {
	im := New(Options{})
	sub := im.Root().Mkdir("Sub Dir", "SUBDIR~1")
	subsub := sub.Mkdir("", "DEEPER")

	dotDot := im.Cluster(sub.Clusters[0])[SlotSize:]
	require.Equal(t, "..         ", string(dotDot[:11]))
	require.Equal(t, uint16(0), binary.LittleEndian.Uint16(dotDot[26:]))

	dotDot = im.Cluster(subsub.Clusters[0])[SlotSize:]
	require.Equal(t, uint16(sub.Clusters[0]), binary.LittleEndian.Uint16(dotDot[26:]))

	// "Sub Dir" needs one fragment and the short slot.
	require.Equal(t, 2, im.Root().Slots())
}

func TestDir_File(t *testing.T) {
	im := New(Options{})
	chain := im.Root().File("", "DATA.BIN", make([]byte, SectorSize+1))
	require.Len(t, chain, 2)

	short := im.Cluster(im.RootCluster)[:SlotSize]
	require.Equal(t, "DATA    BIN", string(short[:11]))
	require.Equal(t, uint32(SectorSize+1), binary.LittleEndian.Uint32(short[28:]))

	require.Empty(t, im.Root().File("", "EMPTY", nil))
}

func TestLongSlots(t *testing.T) {
	short := ShortSlot("README.TXT", AttrArchive, 0, 0)
	require.Equal(t, byte(0x73), Checksum(short))

	slots := LongSlots("a long file name.txt", short)
	require.Len(t, slots, 2)
	require.Equal(t, byte(0x42), slots[0][0])
	require.Equal(t, byte(0x01), slots[1][0])
	require.Equal(t, byte(AttrLongName), slots[1][11])
	require.Equal(t, byte(0x73), slots[1][13])

	// 20 units: the second fragment holds 7 units, the terminator and padding.
	require.Equal(t, uint16(0x0000), binary.LittleEndian.Uint16(slots[0][unitOffsets[7]:]))
	require.Equal(t, uint16(0xFFFF), binary.LittleEndian.Uint16(slots[0][unitOffsets[8]:]))

	require.Len(t, LongSlotsN("x", short, 3), 3)
}
