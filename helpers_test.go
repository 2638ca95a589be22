package fatnav

import (
	"errors"
	"testing"

	"github.com/aligator/fatnav/internal/fattest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// diskTestError is just a error used as failing disk in tests.
var diskTestError = errors.New("a super disk error")

// imageDisk serves sectors of an in memory image.
type imageDisk struct {
	im *fattest.Image
	// fail lists sectors which cannot be read.
	fail  map[uint32]bool
	reads []uint32
}

func newImageDisk(im *fattest.Image) *imageDisk {
	return &imageDisk{im: im, fail: map[uint32]bool{}}
}

func (d *imageDisk) FindBootSector() (uint32, error) {
	return d.im.BootSector, nil
}

func (d *imageDisk) ReadSector(addr uint32, buf *[SectorSize]byte) error {
	d.reads = append(d.reads, addr)
	if d.fail[addr] {
		return diskTestError
	}
	copy(buf[:], d.im.Sector(addr))
	return nil
}

// testingOpen opens im and records the log output in the returned hook.
func testingOpen(t *testing.T, im *fattest.Image, opts ...Option) (*Volume, *imageDisk, *test.Hook) {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	d := newImageDisk(im)
	v, err := Open(d, append([]Option{WithLogger(log)}, opts...)...)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return v, d, hook
}

// listed is one result of walking a directory with Next.
type listed struct {
	Long  string
	Short string
}

// testingEntries walks d to its end.
func testingEntries(t *testing.T, v *Volume, d *Dir) []listed {
	t.Helper()

	var result []listed
	e := &Entry{}
	e.Init(d)
	for {
		err := v.Next(e)
		if errors.Is(err, ErrEndOfDirectory) {
			return result
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		result = append(result, listed{Long: e.LongName, Short: e.ShortName})
	}
}

func warnings(hook *test.Hook) int {
	n := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			n++
		}
	}
	return n
}
