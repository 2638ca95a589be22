package fatnav

import (
	"github.com/sirupsen/logrus"
)

// DefaultMaxNameLen is the longest long name (in bytes of its printable
// form) the navigator accepts if not configured otherwise.
const DefaultMaxNameLen = 100

// Volume is an opened FAT32 volume. All navigation happens through it.
//
// A Volume may be shared, but it performs no locking around the Disk: only
// one operation may be in flight at a time.
type Volume struct {
	disk Disk
	bpb  BPB
	log  logrus.FieldLogger

	maxNameLen int
}

// Option configures a Volume.
type Option func(v *Volume)

// WithLogger sets the logger used for diagnostics.
// The default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(v *Volume) {
		v.log = log
	}
}

// WithMaxNameLen sets the longest accepted name. Values < 1 are ignored.
func WithMaxNameLen(n int) Option {
	return func(v *Volume) {
		if n > 0 {
			v.maxNameLen = n
		}
	}
}

// Open loads and validates the BPB of disk.
// The returned error is a BootSectorError, decorated by a checkpoint.
func Open(disk Disk, opts ...Option) (*Volume, error) {
	v := &Volume{
		disk:       disk,
		log:        logrus.StandardLogger(),
		maxNameLen: DefaultMaxNameLen,
	}
	for _, opt := range opts {
		opt(v)
	}

	bpb, err := loadBPB(disk, v.log)
	if err != nil {
		return nil, err
	}
	v.bpb = bpb

	return v, nil
}

// BPB returns a copy of the loaded geometry.
func (v *Volume) BPB() BPB {
	return v.bpb
}

// MaxNameLen returns the longest accepted name.
func (v *Volume) MaxNameLen() int {
	return v.maxNameLen
}
