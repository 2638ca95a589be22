package fatnav

// longNameRun collects the fragments of one long name while the cursor feeds
// it slot by slot. Fragments arrive in disk order N|0x40, N-1, ..., 1.
type longNameRun struct {
	units [lfnMaxFragments * lfnUnits]uint16
	// total is the fragment count announced by the first fragment, 0 if no
	// run is in progress.
	total int
	// next is the ordinal expected for the following fragment, 0 after
	// fragment 1 was seen.
	next int
	// broken is set after a malformed fragment until the run is reset by
	// a short name, deleted or volume label slot.
	broken bool
}

func (r *longNameRun) reset() {
	r.total = 0
	r.next = 0
	r.broken = false
}

// abandon drops the collected name.
func (r *longNameRun) abandon() {
	r.reset()
	r.broken = true
}

// active reports whether fragments were collected.
func (r *longNameRun) active() bool {
	return r.total > 0
}

// add feeds one long name fragment to the run.
// It returns false if the fragment made the run malformed.
func (r *longNameRun) add(slot []byte) bool {
	l := decodeLongName(slot)
	ordinal := int(l.Sequence & lfnOrdinalMask)

	if l.Sequence&lfnLastFlag != 0 {
		// Only a fresh run may start here. Once a run was started or broken
		// the long name is lost until the next short name slot.
		if r.broken {
			return false
		}
		if r.active() || ordinal == 0 || ordinal > lfnMaxFragments {
			r.abandon()
			return false
		}
		r.total = ordinal
		for i := range r.units[:ordinal*lfnUnits] {
			r.units[i] = 0xFFFF
		}
	} else if r.broken {
		return false
	} else if !r.active() || r.next == 0 || ordinal != r.next {
		// Missing start, a fragment after fragment 1, a gap or a duplicate.
		r.abandon()
		return false
	}

	u := l.units()
	copy(r.units[(ordinal-1)*lfnUnits:], u[:])
	r.next = ordinal - 1
	return true
}

// complete reports whether all fragments down to ordinal 1 were collected.
func (r *longNameRun) complete() bool {
	return r.active() && r.next == 0
}

// name returns the collected UCS-2 units in display order, cut at the
// first 0x0000 or 0xFFFF.
func (r *longNameRun) name() []uint16 {
	all := r.units[:r.total*lfnUnits]
	for i, u := range all {
		if u == 0x0000 || u == 0xFFFF {
			all = all[:i]
			break
		}
	}
	out := make([]uint16, len(all))
	copy(out, all)
	return out
}

// printable converts UCS-2 units to the name used for matching.
// Units outside of printable ASCII become '?'.
func printable(units []uint16) string {
	b := make([]byte, len(units))
	for i, u := range units {
		if u < 0x20 || u > 0x7E {
			b[i] = '?'
			continue
		}
		b[i] = byte(u)
	}
	return string(b)
}
