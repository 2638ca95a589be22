package fatnav

import (
	"time"
)

// ParseDateTime decodes the DOS date and time words of a directory entry.
//
//	date bits 0-4:  day of month, 1-31
//	date bits 5-8:  month, 1-12
//	date bits 9-15: years since 1980
//	time bits 0-4:  seconds / 2
//	time bits 5-10: minutes
//	time bits 11-15: hours
//
// tenths is the 10ms resolution byte of creation times, pass 0 for the other
// timestamps and for dates without a time. The result is in UTC.
//
// A day or month of 0 results in time.Time{}, so IsZero() detects it. A
// month above 12 rolls over into the following year. A time of day past
// 23:59:59 is capped there.
func ParseDateTime(date, clock uint16, tenths byte) time.Time {
	day := int(date & 0x1F)
	month := int(date >> 5 & 0x0F)
	if day == 0 || month == 0 {
		return time.Time{}
	}
	year := 1980 + int(date>>9)

	second := int(clock&0x1F) * 2
	minute := int(clock >> 5 & 0x3F)
	hour := int(clock >> 11)
	if hour > 23 || minute > 59 || second > 59 {
		hour, minute, second = 23, 59, 59
	}

	extra := time.Duration(tenths) * 10 * time.Millisecond
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC).Add(extra)
}
