package gorm

import "time"

// Timestamps are stored as Unix nanoseconds so that ordering on them is
// numeric and independent of the text layout used by the driver.

func toTime(nano int64) time.Time {
	if nano == 0 {
		return time.Time{}
	}

	return time.Unix(0, nano).UTC()
}

func nowNano() int64 {
	return time.Now().UnixNano()
}
