package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// FormatCount renders n with thousands separators.
func FormatCount[T ~int | ~int64](n T) string {
	return humanize.Comma(int64(n))
}

// FormatBytes renders a byte size, e.g. "82 MB".
func FormatBytes(n int64) string {
	if n < 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(n))
}

// FormatDuration rounds d to a readable precision.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(10 * time.Microsecond).String()
	default:
		return d.Round(time.Microsecond).String()
	}
}
