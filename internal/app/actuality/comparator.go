// Package actuality orders validity intervals by how current they are.
package actuality

import "time"

// Compare returns 1 when interval A is more current than B, -1 when less, 0 when equal.
//
// An open end (zero time) is later than any date; a zero start is earlier than any date.
// Ends are compared first, then starts: among variants closed on the same day the
// most recently started one wins.
func Compare(aStart, aEnd, bStart, bEnd time.Time) int {
	if c := compareEnd(aEnd, bEnd); c != 0 {
		return c
	}
	return compareStart(aStart, bStart)
}

func compareEnd(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Compare(b)
}

func compareStart(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return -1
	case b.IsZero():
		return 1
	}
	return a.Compare(b)
}

// IsLive reports whether an interval ending at end is still valid on the calendar day of now.
func IsLive(end, now time.Time) bool {
	if end.IsZero() {
		return true
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, end.Location())
	return !end.Before(today)
}
