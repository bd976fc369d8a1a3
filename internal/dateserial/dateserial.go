// Package dateserial converts between Excel date serial numbers and
// broken-down calendar dates, under both the 1900 and 1904 epochs.
//
// Grounded on TsubasaBE/go-xlsb's numfmt.convertSerial (1900/1904 dispatch,
// serial-0 and serial-61 special cases), generalized to expose a
// BrokenDown result instead of a bare time.Time so that serial 0 can report
// the {1900,1,0} sentinel spec.md calls for instead of being folded into
// time.Time's own normalization.
package dateserial

import (
	"math"
	"time"
)

// BrokenDown is a decoded Excel date/time value.
type BrokenDown struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int
	Weekday              time.Weekday
}

// epoch1900 is December 30, 1899 UTC -- the day from which Excel's 1900
// system counts: serial 61 lands on 1900-03-01, and serials 1-59 are
// shifted by one day so that serial 1 lands on 1900-01-01.
var epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// the 1904 system differs from the 1900 system by exactly 1462 days and has
// no phantom leap day.
const days1900To1904 = 1462

// ToSerial converts a calendar date/time to its Excel serial number.
func ToSerial(t time.Time, date1904 bool) float64 {
	t = t.UTC()
	base := epoch1900
	days := float64(t.Sub(base)) / float64(24*time.Hour)
	if date1904 {
		days -= days1900To1904
	}
	if !date1904 && days < 61 {
		// Dates before 1900-03-01 precede the phantom Feb 29, 1900, so their
		// serial is one less than the day count; serials >= 61 align with
		// real calendar dates.
		days--
	}
	return days
}

// FromSerial converts an Excel serial number back to a broken-down date.
// Serial 0 reports {1900,1,0}; serial 60 reports {1900,2,29} (the phantom
// leap day) under the 1900 system.
func FromSerial(serial float64, date1904 bool) BrokenDown {
	if date1904 {
		serial += days1900To1904
	}

	intPart := math.Floor(serial)
	frac := serial - intPart

	if !date1904 {
		if intPart == 0 {
			return composeTime(1900, 1, 0, frac, time.Wednesday)
		}
		if intPart == 60 {
			return composeTime(1900, 2, 29, frac, time.Wednesday)
		}
		if intPart < 60 {
			// Serials 1-59 precede the phantom leap day, so they land one
			// day later than a plain count from epoch1900.
			intPart++
		}
	}

	t := epoch1900.Add(time.Duration(intPart) * 24 * time.Hour)
	return composeTime(t.Year(), int(t.Month()), t.Day(), frac, t.Weekday())
}

func composeTime(year, month, day int, frac float64, weekday time.Weekday) BrokenDown {
	// Sub-second precision is computed separately from whole seconds, then
	// hour/minute/second are composed via a 24h rollover cascade.
	totalMs := int64(math.Round(frac * 86400000))
	if totalMs >= 86400000 {
		totalMs = 86400000 - 1
	}
	if totalMs < 0 {
		totalMs = 0
	}
	ms := totalMs % 1000
	totalSec := totalMs / 1000
	sec := totalSec % 60
	totalMin := totalSec / 60
	min := totalMin % 60
	hour := (totalMin / 60) % 24

	return BrokenDown{
		Year: year, Month: month, Day: day,
		Hour: int(hour), Minute: int(min), Second: int(sec),
		Millisecond: int(ms),
		Weekday:     weekday,
	}
}

// Hour12 returns the hour on a 12-hour clock, with midnight as 12.
func (bd BrokenDown) Hour12() int {
	h := bd.Hour % 12
	if h == 0 {
		h = 12
	}
	return h
}

// FromSerialHijri converts a serial number to a broken-down Hijri-calendar
// approximation, per spec.md's "Hijri variant": subtract 581 from the
// Gregorian year derived via the normal 1900/1904 rules, and derive the
// weekday with the same pre-epoch offset as the Gregorian path.
func FromSerialHijri(serial float64, date1904 bool) BrokenDown {
	bd := FromSerial(serial, date1904)
	bd.Year -= 581
	return bd
}
