package dateserial

import (
	"testing"
	"time"
)

func TestFromSerialZero(t *testing.T) {
	bd := FromSerial(0, false)
	if bd.Year != 1900 || bd.Month != 1 || bd.Day != 0 {
		t.Fatalf("serial 0 = %+v, want {1900,1,0,...}", bd)
	}
}

func TestFromSerialPhantomLeapDay(t *testing.T) {
	bd := FromSerial(60, false)
	if bd.Year != 1900 || bd.Month != 2 || bd.Day != 29 {
		t.Fatalf("serial 60 = %+v, want the phantom 1900-02-29", bd)
	}
}

func TestFromSerialJustAfterPhantom(t *testing.T) {
	bd := FromSerial(61, false)
	if bd.Year != 1900 || bd.Month != 3 || bd.Day != 1 {
		t.Fatalf("serial 61 = %+v, want 1900-03-01", bd)
	}
}

func TestFromSerial1904Epoch(t *testing.T) {
	bd := FromSerial(0, true)
	if bd.Year != 1904 || bd.Month != 1 || bd.Day != 1 {
		t.Fatalf("1904-system serial 0 = %+v, want 1904-01-01", bd)
	}
}

func TestToSerialFromSerialRoundTrip(t *testing.T) {
	bd := FromSerial(45000, false)
	tm := time.Date(bd.Year, time.Month(bd.Month), bd.Day, bd.Hour, bd.Minute, bd.Second, 0, time.UTC)
	back := ToSerial(tm, false)
	if back < 44999.9 || back > 45000.1 {
		t.Fatalf("round trip serial = %v, want ~45000", back)
	}
}

func TestHour12Midnight(t *testing.T) {
	bd := BrokenDown{Hour: 0}
	if bd.Hour12() != 12 {
		t.Fatalf("Hour12 at midnight = %d, want 12", bd.Hour12())
	}
}

func TestHour12Noon(t *testing.T) {
	bd := BrokenDown{Hour: 12}
	if bd.Hour12() != 12 {
		t.Fatalf("Hour12 at noon = %d, want 12", bd.Hour12())
	}
}
