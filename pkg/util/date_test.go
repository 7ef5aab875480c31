package util

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	in := time.Date(2025, 3, 14, 15, 9, 26, 0, time.FixedZone("X", 3*3600))
	got := DayStart(in)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestDayRange(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)
	from, to := DayRange(now, 7)
	if !from.Equal(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from %v", from)
	}
	if !to.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected to %v", to)
	}
	if got := int(to.Sub(from).Hours() / 24); got != 7 {
		t.Fatalf("range spans %d days", got)
	}

	from, to = DayRange(now, 0)
	if !from.Equal(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("n<1 should clamp to a single day, got %v..%v", from, to)
	}
}
