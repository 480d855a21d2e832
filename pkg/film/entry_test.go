package film

import (
	"testing"
	"time"
)

func TestDayOfNormalizesToNoon(t *testing.T) {
	early := DayOf(time.Date(2024, time.June, 15, 0, 4, 1, 0, time.Local))
	late := DayOf(time.Date(2024, time.June, 15, 23, 58, 59, 0, time.Local))

	if !early.Equal(late.Time) {
		t.Errorf("same date normalized differently: %v vs %v", early, late)
	}
	if early.Hour() != 12 || early.Minute() != 0 || early.Second() != 0 {
		t.Errorf("normalized time = %v, want noon exactly", early)
	}
}

func TestParseDayRoundTrips(t *testing.T) {
	day, err := ParseDay("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDay returned error: %v", err)
	}
	if day.Key() != "2024-06-01" {
		t.Errorf("Key() = %q, want 2024-06-01", day.Key())
	}
	if day.Label() != "June 1, 2024" {
		t.Errorf("Label() = %q, want June 1, 2024", day.Label())
	}
}

func TestParseDayRejectsGarbage(t *testing.T) {
	if _, err := ParseDay("june first"); err == nil {
		t.Error("expected error for unparseable day")
	}
}

func TestClassifyUsesDatePartOnly(t *testing.T) {
	anchor := DayOf(time.Date(2024, time.June, 15, 23, 0, 0, 0, time.Local))

	tests := []struct {
		name string
		when time.Time
		want DayState
	}{
		{"previous day late", time.Date(2024, time.June, 14, 23, 59, 0, 0, time.Local), Before},
		{"previous month", time.Date(2024, time.May, 20, 12, 0, 0, 0, time.Local), Before},
		{"same day early", time.Date(2024, time.June, 15, 0, 1, 0, 0, time.Local), Today},
		{"same day late", time.Date(2024, time.June, 15, 23, 59, 0, 0, time.Local), Today},
		{"next day early", time.Date(2024, time.June, 16, 0, 1, 0, 0, time.Local), After},
		{"next year", time.Date(2025, time.January, 1, 12, 0, 0, 0, time.Local), After},
	}
	for _, tc := range tests {
		if got := Classify(anchor, DayOf(tc.when)); got != tc.want {
			t.Errorf("%s: Classify = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSpeedForIndexDefaultsToNormal(t *testing.T) {
	tests := []struct {
		index int
		want  Speed
	}{
		{0, Slow},
		{1, Normal},
		{2, Fast},
		{-1, Normal},
		{3, Normal},
		{99, Normal},
	}
	for _, tc := range tests {
		if got := SpeedForIndex(tc.index); got != tc.want {
			t.Errorf("SpeedForIndex(%d) = %v, want %v", tc.index, got, tc.want)
		}
	}
}

func TestSpeedIndexRoundTrips(t *testing.T) {
	for _, speed := range []Speed{Slow, Normal, Fast} {
		if got := SpeedForIndex(speed.Index()); got != speed {
			t.Errorf("SpeedForIndex(%v.Index()) = %v", speed, got)
		}
	}
}
