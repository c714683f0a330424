package util

import (
	"testing"
	"time"
)

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(2024, 2)
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected Feb 1, got %v", start)
	}
	if !end.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected Feb 29 (leap year), got %v", end)
	}

	_, end = MonthBounds(2023, 2)
	if end.Day() != 28 {
		t.Errorf("Expected Feb 28, got %d", end.Day())
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestClampedDate(t *testing.T) {
	// Day 31 in February clamps to the last day
	result := ClampedDate(2024, time.February, 31)
	if result.Day() != 29 {
		t.Errorf("Expected day 29, got %d", result.Day())
	}

	result = ClampedDate(2023, time.February, 31)
	if result.Day() != 28 {
		t.Errorf("Expected day 28, got %d", result.Day())
	}

	// Normal day passes through
	result = ClampedDate(2024, time.March, 15)
	if result.Day() != 15 {
		t.Errorf("Expected day 15, got %d", result.Day())
	}
}
