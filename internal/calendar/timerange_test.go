package calendar

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTimeRange(t *testing.T) {
	start := mustTime(t, 2025, 1, 1, 10, 0)
	end := mustTime(t, 2025, 1, 1, 12, 0)

	if _, err := NewTimeRange(start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewTimeRange(end, start); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := NewTimeRange(time.Time{}, end); !errors.Is(err, ErrIncompleteDateRange) {
		t.Fatalf("expected ErrIncompleteDateRange, got %v", err)
	}
}

func TestDayRange(t *testing.T) {
	tr := DayRange(mustTime(t, 2024, 6, 15, 17, 45))

	if !tr.Start.Equal(mustTime(t, 2024, 6, 15, 0, 0)) {
		t.Fatalf("start = %v", tr.Start)
	}
	want := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	if !tr.End.Equal(want) {
		t.Fatalf("end = %v, want %v", tr.End, want)
	}
}

func TestHasOverlap(t *testing.T) {
	base := TimeRange{Start: mustTime(t, 2025, 1, 1, 10, 0), End: mustTime(t, 2025, 1, 1, 12, 0)}
	existing := []TimeRange{
		{Start: mustTime(t, 2025, 1, 1, 8, 0), End: mustTime(t, 2025, 1, 1, 9, 0)},
		{Start: mustTime(t, 2025, 1, 1, 12, 0), End: mustTime(t, 2025, 1, 1, 13, 0)},
		{Start: mustTime(t, 2025, 1, 1, 11, 0), End: mustTime(t, 2025, 1, 1, 11, 30)},
	}

	ok, conflicts := HasOverlap(base, existing)
	if !ok {
		t.Fatalf("expected overlap")
	}
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicts (touching counts), got %d", len(conflicts))
	}
}

func TestFormatRange(t *testing.T) {
	sameDay := TimeRange{Start: mustTime(t, 2024, 6, 1, 18, 0), End: mustTime(t, 2024, 6, 1, 23, 30)}
	if got := FormatRange(sameDay, time.UTC); got != "Sabado, 01/06/2024, 18:00–23:30" {
		t.Fatalf("unexpected format %q", got)
	}

	multi := TimeRange{Start: mustTime(t, 2024, 6, 1, 0, 0), End: mustTime(t, 2024, 6, 2, 0, 0)}
	if got := FormatRange(multi, nil); !strings.HasPrefix(got, "Sabado 01/06/2024") {
		t.Fatalf("unexpected format %q", got)
	}
}
