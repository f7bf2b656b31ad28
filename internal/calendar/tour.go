package calendar

import (
	"strings"
	"time"
)

// TourDateSuffix добавляется к названию тура в названии каждой даты.
const TourDateSuffix = " (Tour Date)"

// DateEntry — одна дата тура из формы. Нулевое время означает «не заполнено».
type DateEntry struct {
	Start    time.Time
	End      time.Time
	Location string
}

// TourDateTitle — название дочерней записи тура.
func TourDateTitle(tourTitle string) string {
	return tourTitle + TourDateSuffix
}

// ValidateTour проверяет форму создания тура в фиксированном порядке:
//  1. пустое название;
//  2. незаполненная граница у любой даты (отклоняется вся форма);
//  3. конец раньше начала у любой даты;
//  4. после фильтрации не осталось ни одной даты.
//
// Возвращает очищенное название и даты в исходном порядке.
func ValidateTour(title string, entries []DateEntry) (string, []DateEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, ErrMissingTitle
	}

	for _, e := range entries {
		if e.Start.IsZero() || e.End.IsZero() {
			return "", nil, ErrIncompleteDateRange
		}
	}
	for _, e := range entries {
		if e.End.Before(e.Start) {
			return "", nil, ErrInvalidRange
		}
	}

	valid := make([]DateEntry, 0, len(entries))
	for _, e := range entries {
		if e.Start.IsZero() || e.End.IsZero() {
			continue
		}
		e.Location = strings.TrimSpace(e.Location)
		valid = append(valid, e)
	}
	if len(valid) == 0 {
		return "", nil, ErrNoValidDates
	}

	// Тур покрывает интервал от начала первой даты до конца последней.
	if valid[len(valid)-1].End.Before(valid[0].Start) {
		return "", nil, ErrInvalidRange
	}

	return title, valid, nil
}

// TourSpan — интервал родительской записи тура.
func TourSpan(entries []DateEntry) TimeRange {
	return TimeRange{Start: entries[0].Start, End: entries[len(entries)-1].End}
}

// DistinctLocations возвращает непустые площадки без повторов, в порядке появления.
func DistinctLocations(entries []DateEntry) []string {
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		loc := strings.TrimSpace(e.Location)
		if loc == "" || seen[loc] {
			continue
		}
		seen[loc] = true
		out = append(out, loc)
	}
	return out
}

// OptionalString превращает пустую строку в nil.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
