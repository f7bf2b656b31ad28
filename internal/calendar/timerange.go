package calendar

import (
	"fmt"
	"time"
)

// TimeRange — интервал [Start, End], оба конца включены.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange проверяет, что обе границы заданы и конец не раньше начала.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, ErrIncompleteDateRange
	}
	if end.Before(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// DayRange — весь день date: с 00:00:00 до 23:59:59 в часовом поясе date.
func DayRange(date time.Time) TimeRange {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	end := time.Date(y, m, d, 23, 59, 59, 0, date.Location())
	return TimeRange{Start: start, End: end}
}

// Overlaps — касание концами считается пересечением.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return !tr.Start.After(other.End) && !other.Start.After(tr.End)
}

// HasOverlap возвращает интервалы из existing, пересекающиеся с newRange.
func HasOverlap(newRange TimeRange, existing []TimeRange) (bool, []TimeRange) {
	var conflicts []TimeRange
	for _, tr := range existing {
		if newRange.Overlaps(tr) {
			conflicts = append(conflicts, tr)
		}
	}
	return len(conflicts) > 0, conflicts
}

var esWeekdays = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miercoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sabado",
	time.Sunday:    "Domingo",
}

// FormatRange форматирует интервал для писем техникам.
// Если loc != nil, время переводится в указанный часовой пояс.
func FormatRange(tr TimeRange, loc *time.Location) string {
	start, end := tr.Start, tr.End
	if loc != nil {
		start = start.In(loc)
		end = end.In(loc)
	}

	if start.YearDay() == end.YearDay() && start.Year() == end.Year() {
		return fmt.Sprintf("%s, %s, %s–%s",
			esWeekdays[start.Weekday()],
			start.Format("02/01/2006"),
			start.Format("15:04"),
			end.Format("15:04"),
		)
	}

	return fmt.Sprintf("%s %s – %s %s",
		esWeekdays[start.Weekday()], start.Format("02/01/2006"),
		esWeekdays[end.Weekday()], end.Format("02/01/2006"),
	)
}
