package httpapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
)

const dateLayout = "2006-01-02"

// flexTime принимает RFC3339, дату без времени или пустую строку (нулевое время).
type flexTime struct {
	time.Time
}

func (t *flexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := parseFlexTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func parseFlexTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	return t, nil
}

func toDepartments(in []string) []model.Department {
	out := make([]model.Department, 0, len(in))
	for _, d := range in {
		out = append(out, model.Department(strings.ToLower(strings.TrimSpace(d))))
	}
	return out
}

type signUpRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type dateEntryRequest struct {
	Start    flexTime `json:"start"`
	End      flexTime `json:"end"`
	Location string   `json:"location"`
}

type createTourRequest struct {
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Color            string             `json:"color" validate:"omitempty,hexcolor"`
	Departments      []string           `json:"departments" validate:"dive,oneof=sound lights video"`
	ActingDepartment string             `json:"acting_department" validate:"omitempty,oneof=sound lights video"`
	Dates            []dateEntryRequest `json:"dates"`
}

func (r createTourRequest) entries() []calendar.DateEntry {
	out := make([]calendar.DateEntry, 0, len(r.Dates))
	for _, d := range r.Dates {
		out = append(out, calendar.DateEntry{Start: d.Start.Time, End: d.End.Time, Location: d.Location})
	}
	return out
}

type addTourDateRequest struct {
	Date     flexTime `json:"date"`
	Location string   `json:"location"`
}

type jobRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Location         string   `json:"location"`
	Color            *string  `json:"color" validate:"omitempty,hexcolor"`
	Start            flexTime `json:"start_time"`
	End              flexTime `json:"end_time"`
	Departments      []string `json:"departments" validate:"dive,oneof=sound lights video"`
	ActingDepartment string   `json:"acting_department" validate:"omitempty,oneof=sound lights video"`
}

type assignRequest struct {
	TechnicianID string `json:"technician_id" validate:"omitempty,uuid"`
	Department   string `json:"department"`
	Role         string `json:"role"`
}

type technicianRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	DNI        string `json:"dni"`
	Residencia string `json:"residencia"`
	Department string `json:"department"`
}

type setRoleRequest struct {
	Role string `json:"role"`
}
