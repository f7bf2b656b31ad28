package calendar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ValidationError — ошибка входных данных. Возникает до любого обращения к БД.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func newValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

// Ошибки валидации.
var (
	ErrMissingTitle        = newValidationError("missing title")
	ErrIncompleteDateRange = newValidationError("incomplete date range")
	ErrInvalidRange        = newValidationError("invalid range")
	ErrNoValidDates        = newValidationError("no valid dates")
	ErrMissingDate         = newValidationError("missing date")
	ErrIncompleteSelection = newValidationError("incomplete selection")
	ErrInvalidRole         = newValidationError("invalid role")
	ErrInvalidDepartment   = newValidationError("invalid department")
	ErrDepartmentMismatch  = newValidationError("department mismatch")
	ErrMissingName         = newValidationError("missing technician name")
	ErrMissingEmail        = newValidationError("missing email")
	ErrNoDepartments       = newValidationError("no departments")
	ErrNotATour            = newValidationError("job is not a tour")
	ErrInvalidProfileRole  = newValidationError("invalid profile role")
	ErrMissingCredentials  = newValidationError("missing credentials")
	ErrInvalidFilter       = newValidationError("invalid filter")
)

// IsValidation сообщает, является ли err ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PartialError — многошаговая операция упала после того, как часть шагов
// уже записана. Отката нет: Completed перечисляет то, что осталось в БД.
type PartialError struct {
	Op        string
	Step      string
	Completed []uuid.UUID
	Err       error
}

func (e *PartialError) Error() string {
	ids := make([]string, 0, len(e.Completed))
	for _, id := range e.Completed {
		ids = append(ids, id.String())
	}
	return fmt.Sprintf("%s: step %q failed after [%s]: %v", e.Op, e.Step, strings.Join(ids, ", "), e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }

// IsPartial сообщает, что операция применена частично.
func IsPartial(err error) bool {
	var pe *PartialError
	return errors.As(err, &pe)
}
