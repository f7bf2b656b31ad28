package calendar

import (
	"strings"

	"github.com/Leganyst/crew-platform/internal/model"
)

// ParseDepartment разбирает название цеха без учёта регистра.
func ParseDepartment(s string) (model.Department, error) {
	d := model.Department(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalidDepartment
	}
	return d, nil
}

// NormalizeDepartments убирает дубликаты, проверяет значения и
// гарантирует, что цех, от имени которого действует пользователь, входит в набор.
// acting может быть пустым.
func NormalizeDepartments(depts []model.Department, acting model.Department) ([]model.Department, error) {
	seen := make(map[model.Department]bool, len(depts)+1)
	out := make([]model.Department, 0, len(depts)+1)

	add := func(d model.Department) error {
		if !d.Valid() {
			return ErrInvalidDepartment
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
		return nil
	}

	for _, d := range depts {
		if err := add(d); err != nil {
			return nil, err
		}
	}
	if acting != "" {
		if err := add(acting); err != nil {
			return nil, err
		}
	}

	if len(out) == 0 {
		return nil, ErrNoDepartments
	}
	return out, nil
}
