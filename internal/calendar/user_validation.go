package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Leganyst/crew-platform/internal/model"
)

// Ошибки проверки пользователя сессии.
var (
	ErrInvalidProfileID = errors.New("invalid profile id")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrUnknownRole      = errors.New("unknown profile role")
)

// Источник данных о профилях.
// В реале это обёртка над БД, в тестах — мок.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}

// Результат успешной проверки.
type ValidatedProfile struct {
	ID   uuid.UUID
	Name string
	Role model.ProfileRole
}

// ValidateProfile:
//   - проверяет идентификатор;
//   - достаёт профиль из хранилища;
//   - проверяет, что роль из известного набора;
//   - возвращает нормализованный результат или ошибку.
func ValidateProfile(ctx context.Context, store ProfileStore, id uuid.UUID) (*ValidatedProfile, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidProfileID
	}

	p, err := store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}

	if !p.Role.Valid() {
		return nil, ErrUnknownRole
	}

	return &ValidatedProfile{ID: p.ID, Name: p.Name, Role: p.Role}, nil
}

// ParseProfileRole разбирает роль профиля.
func ParseProfileRole(s string) (model.ProfileRole, error) {
	r := model.ProfileRole(s)
	if !r.Valid() {
		return "", ErrInvalidProfileRole
	}
	return r, nil
}
