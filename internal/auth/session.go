package auth

import (
	"context"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
)

type SessionState int

const (
	StatePending SessionState = iota
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "pending"
	}
}

// Session — состояние аутентификации одного запроса.
// Создаётся в состоянии pending и переходит в authenticated или anonymous.
type Session struct {
	State   SessionState
	Profile *calendar.ValidatedProfile
}

func NewSession() *Session {
	return &Session{State: StatePending}
}

// Resolve разбирает bearer-токен и загружает профиль.
// Пустой токен — анонимная сессия без ошибки.
// Любая ошибка тоже оставляет сессию анонимной.
func (s *Session) Resolve(ctx context.Context, issuer *Issuer, store calendar.ProfileStore, raw string) error {
	s.State = StateAnonymous
	s.Profile = nil

	if raw == "" {
		return nil
	}

	claims, err := issuer.Parse(raw)
	if err != nil {
		return err
	}
	id, err := claims.ProfileUUID()
	if err != nil {
		return err
	}

	p, err := calendar.ValidateProfile(ctx, store, id)
	if err != nil {
		return err
	}

	s.State = StateAuthenticated
	s.Profile = p
	return nil
}

// SignOut сбрасывает сессию. Токены не отзываются.
func (s *Session) SignOut() {
	s.State = StateAnonymous
	s.Profile = nil
}

func (s *Session) Authenticated() bool {
	return s != nil && s.State == StateAuthenticated && s.Profile != nil
}

// HasRole — роль профиля входит в roles.
func (s *Session) HasRole(roles ...model.ProfileRole) bool {
	if !s.Authenticated() {
		return false
	}
	for _, r := range roles {
		if s.Profile.Role == r {
			return true
		}
	}
	return false
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext возвращает сессию запроса; без неё — анонимную.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok && s != nil {
		return s
	}
	return &Session{State: StateAnonymous}
}
