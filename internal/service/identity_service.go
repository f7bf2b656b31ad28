package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IdentityService реализует регистрацию, вход и управление ролями профилей.
type IdentityService struct {
	profiles repository.ProfileRepository
	issuer   *auth.Issuer
	cache    cache.Store
	audit    *Auditor
	log      zerolog.Logger
}

func NewIdentityService(
	profiles repository.ProfileRepository,
	issuer *auth.Issuer,
	store cache.Store,
	audit *Auditor,
	log zerolog.Logger,
) *IdentityService {
	return &IdentityService{profiles: profiles, issuer: issuer, cache: store, audit: audit, log: log}
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUp создаёт профиль с ролью technician.
func (s *IdentityService) SignUp(ctx context.Context, in SignUpInput) (*model.Profile, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, calendar.ErrMissingCredentials
	}

	if _, err := s.profiles.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	p := &model.Profile{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.ProfileRoleTechnician,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableProfiles)
	return p, nil
}

type SignInResult struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	Profile   *model.Profile `json:"profile"`
}

// SignIn проверяет пароль и выдаёт токен.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, calendar.ErrMissingCredentials
	}

	p, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if !auth.CheckPassword(p.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.issuer.Issue(p.ID, p.Role)
	if err != nil {
		return nil, err
	}
	return &SignInResult{Token: token, ExpiresAt: exp, Profile: p}, nil
}

// GetRole возвращает роль профиля; роль сравнивается как строка.
func (s *IdentityService) GetRole(ctx context.Context, id uuid.UUID) (model.ProfileRole, error) {
	role, err := s.profiles.GetRole(ctx, id)
	if err != nil {
		return "", fmt.Errorf("get role %s: %w", id, err)
	}
	return role, nil
}

// SetRole назначает роль профилю.
func (s *IdentityService) SetRole(ctx context.Context, id uuid.UUID, role string) (*model.Profile, error) {
	r, err := calendar.ParseProfileRole(role)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.SetRole(ctx, id, r); err != nil {
		return nil, fmt.Errorf("set role %s: %w", id, err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableProfiles)
	s.audit.Record(ctx, model.EventTypeRoleChanged, nil, map[string]any{
		"profile_id": id.String(),
		"role":       string(r),
	})
	return s.GetProfile(ctx, id)
}

func (s *IdentityService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile %s: %w", id, err)
	}
	return p, nil
}

func (s *IdentityService) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	return cache.Remember(ctx, s.cache, cache.TableProfiles, cache.Key("all"), func(ctx context.Context) ([]model.Profile, error) {
		list, err := s.profiles.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list profiles: %w", err)
		}
		return list, nil
	})
}

// Profiles отдаёт хранилище профилей для разбора сессий.
func (s *IdentityService) Profiles() calendar.ProfileStore {
	return s.profiles
}

func (s *IdentityService) Issuer() *auth.Issuer {
	return s.issuer
}
