package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/model"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	SetRole(ctx context.Context, id uuid.UUID, role model.ProfileRole) error
	GetRole(ctx context.Context, id uuid.UUID) (model.ProfileRole, error)
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	p.Email = normalizeEmail(p.Email)
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	var list []model.Profile
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormProfileRepository) SetRole(ctx context.Context, id uuid.UUID, role model.ProfileRole) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("role", role)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProfileRepository) GetRole(ctx context.Context, id uuid.UUID) (model.ProfileRole, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Select("role").First(&p, "id = ?", id).Error; err != nil {
		return "", err
	}
	return p.Role, nil
}
