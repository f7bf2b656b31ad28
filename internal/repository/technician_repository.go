package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/model"
)

type TechnicianRepository interface {
	Create(ctx context.Context, t *model.Technician) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Technician, error)
	// Список техников; пустой цех — все.
	List(ctx context.Context, dept model.Department) ([]model.Technician, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GormTechnicianRepository struct {
	db *gorm.DB
}

func NewGormTechnicianRepository(db *gorm.DB) *GormTechnicianRepository {
	return &GormTechnicianRepository{db: db}
}

func (r *GormTechnicianRepository) Create(ctx context.Context, t *model.Technician) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *GormTechnicianRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	var t model.Technician
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *GormTechnicianRepository) List(ctx context.Context, dept model.Department) ([]model.Technician, error) {
	q := r.db.WithContext(ctx).Model(&model.Technician{})
	if dept != "" {
		q = q.Where("department = ?", dept)
	}

	var techs []model.Technician
	if err := q.Order("name ASC").Find(&techs).Error; err != nil {
		return nil, err
	}
	return techs, nil
}

func (r *GormTechnicianRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Technician{}).
		Where("id = ?", id).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTechnicianRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&model.Technician{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
