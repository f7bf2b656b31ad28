package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/model"
)

type AssignmentRepository interface {
	Create(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error)
	// Назначения на работу вместе с техниками.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Assignment, error)
	// Назначения на несколько работ сразу.
	ListByJobs(ctx context.Context, jobIDs []uuid.UUID) ([]model.Assignment, error)
	// Назначения техника вместе с работами — для поиска накладок.
	ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]model.Assignment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Удалить все назначения техника.
	DeleteByTechnician(ctx context.Context, technicianID uuid.UUID) (int64, error)
	// Удалить назначения на перечисленные работы.
	DeleteByJobs(ctx context.Context, jobIDs []uuid.UUID) (int64, error)
}

type GormAssignmentRepository struct {
	db *gorm.DB
}

func NewGormAssignmentRepository(db *gorm.DB) *GormAssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Create(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).Omit("Technician").Create(a).Error
}

func (r *GormAssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	var a model.Assignment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAssignmentRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Technician").
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormAssignmentRepository) ListByJobs(ctx context.Context, jobIDs []uuid.UUID) ([]model.Assignment, error) {
	if len(jobIDs) == 0 {
		return []model.Assignment{}, nil
	}
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Where("job_id IN ?", jobIDs).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormAssignmentRepository) ListByTechnician(ctx context.Context, technicianID uuid.UUID) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Where("technician_id = ?", technicianID).
		Order("created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&model.Assignment{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAssignmentRepository) DeleteByTechnician(ctx context.Context, technicianID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("technician_id = ?", technicianID).Delete(&model.Assignment{})
	return tx.RowsAffected, tx.Error
}

func (r *GormAssignmentRepository) DeleteByJobs(ctx context.Context, jobIDs []uuid.UUID) (int64, error) {
	if len(jobIDs) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Where("job_id IN ?", jobIDs).Delete(&model.Assignment{})
	return tx.RowsAffected, tx.Error
}
