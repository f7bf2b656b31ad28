package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/model"
)

// JobFilter — условия выборки для календаря. Нулевые поля не фильтруют.
type JobFilter struct {
	From, To   time.Time
	Department model.Department
	JobType    model.JobType
	// ExcludeTours прячет родительские записи туров (в календаре видны только даты).
	ExcludeTours bool
	Limit        int
	Offset       int
}

type JobRepository interface {
	// Создать запись.
	Create(ctx context.Context, job *model.Job) error
	// Создать несколько записей одним запросом.
	CreateBatch(ctx context.Context, jobs []model.Job) error
	// Найти по ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	// Выборка по интервалу/цеху с пагинацией.
	List(ctx context.Context, f JobFilter) ([]model.Job, int64, error)
	// Найти несколько записей по ID.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Job, error)
	// Даты тура по порядку.
	ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Job, error)
	// Обновить поля записи.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) error
	// Удалить запись.
	Delete(ctx context.Context, id uuid.UUID) error
	// Удалить все даты тура.
	DeleteByTour(ctx context.Context, tourID uuid.UUID) (int64, error)
}

type GormJobRepository struct {
	db *gorm.DB
}

func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func (r *GormJobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *GormJobRepository) CreateBatch(ctx context.Context, jobs []model.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&jobs).Error
}

func (r *GormJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var j model.Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *GormJobRepository) List(ctx context.Context, f JobFilter) ([]model.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})

	// Работа попадает в окно, если пересекается с ним.
	if !f.From.IsZero() {
		q = q.Where("end_time >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("start_time <= ?", f.To)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.ExcludeTours {
		q = q.Where("job_type <> ?", model.JobTypeTour)
	}
	if f.Department != "" {
		// departments хранится JSON-массивом; текстовое представление одинаково ищется в sqlite и postgres.
		q = q.Where("CAST(departments AS TEXT) LIKE ?", `%"`+string(f.Department)+`"%`)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}

	var jobs []model.Job
	if err := q.Order("start_time ASC").Order("id ASC").Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *GormJobRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Job, error) {
	if len(ids) == 0 {
		return []model.Job{}, nil
	}
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *GormJobRepository) ListByTour(ctx context.Context, tourID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("start_time ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *GormJobRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	tx := r.db.WithContext(ctx).
		Model(&model.Job{}).
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

func (r *GormJobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Delete(&model.Job{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormJobRepository) DeleteByTour(ctx context.Context, tourID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).Where("tour_id = ?", tourID).Delete(&model.Job{})
	return tx.RowsAffected, tx.Error
}
