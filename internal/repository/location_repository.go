package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/crew-platform/internal/model"
)

type LocationRepository interface {
	// Добавить площадки; уже существующие молча пропускаются.
	Ensure(ctx context.Context, names ...string) error
	// Площадки по префиксу для автодополнения.
	List(ctx context.Context, prefix string, limit int) ([]model.Location, error)
}

type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Ensure(ctx context.Context, names ...string) error {
	rows := make([]model.Location, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		rows = append(rows, model.Location{Name: n})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Спецсимволы LIKE в пользовательском префиксе ищутся буквально.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GormLocationRepository) List(ctx context.Context, prefix string, limit int) ([]model.Location, error) {
	q := r.db.WithContext(ctx).Model(&model.Location{})
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likeEscaper.Replace(strings.ToLower(prefix))+"%")
	}
	if limit <= 0 {
		limit = 20
	}

	var locs []model.Location
	if err := q.Order("name ASC").Limit(limit).Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}
