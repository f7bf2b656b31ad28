// Package cache хранит результаты выборок, сгруппированные по имени таблицы.
// Любая запись в таблицу сбрасывает все выборки этой таблицы.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Имена таблиц, по которым сбрасывается кэш.
const (
	TableJobs        = "jobs"
	TableTechnicians = "technicians"
	TableAssignments = "job_assignments"
	TableLocations   = "locations"
	TableProfiles    = "profiles"
)

// Store — хранилище кэша выборок.
// Каждая инвалидация сдвигает поколение таблицы. Записи прошлых поколений
// не читаются, поэтому выборка, начатая до записи в таблицу, не попадёт в кэш.
type Store interface {
	// Generation — текущее поколение таблицы.
	Generation(ctx context.Context, table string) (uint64, error)
	// Get возвращает значение поколения gen; ok=false, если ключа нет.
	Get(ctx context.Context, table string, gen uint64, key string) (data []byte, ok bool, err error)
	// Set сохраняет значение поколения gen. Если таблицу уже сбросили, запись не видна.
	Set(ctx context.Context, table string, gen uint64, key string, data []byte) error
	// Invalidate сбрасывает все ключи перечисленных таблиц.
	Invalidate(ctx context.Context, tables ...string) error
}

// Remember отдаёт значение из кэша или вызывает load и сохраняет результат.
// Ошибки кэша не мешают выборке: в худшем случае идём в БД.
func Remember[T any](ctx context.Context, s Store, table, key string, load func(context.Context) (T, error)) (T, error) {
	if s == nil {
		return load(ctx)
	}
	// Поколение читается до выборки: сброс во время load отбросит её результат.
	gen, err := s.Generation(ctx, table)
	if err != nil {
		return load(ctx)
	}

	if data, ok, err := s.Get(ctx, table, gen, key); err == nil && ok {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	if data, err := json.Marshal(v); err == nil {
		_ = s.Set(ctx, table, gen, key, data)
	}
	return v, nil
}

// Key собирает ключ выборки из её параметров.
func Key(parts ...any) string {
	b, err := json.Marshal(parts)
	if err != nil {
		return fmt.Sprint(parts...)
	}
	return string(b)
}
