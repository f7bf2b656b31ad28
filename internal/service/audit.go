package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

// Auditor пишет журнал изменений. Ошибки записи только логируются.
type Auditor struct {
	events repository.EventRepository
	log    zerolog.Logger
}

func NewAuditor(events repository.EventRepository, log zerolog.Logger) *Auditor {
	return &Auditor{events: events, log: log}
}

// Record сохраняет событие от имени пользователя текущей сессии.
func (a *Auditor) Record(ctx context.Context, typ model.EventType, jobID *uuid.UUID, details map[string]any) {
	if a == nil {
		return
	}

	e := &model.Event{EventType: typ, JobID: jobID}
	if s := auth.FromContext(ctx); s.Authenticated() {
		id := s.Profile.ID
		e.ProfileID = &id
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err == nil {
			e.Details = datatypes.JSON(raw)
		}
	}

	if err := a.events.Create(ctx, e); err != nil {
		a.log.Warn().Err(err).Str("event", string(typ)).Msg("audit event not stored")
	}
}

func invalidate(ctx context.Context, store cache.Store, log zerolog.Logger, tables ...string) {
	if store == nil {
		return
	}
	if err := store.Invalidate(ctx, tables...); err != nil {
		log.Warn().Err(err).Strs("tables", tables).Msg("cache invalidation failed")
	}
}

func idPtr(id uuid.UUID) *uuid.UUID { return &id }
