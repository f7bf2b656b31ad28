package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

type TechnicianService struct {
	techs       repository.TechnicianRepository
	assignments repository.AssignmentRepository
	cache       cache.Store
	audit       *Auditor
	log         zerolog.Logger
}

func NewTechnicianService(
	techs repository.TechnicianRepository,
	assignments repository.AssignmentRepository,
	store cache.Store,
	audit *Auditor,
	log zerolog.Logger,
) *TechnicianService {
	return &TechnicianService{techs: techs, assignments: assignments, cache: store, audit: audit, log: log}
}

type TechnicianInput struct {
	Name       string
	Email      string
	Phone      string
	DNI        string
	Residencia string
	Department model.Department
}

func (in TechnicianInput) validate() (TechnicianInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" {
		return in, calendar.ErrMissingName
	}
	if in.Email == "" {
		return in, calendar.ErrMissingEmail
	}
	if !in.Department.Valid() {
		return in, calendar.ErrInvalidDepartment
	}
	return in, nil
}

func (s *TechnicianService) Create(ctx context.Context, in TechnicianInput) (*model.Technician, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	t := &model.Technician{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      calendar.OptionalString(in.Phone),
		DNI:        calendar.OptionalString(in.DNI),
		Residencia: calendar.OptionalString(in.Residencia),
		Department: in.Department,
	}
	if err := s.techs.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create technician: %w", err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableTechnicians)
	return t, nil
}

// Update заменяет все поля техника. Назначения показывают данные техника,
// поэтому сбрасывается и их кэш.
func (s *TechnicianService) Update(ctx context.Context, id uuid.UUID, in TechnicianInput) (*model.Technician, error) {
	in, err := in.validate()
	if err != nil {
		return nil, err
	}

	err = s.techs.Update(ctx, id, map[string]any{
		"name":       in.Name,
		"email":      in.Email,
		"phone":      calendar.OptionalString(in.Phone),
		"dni":        calendar.OptionalString(in.DNI),
		"residencia": calendar.OptionalString(in.Residencia),
		"department": in.Department,
	})
	if err != nil {
		return nil, fmt.Errorf("update technician %s: %w", id, err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableTechnicians, cache.TableAssignments)
	return s.Get(ctx, id)
}

func (s *TechnicianService) Get(ctx context.Context, id uuid.UUID) (*model.Technician, error) {
	t, err := s.techs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get technician %s: %w", id, err)
	}
	return t, nil
}

// List — техники цеха; пустой цех — все.
func (s *TechnicianService) List(ctx context.Context, dept model.Department) ([]model.Technician, error) {
	if dept != "" && !dept.Valid() {
		return nil, calendar.ErrInvalidDepartment
	}
	return cache.Remember(ctx, s.cache, cache.TableTechnicians, cache.Key("list", dept), func(ctx context.Context) ([]model.Technician, error) {
		list, err := s.techs.List(ctx, dept)
		if err != nil {
			return nil, fmt.Errorf("list technicians: %w", err)
		}
		return list, nil
	})
}

// Delete сначала удаляет назначения техника, затем его самого.
// Если назначения удалить не удалось, техник остаётся.
func (s *TechnicianService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.techs.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get technician %s: %w", id, err)
	}

	existing, err := s.assignments.ListByTechnician(ctx, id)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}
	if _, err := s.assignments.DeleteByTechnician(ctx, id); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	if err := s.techs.Delete(ctx, id); err != nil {
		invalidate(ctx, s.cache, s.log, cache.TableAssignments)
		removed := make([]uuid.UUID, 0, len(existing))
		for _, a := range existing {
			removed = append(removed, a.ID)
		}
		return &calendar.PartialError{Op: "delete technician", Step: "technician", Completed: removed, Err: err}
	}

	invalidate(ctx, s.cache, s.log, cache.TableTechnicians, cache.TableAssignments)
	s.audit.Record(ctx, model.EventTypeTechnicianDeleted, nil, map[string]any{
		"technician_id": id.String(),
		"assignments":   len(existing),
	})
	return nil
}
