package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/notify"
	"github.com/Leganyst/crew-platform/internal/repository"
)

// NoticeDispatcher отправляет уведомление в фоне.
type NoticeDispatcher interface {
	Dispatch(n notify.Notice)
}

// FilterKey — по какому полю назначение относится к цеху.
type FilterKey string

const (
	// По цеху самого техника.
	FilterByTechnicianDepartment FilterKey = "technician_department"
	// По заполненной колонке роли.
	FilterByRoleColumn FilterKey = "role_column"
)

func ParseFilterKey(s string) (FilterKey, error) {
	switch FilterKey(s) {
	case "", FilterByTechnicianDepartment:
		return FilterByTechnicianDepartment, nil
	case FilterByRoleColumn:
		return FilterByRoleColumn, nil
	default:
		return "", calendar.ErrInvalidFilter
	}
}

type AssignmentFilter struct {
	// Пустой цех — все назначения.
	Department model.Department
	By         FilterKey
}

// AssignmentView — назначение вместе с данными техника для показа.
type AssignmentView struct {
	ID           uuid.UUID              `json:"id"`
	JobID        uuid.UUID              `json:"job_id"`
	TechnicianID uuid.UUID              `json:"technician_id"`
	Status       model.AssignmentStatus `json:"status"`
	Department   model.Department       `json:"department,omitempty"`
	Role         string                 `json:"role,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`

	TechnicianName       string           `json:"technician_name,omitempty"`
	TechnicianEmail      string           `json:"technician_email,omitempty"`
	TechnicianDepartment model.Department `json:"technician_department,omitempty"`
}

type AssignmentService struct {
	assignments repository.AssignmentRepository
	jobs        repository.JobRepository
	techs       repository.TechnicianRepository
	notices     NoticeDispatcher
	cache       cache.Store
	audit       *Auditor
	log         zerolog.Logger
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	jobs repository.JobRepository,
	techs repository.TechnicianRepository,
	notices NoticeDispatcher,
	store cache.Store,
	audit *Auditor,
	log zerolog.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		jobs:        jobs,
		techs:       techs,
		notices:     notices,
		cache:       store,
		audit:       audit,
		log:         log,
	}
}

type AssignInput struct {
	JobID        uuid.UUID
	TechnicianID uuid.UUID
	Department   model.Department
	Role         string
}

// Assign назначает техника на работу с ролью своего цеха.
func (s *AssignmentService) Assign(ctx context.Context, in AssignInput) (*model.Assignment, error) {
	if in.JobID == uuid.Nil || in.TechnicianID == uuid.Nil || strings.TrimSpace(in.Role) == "" {
		return nil, calendar.ErrIncompleteSelection
	}
	role, err := calendar.NewDepartmentRole(in.Department, in.Role)
	if err != nil {
		return nil, err
	}

	tech, err := s.techs.GetByID(ctx, in.TechnicianID)
	if err != nil {
		return nil, fmt.Errorf("get technician %s: %w", in.TechnicianID, err)
	}
	if tech.Department != role.Department() {
		return nil, calendar.ErrDepartmentMismatch
	}
	job, err := s.jobs.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", in.JobID, err)
	}

	a := &model.Assignment{
		JobID:        job.ID,
		TechnicianID: tech.ID,
		Status:       model.AssignmentStatusPending,
	}
	role.Apply(a)

	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableAssignments)
	s.audit.Record(ctx, model.EventTypeAssignmentCreated, idPtr(job.ID), map[string]any{
		"technician_id": tech.ID.String(),
		"department":    string(role.Department()),
		"role":          role.Role(),
	})
	s.warnDoubleBooking(ctx, job, tech.ID)

	if s.notices != nil {
		s.notices.Dispatch(notify.Notice{JobID: job.ID, TechnicianID: tech.ID, Role: role.Role()})
	}
	return a, nil
}

// warnDoubleBooking пишет в лог, если у техника есть пересекающиеся работы.
// Назначение при этом не запрещается.
func (s *AssignmentService) warnDoubleBooking(ctx context.Context, job *model.Job, techID uuid.UUID) {
	existing, err := s.assignments.ListByTechnician(ctx, techID)
	if err != nil {
		s.log.Debug().Err(err).Msg("double booking check skipped")
		return
	}

	ids := make([]uuid.UUID, 0, len(existing))
	for _, a := range existing {
		if a.JobID != job.ID {
			ids = append(ids, a.JobID)
		}
	}
	others, err := s.jobs.ListByIDs(ctx, ids)
	if err != nil {
		s.log.Debug().Err(err).Msg("double booking check skipped")
		return
	}

	ranges := make([]calendar.TimeRange, 0, len(others))
	for _, j := range others {
		ranges = append(ranges, calendar.TimeRange{Start: j.StartTime, End: j.EndTime})
	}
	if ok, conflicts := calendar.HasOverlap(calendar.TimeRange{Start: job.StartTime, End: job.EndTime}, ranges); ok {
		s.log.Warn().
			Str("technician_id", techID.String()).
			Str("job_id", job.ID.String()).
			Int("conflicts", len(conflicts)).
			Msg("technician already booked in this period")
	}
}

// ListForJob возвращает назначения на работу, отфильтрованные по цеху.
func (s *AssignmentService) ListForJob(ctx context.Context, jobID uuid.UUID, f AssignmentFilter) ([]AssignmentView, error) {
	if f.By == "" {
		f.By = FilterByTechnicianDepartment
	}

	key := cache.Key("job", jobID, f.Department, f.By)
	return cache.Remember(ctx, s.cache, cache.TableAssignments, key, func(ctx context.Context) ([]AssignmentView, error) {
		list, err := s.assignments.ListByJob(ctx, jobID)
		if err != nil {
			return nil, fmt.Errorf("list assignments: %w", err)
		}

		out := make([]AssignmentView, 0, len(list))
		for i := range list {
			v := viewOf(&list[i])
			if f.Department != "" && !matches(v, f) {
				continue
			}
			out = append(out, v)
		}
		return out, nil
	})
}

func matches(v AssignmentView, f AssignmentFilter) bool {
	switch f.By {
	case FilterByRoleColumn:
		return v.Department == f.Department
	default:
		return v.TechnicianDepartment == f.Department
	}
}

func viewOf(a *model.Assignment) AssignmentView {
	v := AssignmentView{
		ID:           a.ID,
		JobID:        a.JobID,
		TechnicianID: a.TechnicianID,
		Status:       a.Status,
		CreatedAt:    a.CreatedAt,
	}
	if r, ok := calendar.RoleOf(a); ok {
		v.Department = r.Department()
		v.Role = r.Role()
	}
	if a.Technician != nil {
		v.TechnicianName = a.Technician.Name
		v.TechnicianEmail = a.Technician.Email
		v.TechnicianDepartment = a.Technician.Department
	}
	return v
}

func (s *AssignmentService) Unassign(ctx context.Context, id uuid.UUID) error {
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get assignment %s: %w", id, err)
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete assignment %s: %w", id, err)
	}

	invalidate(ctx, s.cache, s.log, cache.TableAssignments)
	s.audit.Record(ctx, model.EventTypeAssignmentDeleted, idPtr(a.JobID), map[string]any{
		"technician_id": a.TechnicianID.String(),
	})
	return nil
}
