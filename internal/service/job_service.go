package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/Leganyst/crew-platform/internal/cache"
	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

// JobService — создание, правка и удаление работ и туров.
// Шаги выполняются последовательно без транзакций; частичный сбой
// возвращается как *calendar.PartialError.
type JobService struct {
	jobs        repository.JobRepository
	locations   repository.LocationRepository
	assignments repository.AssignmentRepository
	cache       cache.Store
	audit       *Auditor
	log         zerolog.Logger
}

func NewJobService(
	jobs repository.JobRepository,
	locations repository.LocationRepository,
	assignments repository.AssignmentRepository,
	store cache.Store,
	audit *Auditor,
	log zerolog.Logger,
) *JobService {
	return &JobService{
		jobs:        jobs,
		locations:   locations,
		assignments: assignments,
		cache:       store,
		audit:       audit,
		log:         log,
	}
}

type CreateTourInput struct {
	Title       string
	Description string
	Color       string
	Departments []model.Department
	// Цех, от имени которого действует пользователь.
	ActingDepartment model.Department
	Dates            []calendar.DateEntry
}

type TourResult struct {
	Tour  *model.Job  `json:"tour"`
	Dates []model.Job `json:"dates"`
}

// CreateTour создаёт тур и по дочерней записи на каждую дату.
func (s *JobService) CreateTour(ctx context.Context, in CreateTourInput) (*TourResult, error) {
	title, dates, err := calendar.ValidateTour(in.Title, in.Dates)
	if err != nil {
		return nil, err
	}
	depts, err := calendar.NormalizeDepartments(in.Departments, in.ActingDepartment)
	if err != nil {
		return nil, err
	}

	span := calendar.TourSpan(dates)
	tour := &model.Job{
		Title:       title,
		Description: calendar.OptionalString(in.Description),
		StartTime:   span.Start,
		EndTime:     span.End,
		Location:    calendar.OptionalString(dates[0].Location),
		JobType:     model.JobTypeTour,
		Color:       calendar.OptionalString(in.Color),
		Departments: datatypes.JSONSlice[model.Department](depts),
	}
	if err := s.jobs.Create(ctx, tour); err != nil {
		return nil, fmt.Errorf("create tour: %w", err)
	}
	completed := []uuid.UUID{tour.ID}

	if err := s.locations.Ensure(ctx, calendar.DistinctLocations(dates)...); err != nil {
		invalidate(ctx, s.cache, s.log, cache.TableJobs)
		return nil, &calendar.PartialError{Op: "create tour", Step: "locations", Completed: completed, Err: err}
	}

	children := make([]model.Job, 0, len(dates))
	for _, d := range dates {
		children = append(children, tourDate(tour, d.Start, d.End, d.Location))
	}
	if err := s.jobs.CreateBatch(ctx, children); err != nil {
		invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableLocations)
		return nil, &calendar.PartialError{Op: "create tour", Step: "tour dates", Completed: completed, Err: err}
	}

	invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableLocations)
	s.audit.Record(ctx, model.EventTypeTourCreated, idPtr(tour.ID), map[string]any{
		"title": tour.Title,
		"dates": len(children),
	})

	s.log.Info().
		Str("tour_id", tour.ID.String()).
		Int("dates", len(children)).
		Msg("tour created")

	return &TourResult{Tour: tour, Dates: children}, nil
}

// tourDate собирает дочернюю запись: наследует описание, цвет и цеха тура.
func tourDate(tour *model.Job, start, end time.Time, location string) model.Job {
	tourID := tour.ID
	return model.Job{
		Title:       calendar.TourDateTitle(tour.Title),
		Description: tour.Description,
		StartTime:   start,
		EndTime:     end,
		Location:    calendar.OptionalString(location),
		JobType:     model.JobTypeSingle,
		TourID:      &tourID,
		Color:       tour.Color,
		Departments: tour.Departments,
	}
}

type AddTourDateInput struct {
	Date     time.Time
	Location string
}

// AddTourDate добавляет к туру дату на весь день.
func (s *JobService) AddTourDate(ctx context.Context, tourID uuid.UUID, in AddTourDateInput) (*model.Job, error) {
	if in.Date.IsZero() {
		return nil, calendar.ErrMissingDate
	}

	tour, err := s.jobs.GetByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	if !tour.IsTour() {
		return nil, calendar.ErrNotATour
	}

	day := calendar.DayRange(in.Date)
	child := tourDate(tour, day.Start, day.End, in.Location)
	if err := s.jobs.Create(ctx, &child); err != nil {
		return nil, fmt.Errorf("create tour date: %w", err)
	}

	if loc := strings.TrimSpace(in.Location); loc != "" {
		if err := s.locations.Ensure(ctx, loc); err != nil {
			invalidate(ctx, s.cache, s.log, cache.TableJobs)
			return nil, &calendar.PartialError{Op: "add tour date", Step: "locations", Completed: []uuid.UUID{child.ID}, Err: err}
		}
	}

	invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableLocations)
	s.audit.Record(ctx, model.EventTypeJobCreated, idPtr(child.ID), map[string]any{"tour_id": tour.ID.String()})
	return &child, nil
}

type CreateJobInput struct {
	Title            string
	Description      string
	Location         string
	Color            string
	Start, End       time.Time
	Departments      []model.Department
	ActingDepartment model.Department
}

// CreateJob создаёт одиночное событие.
func (s *JobService) CreateJob(ctx context.Context, in CreateJobInput) (*model.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, calendar.ErrMissingTitle
	}
	tr, err := calendar.NewTimeRange(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	depts, err := calendar.NormalizeDepartments(in.Departments, in.ActingDepartment)
	if err != nil {
		return nil, err
	}

	job := &model.Job{
		Title:       title,
		Description: calendar.OptionalString(in.Description),
		StartTime:   tr.Start,
		EndTime:     tr.End,
		Location:    calendar.OptionalString(in.Location),
		JobType:     model.JobTypeSingle,
		Color:       calendar.OptionalString(in.Color),
		Departments: datatypes.JSONSlice[model.Department](depts),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	if job.Location != nil {
		if err := s.locations.Ensure(ctx, *job.Location); err != nil {
			invalidate(ctx, s.cache, s.log, cache.TableJobs)
			return nil, &calendar.PartialError{Op: "create job", Step: "locations", Completed: []uuid.UUID{job.ID}, Err: err}
		}
	}

	invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableLocations)
	s.audit.Record(ctx, model.EventTypeJobCreated, idPtr(job.ID), map[string]any{"title": job.Title})
	return job, nil
}

type UpdateJobInput struct {
	Title       string
	Description string
	Location    string
	Start, End  time.Time
	// Пустой список оставляет цеха без изменений.
	Departments []model.Department
	// nil — цвет не меняется.
	Color *string
}

// UpdateJob обновляет одну запись. Даты тура при правке тура не трогаются.
func (s *JobService) UpdateJob(ctx context.Context, id uuid.UUID, in UpdateJobInput) (*model.Job, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, calendar.ErrMissingTitle
	}
	tr, err := calendar.NewTimeRange(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"title":       title,
		"description": calendar.OptionalString(in.Description),
		"start_time":  tr.Start,
		"end_time":    tr.End,
		"location":    calendar.OptionalString(in.Location),
	}
	if len(in.Departments) > 0 {
		depts, err := calendar.NormalizeDepartments(in.Departments, "")
		if err != nil {
			return nil, err
		}
		fields["departments"] = datatypes.JSONSlice[model.Department](depts)
	}
	if in.Color != nil {
		fields["color"] = calendar.OptionalString(*in.Color)
	}

	if err := s.jobs.Update(ctx, id, fields); err != nil {
		return nil, fmt.Errorf("update job %s: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log, cache.TableJobs)
	s.audit.Record(ctx, model.EventTypeJobUpdated, idPtr(id), nil)

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload job %s: %w", id, err)
	}
	return job, nil
}

// DeleteJob удаляет работу. Одиночная работа или дата тура удаляется одной
// строкой, её назначения не трогаются. Тур удаляется по шагам: назначения
// тура и его дат, даты, сам тур. Сбой на любом шаге прерывает удаление.
func (s *JobService) DeleteJob(ctx context.Context, id uuid.UUID) error {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get job %s: %w", id, err)
	}

	if job.IsTour() {
		return s.deleteTour(ctx, job)
	}

	if err := s.jobs.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableAssignments)
	s.audit.Record(ctx, model.EventTypeJobDeleted, idPtr(id), map[string]any{
		"title": job.Title,
	})
	return nil
}

// deleteTour: Completed в PartialError перечисляет удалённые назначения,
// а при сбое на последнем шаге ещё и удалённые даты.
func (s *JobService) deleteTour(ctx context.Context, tour *model.Job) error {
	dates, err := s.jobs.ListByTour(ctx, tour.ID)
	if err != nil {
		return fmt.Errorf("list tour dates: %w", err)
	}
	ids := []uuid.UUID{tour.ID}
	dateIDs := make([]uuid.UUID, 0, len(dates))
	for _, d := range dates {
		dateIDs = append(dateIDs, d.ID)
	}
	ids = append(ids, dateIDs...)

	assigned, err := s.assignments.ListByJobs(ctx, ids)
	if err != nil {
		return fmt.Errorf("list assignments: %w", err)
	}
	removed := make([]uuid.UUID, 0, len(assigned))
	for _, a := range assigned {
		removed = append(removed, a.ID)
	}

	if _, err := s.assignments.DeleteByJobs(ctx, ids); err != nil {
		return fmt.Errorf("delete assignments: %w", err)
	}

	if _, err := s.jobs.DeleteByTour(ctx, tour.ID); err != nil {
		if len(removed) == 0 {
			return fmt.Errorf("delete tour dates: %w", err)
		}
		invalidate(ctx, s.cache, s.log, cache.TableAssignments)
		return &calendar.PartialError{Op: "delete tour", Step: "tour dates", Completed: removed, Err: err}
	}

	if err := s.jobs.Delete(ctx, tour.ID); err != nil {
		invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableAssignments)
		return &calendar.PartialError{Op: "delete tour", Step: "tour", Completed: append(removed, dateIDs...), Err: err}
	}

	invalidate(ctx, s.cache, s.log, cache.TableJobs, cache.TableAssignments)
	s.audit.Record(ctx, model.EventTypeJobDeleted, idPtr(tour.ID), map[string]any{
		"title":       tour.Title,
		"tour_dates":  len(dateIDs),
		"assignments": len(removed),
	})
	return nil
}

func (s *JobService) GetJob(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}
	return job, nil
}

type ListJobsInput struct {
	From, To     time.Time
	Department   model.Department
	ExcludeTours bool
	Page         int
	PageSize     int
}

// ListJobs — страница календаря. Результат кэшируется до записи в jobs.
func (s *JobService) ListJobs(ctx context.Context, in ListJobsInput) (calendar.Page[model.Job], error) {
	if !in.From.IsZero() && !in.To.IsZero() && in.To.Before(in.From) {
		return calendar.Page[model.Job]{}, calendar.ErrInvalidRange
	}
	limit, offset, page, size := calendar.PageBounds(in.Page, in.PageSize)

	key := cache.Key("list", in.From.UTC(), in.To.UTC(), in.Department, in.ExcludeTours, page, size)
	return cache.Remember(ctx, s.cache, cache.TableJobs, key, func(ctx context.Context) (calendar.Page[model.Job], error) {
		jobs, total, err := s.jobs.List(ctx, repository.JobFilter{
			From:         in.From,
			To:           in.To,
			Department:   in.Department,
			ExcludeTours: in.ExcludeTours,
			Limit:        limit,
			Offset:       offset,
		})
		if err != nil {
			return calendar.Page[model.Job]{}, fmt.Errorf("list jobs: %w", err)
		}
		return calendar.NewPage(jobs, total, page, size), nil
	})
}

// ListTourDates — даты тура по порядку.
func (s *JobService) ListTourDates(ctx context.Context, tourID uuid.UUID) ([]model.Job, error) {
	tour, err := s.jobs.GetByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	if !tour.IsTour() {
		return nil, calendar.ErrNotATour
	}

	return cache.Remember(ctx, s.cache, cache.TableJobs, cache.Key("tour_dates", tourID), func(ctx context.Context) ([]model.Job, error) {
		dates, err := s.jobs.ListByTour(ctx, tourID)
		if err != nil {
			return nil, fmt.Errorf("list tour dates: %w", err)
		}
		return dates, nil
	})
}

// GetTour возвращает тур вместе с датами.
func (s *JobService) GetTour(ctx context.Context, tourID uuid.UUID) (*TourResult, error) {
	dates, err := s.ListTourDates(ctx, tourID)
	if err != nil {
		return nil, err
	}
	tour, err := s.jobs.GetByID(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("get tour %s: %w", tourID, err)
	}
	return &TourResult{Tour: tour, Dates: dates}, nil
}
