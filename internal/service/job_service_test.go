package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/repository"
)

func summerRun() CreateTourInput {
	return CreateTourInput{
		Title:            "Summer Run",
		Description:      "Gira de verano",
		Color:            "#ff8800",
		ActingDepartment: model.DepartmentSound,
		Dates: []calendar.DateEntry{
			{Start: day(2024, 6, 1), End: day(2024, 6, 2), Location: "Hall A"},
			{Start: day(2024, 6, 10), End: day(2024, 6, 11), Location: "Hall B"},
		},
	}
}

func TestCreateTour_SummerRun(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}

	tour, err := e.jobRepo.GetByID(ctx, res.Tour.ID)
	if err != nil {
		t.Fatalf("get tour: %v", err)
	}
	if tour.JobType != model.JobTypeTour {
		t.Fatalf("job_type = %q, want tour", tour.JobType)
	}
	if !tour.StartTime.Equal(day(2024, 6, 1)) || !tour.EndTime.Equal(day(2024, 6, 11)) {
		t.Fatalf("tour span = %v..%v", tour.StartTime, tour.EndTime)
	}
	if !tour.HasDepartment(model.DepartmentSound) {
		t.Fatalf("acting department must be added, got %v", tour.Departments)
	}

	if n := e.count(t, &model.Job{}, "job_type = ?", model.JobTypeTour); n != 1 {
		t.Fatalf("expected 1 tour row, got %d", n)
	}

	dates, err := e.jobRepo.ListByTour(ctx, tour.ID)
	if err != nil {
		t.Fatalf("ListByTour: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 tour dates, got %d", len(dates))
	}
	for _, d := range dates {
		if d.Title != "Summer Run (Tour Date)" {
			t.Errorf("date title = %q", d.Title)
		}
		if d.JobType != model.JobTypeSingle {
			t.Errorf("date job_type = %q", d.JobType)
		}
		if d.Color == nil || *d.Color != "#ff8800" {
			t.Errorf("date must inherit color, got %v", d.Color)
		}
		if d.Description == nil || *d.Description != "Gira de verano" {
			t.Errorf("date must inherit description")
		}
		if !d.HasDepartment(model.DepartmentSound) {
			t.Errorf("date must inherit departments")
		}
	}
	if *dates[0].Location != "Hall A" || *dates[1].Location != "Hall B" {
		t.Fatalf("unexpected date locations: %v, %v", *dates[0].Location, *dates[1].Location)
	}

	locs, err := e.locationRepo.List(ctx, "hall", 10)
	if err != nil {
		t.Fatalf("list locations: %v", err)
	}
	if len(locs) != 2 || locs[0].Name != "Hall A" || locs[1].Name != "Hall B" {
		t.Fatalf("unexpected locations: %+v", locs)
	}

	if n := e.count(t, &model.Event{}, "event_type = ?", model.EventTypeTourCreated); n != 1 {
		t.Fatalf("expected audit event, got %d", n)
	}
}

func TestCreateTour_DuplicateLocationsIgnored(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	if err := e.locationRepo.Ensure(ctx, "Hall A"); err != nil {
		t.Fatalf("seed location: %v", err)
	}
	in := summerRun()
	in.Dates[1].Location = "Hall A"

	if _, err := e.jobs.CreateTour(ctx, in); err != nil {
		t.Fatalf("CreateTour: %v", err)
	}
	if n := e.count(t, &model.Location{}, ""); n != 1 {
		t.Fatalf("expected 1 location, got %d", n)
	}
}

func TestCreateTour_RejectionsCreateNoRows(t *testing.T) {
	cases := []struct {
		name string
		edit func(in *CreateTourInput)
		want error
	}{
		{"missing title", func(in *CreateTourInput) { in.Title = "   " }, calendar.ErrMissingTitle},
		{"empty start", func(in *CreateTourInput) { in.Dates[1].Start = time.Time{} }, calendar.ErrIncompleteDateRange},
		{"empty end", func(in *CreateTourInput) { in.Dates[0].End = time.Time{} }, calendar.ErrIncompleteDateRange},
		{"inverted entry", func(in *CreateTourInput) { in.Dates[1].End = day(2024, 6, 9) }, calendar.ErrInvalidRange},
		{"no dates", func(in *CreateTourInput) { in.Dates = nil }, calendar.ErrNoValidDates},
		{"inverted span", func(in *CreateTourInput) {
			in.Dates[0], in.Dates[1] = in.Dates[1], in.Dates[0]
		}, calendar.ErrInvalidRange},
		{"no departments", func(in *CreateTourInput) { in.ActingDepartment = "" }, calendar.ErrNoDepartments},
		{"bad department", func(in *CreateTourInput) { in.Departments = []model.Department{"catering"} }, calendar.ErrInvalidDepartment},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			in := summerRun()
			tc.edit(&in)

			_, err := e.jobs.CreateTour(context.Background(), in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if n := e.count(t, &model.Job{}, ""); n != 0 {
				t.Fatalf("expected no jobs, got %d", n)
			}
			if n := e.count(t, &model.Location{}, ""); n != 0 {
				t.Fatalf("expected no locations, got %d", n)
			}
		})
	}
}

type failingJobRepo struct {
	repository.JobRepository
	batchErr        error
	deleteErr       error
	deleteByTourErr error
}

func (f *failingJobRepo) DeleteByTour(ctx context.Context, tourID uuid.UUID) (int64, error) {
	if f.deleteByTourErr != nil {
		return 0, f.deleteByTourErr
	}
	return f.JobRepository.DeleteByTour(ctx, tourID)
}

func (f *failingJobRepo) CreateBatch(ctx context.Context, jobs []model.Job) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	return f.JobRepository.CreateBatch(ctx, jobs)
}

func (f *failingJobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.JobRepository.Delete(ctx, id)
}

func TestCreateTour_PartialFailureKeepsParent(t *testing.T) {
	e := newTestEnv(t)
	boom := errors.New("insert failed")
	e.jobRepo = &failingJobRepo{JobRepository: e.jobRepo, batchErr: boom}
	e.wire(zerologNop())

	_, err := e.jobs.CreateTour(context.Background(), summerRun())

	var pe *calendar.PartialError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PartialError, got %v", err)
	}
	if pe.Step != "tour dates" || !errors.Is(err, boom) {
		t.Fatalf("unexpected partial error: %v", pe)
	}
	if len(pe.Completed) != 1 {
		t.Fatalf("only the parent should be completed, got %v", pe.Completed)
	}
	// Отката нет: тур остаётся без дат.
	if n := e.count(t, &model.Job{}, "id = ?", pe.Completed[0]); n != 1 {
		t.Fatalf("parent row must remain")
	}
	if n := e.count(t, &model.Job{}, "tour_id IS NOT NULL"); n != 0 {
		t.Fatalf("no tour dates expected, got %d", n)
	}
}

func TestAddTourDate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}

	child, err := e.jobs.AddTourDate(ctx, res.Tour.ID, AddTourDateInput{Date: at(2024, 6, 20, 15), Location: "Hall C"})
	if err != nil {
		t.Fatalf("AddTourDate: %v", err)
	}
	if !child.StartTime.Equal(day(2024, 6, 20)) {
		t.Fatalf("start = %v, want midnight", child.StartTime)
	}
	if want := day(2024, 6, 20).Add(23*time.Hour + 59*time.Minute + 59*time.Second); !child.EndTime.Equal(want) {
		t.Fatalf("end = %v, want %v", child.EndTime, want)
	}
	if child.TourID == nil || *child.TourID != res.Tour.ID {
		t.Fatalf("child must reference the tour")
	}
	if child.Title != "Summer Run (Tour Date)" {
		t.Fatalf("title = %q", child.Title)
	}
	if n := e.count(t, &model.Location{}, "name = ?", "Hall C"); n != 1 {
		t.Fatalf("Hall C must be registered")
	}

	dates, err := e.jobs.ListTourDates(ctx, res.Tour.ID)
	if err != nil {
		t.Fatalf("ListTourDates: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
}

func TestAddTourDate_Rejections(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	if _, err := e.jobs.AddTourDate(ctx, uuid.New(), AddTourDateInput{}); !errors.Is(err, calendar.ErrMissingDate) {
		t.Fatalf("expected ErrMissingDate, got %v", err)
	}
	if _, err := e.jobs.AddTourDate(ctx, uuid.New(), AddTourDateInput{Date: day(2024, 6, 1)}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	single := mustJob(t, e, "Boda", at(2024, 7, 1, 18), at(2024, 7, 1, 23))
	if _, err := e.jobs.AddTourDate(ctx, single.ID, AddTourDateInput{Date: day(2024, 6, 1)}); !errors.Is(err, calendar.ErrNotATour) {
		t.Fatalf("expected ErrNotATour, got %v", err)
	}
	if n := e.count(t, &model.Job{}, ""); n != 1 {
		t.Fatalf("no rows must be added, got %d", n)
	}
}

func TestCreateJob_Validation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.jobs.CreateJob(ctx, CreateJobInput{Start: at(2024, 7, 1, 18), End: at(2024, 7, 1, 23), ActingDepartment: model.DepartmentLights})
	if !errors.Is(err, calendar.ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
	_, err = e.jobs.CreateJob(ctx, CreateJobInput{Title: "Boda", Start: at(2024, 7, 1, 18), ActingDepartment: model.DepartmentLights})
	if !errors.Is(err, calendar.ErrIncompleteDateRange) {
		t.Fatalf("expected ErrIncompleteDateRange, got %v", err)
	}
	_, err = e.jobs.CreateJob(ctx, CreateJobInput{Title: "Boda", Start: at(2024, 7, 1, 18), End: at(2024, 7, 1, 10), ActingDepartment: model.DepartmentLights})
	if !errors.Is(err, calendar.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if n := e.count(t, &model.Job{}, ""); n != 0 {
		t.Fatalf("no rows expected, got %d", n)
	}

	job, err := e.jobs.CreateJob(ctx, CreateJobInput{
		Title:            "Boda",
		Location:         "Masia",
		Start:            at(2024, 7, 1, 18),
		End:              at(2024, 7, 1, 23),
		ActingDepartment: model.DepartmentLights,
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.JobType != model.JobTypeSingle || job.TourID != nil {
		t.Fatalf("single job expected, got %+v", job)
	}
	if n := e.count(t, &model.Location{}, "name = ?", "Masia"); n != 1 {
		t.Fatalf("location must be registered")
	}
}

func TestUpdateJob_DoesNotTouchTourDates(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}

	updated, err := e.jobs.UpdateJob(ctx, res.Tour.ID, UpdateJobInput{
		Title:       "Winter Run",
		Description: "   ",
		Start:       day(2024, 6, 1),
		End:         day(2024, 6, 30),
		Departments: []model.Department{model.DepartmentVideo},
	})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.Title != "Winter Run" {
		t.Fatalf("title = %q", updated.Title)
	}
	if updated.Description != nil {
		t.Fatalf("empty description must become NULL, got %q", *updated.Description)
	}
	if updated.Location != nil {
		t.Fatalf("empty location must become NULL")
	}
	if !updated.EndTime.Equal(day(2024, 6, 30)) {
		t.Fatalf("end = %v", updated.EndTime)
	}
	if len(updated.Departments) != 1 || updated.Departments[0] != model.DepartmentVideo {
		t.Fatalf("departments = %v", updated.Departments)
	}
	if updated.Color == nil || *updated.Color != "#ff8800" {
		t.Fatalf("color must stay unchanged")
	}

	dates, err := e.jobRepo.ListByTour(ctx, res.Tour.ID)
	if err != nil {
		t.Fatalf("ListByTour: %v", err)
	}
	for _, d := range dates {
		if d.Title != "Summer Run (Tour Date)" {
			t.Fatalf("tour date changed: %q", d.Title)
		}
	}
}

func TestUpdateJob_Errors(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.jobs.UpdateJob(ctx, uuid.New(), UpdateJobInput{Title: "x", Start: day(2024, 1, 1), End: day(2024, 1, 2)})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = e.jobs.UpdateJob(ctx, uuid.New(), UpdateJobInput{Title: "x", Start: day(2024, 1, 2), End: day(2024, 1, 1)})
	if !errors.Is(err, calendar.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestDeleteJob_TourCascade(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}
	tech := mustTechnician(t, e, "ana", model.DepartmentSound)
	if _, err := e.assignments.Assign(ctx, AssignInput{
		JobID:        res.Dates[0].ID,
		TechnicianID: tech.ID,
		Department:   model.DepartmentSound,
		Role:         "Tecnico de Sonido",
	}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	other := mustJob(t, e, "Boda", at(2024, 7, 1, 18), at(2024, 7, 1, 23))

	if err := e.jobs.DeleteJob(ctx, res.Tour.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}

	if _, err := e.jobRepo.GetByID(ctx, res.Tour.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("tour must be gone, got %v", err)
	}
	if n := e.count(t, &model.Job{}, "tour_id = ?", res.Tour.ID); n != 0 {
		t.Fatalf("tour dates must be gone, got %d", n)
	}
	if n := e.count(t, &model.Assignment{}, ""); n != 0 {
		t.Fatalf("assignments of tour dates must be gone, got %d", n)
	}
	if _, err := e.jobRepo.GetByID(ctx, other.ID); err != nil {
		t.Fatalf("unrelated job must stay: %v", err)
	}
}

func TestDeleteJob_ParentFailureIsPartial(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}

	e.jobRepo = &failingJobRepo{JobRepository: e.jobRepo, deleteErr: errors.New("delete failed")}
	e.wire(zerologNop())

	err = e.jobs.DeleteJob(ctx, res.Tour.ID)
	var pe *calendar.PartialError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PartialError, got %v", err)
	}
	if pe.Step != "tour" || len(pe.Completed) != 2 {
		t.Fatalf("unexpected partial error: %v", pe)
	}
	if n := e.count(t, &model.Job{}, "id = ?", res.Tour.ID); n != 1 {
		t.Fatalf("parent must remain after failed delete")
	}
}

func TestDeleteJob_DateFailureKeepsTour(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}
	tech := mustTechnician(t, e, "ana", model.DepartmentSound)
	a, err := e.assignments.Assign(ctx, AssignInput{
		JobID:        res.Dates[0].ID,
		TechnicianID: tech.ID,
		Department:   model.DepartmentSound,
		Role:         "Tecnico de Sonido",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}

	boom := errors.New("delete dates failed")
	e.jobRepo = &failingJobRepo{JobRepository: e.jobRepo, deleteByTourErr: boom}
	e.wire(zerologNop())

	err = e.jobs.DeleteJob(ctx, res.Tour.ID)
	var pe *calendar.PartialError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PartialError, got %v", err)
	}
	if pe.Step != "tour dates" || !errors.Is(err, boom) {
		t.Fatalf("unexpected partial error: %v", pe)
	}
	if len(pe.Completed) != 1 || pe.Completed[0] != a.ID {
		t.Fatalf("completed = %v, want [%s]", pe.Completed, a.ID)
	}

	// Удаление прервано до родителя.
	if n := e.count(t, &model.Job{}, "id = ?", res.Tour.ID); n != 1 {
		t.Fatalf("parent must remain after failed date delete")
	}
	if n := e.count(t, &model.Job{}, "tour_id = ?", res.Tour.ID); n != 2 {
		t.Fatalf("tour dates must remain, got %d", n)
	}
}

func TestDeleteJob_DateFailureWithoutAssignments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	res, err := e.jobs.CreateTour(ctx, summerRun())
	if err != nil {
		t.Fatalf("CreateTour: %v", err)
	}

	boom := errors.New("delete dates failed")
	e.jobRepo = &failingJobRepo{JobRepository: e.jobRepo, deleteByTourErr: boom}
	e.wire(zerologNop())

	err = e.jobs.DeleteJob(ctx, res.Tour.ID)
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if calendar.IsPartial(err) {
		t.Fatalf("nothing was removed, error must not be partial: %v", err)
	}
	if n := e.count(t, &model.Job{}, "id = ?", res.Tour.ID); n != 1 {
		t.Fatalf("parent must remain")
	}
}

func TestDeleteJob_SingleKeepsAssignments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	job := mustJob(t, e, "Boda", at(2024, 7, 1, 18), at(2024, 7, 1, 23))
	tech := mustTechnician(t, e, "ana", model.DepartmentSound)
	if _, err := e.assignments.Assign(ctx, AssignInput{
		JobID:        job.ID,
		TechnicianID: tech.ID,
		Department:   model.DepartmentSound,
		Role:         "Tecnico de Sonido",
	}); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if err := e.jobs.DeleteJob(ctx, job.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if _, err := e.jobRepo.GetByID(ctx, job.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("job must be gone, got %v", err)
	}
	if n := e.count(t, &model.Assignment{}, "job_id = ?", job.ID); n != 1 {
		t.Fatalf("single job delete must not touch assignments, got %d", n)
	}
}

func TestDeleteJob_NotFound(t *testing.T) {
	e := newTestEnv(t)
	if err := e.jobs.DeleteJob(context.Background(), uuid.New()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListJobs_ReinvalidateIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	if _, err := e.jobs.CreateTour(ctx, summerRun()); err != nil {
		t.Fatalf("CreateTour: %v", err)
	}
	mustJob(t, e, "Boda", at(2024, 7, 1, 18), at(2024, 7, 1, 23))

	in := ListJobsInput{From: day(2024, 6, 1), To: day(2024, 6, 30), ExcludeTours: true}
	first, err := e.jobs.ListJobs(ctx, in)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if first.Total != 2 || len(first.Items) != 2 {
		t.Fatalf("expected 2 tour dates in June, got %+v", first)
	}

	// Открыли и закрыли форму без изменений.
	if err := e.store.Invalidate(ctx, "jobs"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := e.store.Invalidate(ctx, "jobs"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	second, err := e.jobs.ListJobs(ctx, in)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if second.Total != first.Total || len(second.Items) != len(first.Items) {
		t.Fatalf("listing changed after no-op: %+v vs %+v", first, second)
	}
	for i := range first.Items {
		if first.Items[i].ID != second.Items[i].ID || first.Items[i].Title != second.Items[i].Title {
			t.Fatalf("item %d differs", i)
		}
	}
}

func TestListJobs_FiltersAndCache(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	mustJob(t, e, "Boda", at(2024, 7, 1, 18), at(2024, 7, 1, 23))
	if _, err := e.jobs.CreateJob(ctx, CreateJobInput{
		Title:            "Congreso",
		Start:            at(2024, 7, 2, 9),
		End:              at(2024, 7, 2, 18),
		ActingDepartment: model.DepartmentVideo,
	}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	page, err := e.jobs.ListJobs(ctx, ListJobsInput{Department: model.DepartmentVideo})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Congreso" {
		t.Fatalf("department filter failed: %+v", page.Items)
	}

	// Прямая запись в обход сервиса не видна, пока кэш не сброшен.
	if err := e.jobRepo.Create(ctx, &model.Job{
		Title:       "Feria",
		StartTime:   at(2024, 7, 3, 9),
		EndTime:     at(2024, 7, 3, 18),
		JobType:     model.JobTypeSingle,
		Departments: []model.Department{model.DepartmentVideo},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	page, _ = e.jobs.ListJobs(ctx, ListJobsInput{Department: model.DepartmentVideo})
	if len(page.Items) != 1 {
		t.Fatalf("expected cached page, got %d items", len(page.Items))
	}
	_ = e.store.Invalidate(ctx, "jobs")
	page, _ = e.jobs.ListJobs(ctx, ListJobsInput{Department: model.DepartmentVideo})
	if len(page.Items) != 2 {
		t.Fatalf("expected fresh page, got %d items", len(page.Items))
	}

	if _, err := e.jobs.ListJobs(ctx, ListJobsInput{From: day(2024, 7, 2), To: day(2024, 7, 1)}); !errors.Is(err, calendar.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
