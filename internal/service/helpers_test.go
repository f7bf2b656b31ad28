package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/cache"
	gormdb "github.com/Leganyst/crew-platform/internal/db"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/notify"
	"github.com/Leganyst/crew-platform/internal/repository"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	notices []notify.Notice
}

func (r *recordingDispatcher) Dispatch(n notify.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

type testEnv struct {
	db *gorm.DB

	jobRepo        repository.JobRepository
	techRepo       repository.TechnicianRepository
	assignmentRepo repository.AssignmentRepository
	locationRepo   repository.LocationRepository
	profileRepo    repository.ProfileRepository
	eventRepo      repository.EventRepository

	store   *cache.Memory
	notices *recordingDispatcher

	jobs        *JobService
	assignments *AssignmentService
	techs       *TechnicianService
	locations   *LocationService
	identity    *IdentityService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), gormdb.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// :memory: живёт в одном соединении.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	log := zerolog.Nop()

	e := &testEnv{
		db:             db,
		jobRepo:        repository.NewGormJobRepository(db),
		techRepo:       repository.NewGormTechnicianRepository(db),
		assignmentRepo: repository.NewGormAssignmentRepository(db),
		locationRepo:   repository.NewGormLocationRepository(db),
		profileRepo:    repository.NewGormProfileRepository(db),
		eventRepo:      repository.NewGormEventRepository(db),
		store:          cache.NewMemory(time.Minute),
		notices:        &recordingDispatcher{},
	}
	e.wire(log)
	return e
}

// wire пересобирает сервисы поверх текущих репозиториев.
func (e *testEnv) wire(log zerolog.Logger) {
	audit := NewAuditor(e.eventRepo, log)
	e.jobs = NewJobService(e.jobRepo, e.locationRepo, e.assignmentRepo, e.store, audit, log)
	e.assignments = NewAssignmentService(e.assignmentRepo, e.jobRepo, e.techRepo, e.notices, e.store, audit, log)
	e.techs = NewTechnicianService(e.techRepo, e.assignmentRepo, e.store, audit, log)
	e.locations = NewLocationService(e.locationRepo, e.store)
	e.identity = NewIdentityService(e.profileRepo, auth.NewIssuer("test-secret", time.Hour), e.store, audit, log)
}

func (e *testEnv) count(t *testing.T, m any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(m)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func mustTechnician(t *testing.T, e *testEnv, name string, dept model.Department) *model.Technician {
	t.Helper()
	tech, err := e.techs.Create(context.Background(), TechnicianInput{
		Name:       name,
		Email:      name + "@example.com",
		Department: dept,
	})
	if err != nil {
		t.Fatalf("create technician: %v", err)
	}
	return tech
}

func mustJob(t *testing.T, e *testEnv, title string, start, end time.Time) *model.Job {
	t.Helper()
	job, err := e.jobs.CreateJob(context.Background(), CreateJobInput{
		Title:       title,
		Start:       start,
		End:         end,
		Departments: []model.Department{model.DepartmentSound},
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return job
}

func zerologNop() zerolog.Logger { return zerolog.Nop() }
