package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/gorm"

	calendarpb "github.com/Leganyst/crew-platform/internal/api/calendar/v1"
	"github.com/Leganyst/crew-platform/internal/calendar"
)

// CalendarService — gRPC-доступ к календарю только на чтение.
type CalendarService struct {
	calendarpb.UnimplementedCalendarServiceServer

	jobs *JobService
}

func NewCalendarService(jobs *JobService) *CalendarService {
	return &CalendarService{jobs: jobs}
}

// ListJobs — страница работ в окне [from, to].
func (s *CalendarService) ListJobs(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()

	from, err := timeField(f, "from")
	if err != nil {
		return nil, err
	}
	to, err := timeField(f, "to")
	if err != nil {
		return nil, err
	}

	in := ListJobsInput{
		From:         from,
		To:           to,
		ExcludeTours: f["exclude_tours"].GetBoolValue(),
		Page:         int(f["page"].GetNumberValue()),
		PageSize:     int(f["page_size"].GetNumberValue()),
	}
	if d := f["department"].GetStringValue(); d != "" {
		dept, err := calendar.ParseDepartment(d)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		in.Department = dept
	}

	page, err := s.jobs.ListJobs(ctx, in)
	if err != nil {
		return nil, grpcError("list jobs", err)
	}
	return toStruct(page)
}

// GetTour — тур и его даты.
func (s *CalendarService) GetTour(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw := req.GetFields()["id"].GetStringValue()
	if raw == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "id must be a uuid")
	}

	tour, err := s.jobs.GetTour(ctx, id)
	if err != nil {
		return nil, grpcError("get tour", err)
	}
	return toStruct(tour)
}

func timeField(f map[string]*structpb.Value, name string) (time.Time, error) {
	v := f[name].GetStringValue()
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "%s must be RFC3339", name)
	}
	return t, nil
}

func grpcError(op string, err error) error {
	switch {
	case calendar.IsValidation(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		return status.Errorf(codes.NotFound, "%s: not found", op)
	default:
		return status.Errorf(codes.Internal, "%s: %v", op, err)
	}
}

// toStruct переводит значение в Struct через его JSON-представление.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, status.Errorf(codes.Internal, "encode: %v", err)
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode: %v", err))
	}
	return out, nil
}
