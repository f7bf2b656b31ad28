// Package calendarpb описывает gRPC-сервис crew.v1.CalendarService.
// Запросы и ответы передаются как google.protobuf.Struct.
package calendarpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "crew.v1.CalendarService"

	CalendarService_ListJobs_FullMethodName = "/" + ServiceName + "/ListJobs"
	CalendarService_GetTour_FullMethodName  = "/" + ServiceName + "/GetTour"
)

// CalendarServiceClient — клиент сервиса календаря.
//
// ListJobs принимает {from, to, department, exclude_tours, page, page_size},
// отвечает {items, page, page_size, total, has_next}.
// GetTour принимает {id}, отвечает {tour, dates}.
type CalendarServiceClient interface {
	ListJobs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetTour(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type calendarServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCalendarServiceClient(cc grpc.ClientConnInterface) CalendarServiceClient {
	return &calendarServiceClient{cc}
}

func (c *calendarServiceClient) ListJobs(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CalendarService_ListJobs_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *calendarServiceClient) GetTour(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CalendarService_GetTour_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CalendarServiceServer — серверная часть сервиса календаря.
type CalendarServiceServer interface {
	ListJobs(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTour(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedCalendarServiceServer встраивается в реализацию для совместимости вперёд.
type UnimplementedCalendarServiceServer struct{}

func (UnimplementedCalendarServiceServer) ListJobs(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListJobs not implemented")
}

func (UnimplementedCalendarServiceServer) GetTour(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTour not implemented")
}

func RegisterCalendarServiceServer(s grpc.ServiceRegistrar, srv CalendarServiceServer) {
	s.RegisterService(&CalendarService_ServiceDesc, srv)
}

func _CalendarService_ListJobs_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).ListJobs(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_ListJobs_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalendarServiceServer).ListJobs(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _CalendarService_GetTour_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalendarServiceServer).GetTour(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: CalendarService_GetTour_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalendarServiceServer).GetTour(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var CalendarService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalendarServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListJobs",
			Handler:    _CalendarService_ListJobs_Handler,
		},
		{
			MethodName: "GetTour",
			Handler:    _CalendarService_GetTour_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crew/v1/calendar.proto",
}
