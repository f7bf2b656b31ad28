package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Leganyst/crew-platform/internal/calendar"
)

// UnaryServerInterceptor пускает только вызовы с действующим bearer-токеном
// в метаданных authorization. Сессия кладётся в контекст обработчика.
func UnaryServerInterceptor(issuer *Issuer, store calendar.ProfileStore) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		s := NewSession()
		if err := s.Resolve(ctx, issuer, store, bearerFromMetadata(ctx)); err != nil || !s.Authenticated() {
			return nil, status.Error(codes.Unauthenticated, "authentication required")
		}
		return handler(WithSession(ctx, s), req)
	}
}

func bearerFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	vals := md.Get("authorization")
	if len(vals) == 0 {
		return ""
	}
	token, ok := strings.CutPrefix(vals[0], "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
