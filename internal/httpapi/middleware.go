package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/model"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		h.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (h *Handler) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.log.Error().Interface("panic", err).Str("path", r.URL.Path).Msg("handler panic")
				writeMessage(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// session разбирает bearer-токен и кладёт сессию в контекст запроса.
// Неверный токен не прерывает запрос: сессия просто остаётся анонимной.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := auth.NewSession()
		if err := s.Resolve(r.Context(), h.svc.Identity.Issuer(), h.svc.Identity.Profiles(), bearerToken(r)); err != nil {
			h.log.Debug().Err(err).Msg("session not resolved")
		}
		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), s)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func (h *Handler) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).Authenticated() {
			writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	})
}

func (h *Handler) requireRole(roles []model.ProfileRole, next http.HandlerFunc) http.Handler {
	return h.authenticated(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).HasRole(roles...) {
			writeMessage(w, http.StatusForbidden, "insufficient role")
			return
		}
		next(w, r)
	})
}
