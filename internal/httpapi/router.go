// Package httpapi — JSON API поверх сервисов календаря.
package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/service"
)

var (
	editors    = []model.ProfileRole{model.ProfileRoleManagement, model.ProfileRoleLogistics}
	management = []model.ProfileRole{model.ProfileRoleManagement}
)

type Services struct {
	Jobs        *service.JobService
	Assignments *service.AssignmentService
	Technicians *service.TechnicianService
	Locations   *service.LocationService
	Identity    *service.IdentityService
}

type Handler struct {
	svc      Services
	validate *validator.Validate
	log      zerolog.Logger
}

func NewHandler(svc Services, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, validate: validator.New(), log: log}
}

// NewRouter собирает маршруты и middleware. allowedOrigins пустой — CORS для всех.
func NewRouter(h *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.Use(h.recovery)
	r.Use(h.logging)
	r.Use(h.session)

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Авторизация
	v1.HandleFunc("/auth/signup", h.signUp).Methods(http.MethodPost)
	v1.HandleFunc("/auth/signin", h.signIn).Methods(http.MethodPost)
	v1.HandleFunc("/auth/session", h.currentSession).Methods(http.MethodGet)
	v1.Handle("/auth/signout", h.authenticated(h.signOut)).Methods(http.MethodPost)

	// Работы и туры
	v1.Handle("/jobs", h.authenticated(h.listJobs)).Methods(http.MethodGet)
	v1.Handle("/jobs", h.requireRole(editors, h.createJob)).Methods(http.MethodPost)
	v1.Handle("/jobs/{id}", h.authenticated(h.getJob)).Methods(http.MethodGet)
	v1.Handle("/jobs/{id}", h.requireRole(editors, h.updateJob)).Methods(http.MethodPut)
	v1.Handle("/jobs/{id}", h.requireRole(management, h.deleteJob)).Methods(http.MethodDelete)
	v1.Handle("/tours", h.requireRole(editors, h.createTour)).Methods(http.MethodPost)
	v1.Handle("/tours/{id}/dates", h.authenticated(h.listTourDates)).Methods(http.MethodGet)
	v1.Handle("/tours/{id}/dates", h.requireRole(editors, h.addTourDate)).Methods(http.MethodPost)

	// Назначения
	v1.Handle("/jobs/{id}/assignments", h.authenticated(h.listAssignments)).Methods(http.MethodGet)
	v1.Handle("/jobs/{id}/assignments", h.requireRole(editors, h.assign)).Methods(http.MethodPost)
	v1.Handle("/assignments/{id}", h.requireRole(management, h.unassign)).Methods(http.MethodDelete)

	// Техники
	v1.Handle("/technicians", h.authenticated(h.listTechnicians)).Methods(http.MethodGet)
	v1.Handle("/technicians", h.requireRole(editors, h.createTechnician)).Methods(http.MethodPost)
	v1.Handle("/technicians/{id}", h.authenticated(h.getTechnician)).Methods(http.MethodGet)
	v1.Handle("/technicians/{id}", h.requireRole(editors, h.updateTechnician)).Methods(http.MethodPut)
	v1.Handle("/technicians/{id}", h.requireRole(management, h.deleteTechnician)).Methods(http.MethodDelete)

	v1.Handle("/locations", h.authenticated(h.listLocations)).Methods(http.MethodGet)

	// Пользователи
	v1.Handle("/profiles", h.requireRole(management, h.listProfiles)).Methods(http.MethodGet)
	v1.Handle("/profiles/{id}/role", h.requireRole(management, h.setRole)).Methods(http.MethodPut)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
