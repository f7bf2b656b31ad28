package httpapi

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/service"
)

func (h *Handler) listAssignments(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()

	var f service.AssignmentFilter
	if d := q.Get("department"); d != "" {
		dept, err := calendar.ParseDepartment(d)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		f.Department = dept
	}
	by, err := service.ParseFilterKey(q.Get("filter_by"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f.By = by

	list, err := h.svc.Assignments.ListForJob(r.Context(), id, f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if !h.decode(w, r, &req) {
		return
	}

	var techID uuid.UUID
	if req.TechnicianID != "" {
		parsed, err := uuid.Parse(req.TechnicianID)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid technician_id")
			return
		}
		techID = parsed
	}

	a, err := h.svc.Assignments.Assign(r.Context(), service.AssignInput{
		JobID:        jobID,
		TechnicianID: techID,
		Department:   model.Department(req.Department),
		Role:         req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *Handler) unassign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Assignments.Unassign(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTechnicians(w http.ResponseWriter, r *http.Request) {
	var dept model.Department
	if d := r.URL.Query().Get("department"); d != "" {
		parsed, err := calendar.ParseDepartment(d)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		dept = parsed
	}

	list, err := h.svc.Technicians.List(r.Context(), dept)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getTechnician(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.svc.Technicians.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (r technicianRequest) input() service.TechnicianInput {
	return service.TechnicianInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		DNI:        r.DNI,
		Residencia: r.Residencia,
		Department: model.Department(r.Department),
	}
}

func (h *Handler) createTechnician(w http.ResponseWriter, r *http.Request) {
	var req technicianRequest
	if !h.decode(w, r, &req) {
		return
	}
	t, err := h.svc.Technicians.Create(r.Context(), req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *Handler) updateTechnician(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req technicianRequest
	if !h.decode(w, r, &req) {
		return
	}
	t, err := h.svc.Technicians.Update(r.Context(), id, req.input())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTechnician(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Technicians.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.svc.Locations.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}
