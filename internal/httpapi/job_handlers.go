package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/model"
	"github.com/Leganyst/crew-platform/internal/service"
)

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := parseFlexTime(q.Get("from"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid from")
		return
	}
	to, err := parseFlexTime(q.Get("to"))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid to")
		return
	}

	in := service.ListJobsInput{
		From:         from,
		To:           to,
		ExcludeTours: q.Get("exclude_tours") == "true",
	}
	if d := q.Get("department"); d != "" {
		dept, err := calendar.ParseDepartment(d)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		in.Department = dept
	}
	in.Page, _ = strconv.Atoi(q.Get("page"))
	in.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	page, err := h.svc.Jobs.ListJobs(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handler) getJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	job, err := h.svc.Jobs.GetJob(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := service.CreateJobInput{
		Title:            req.Title,
		Description:      req.Description,
		Location:         req.Location,
		Start:            req.Start.Time,
		End:              req.End.Time,
		Departments:      toDepartments(req.Departments),
		ActingDepartment: model.Department(req.ActingDepartment),
	}
	if req.Color != nil {
		in.Color = *req.Color
	}

	job, err := h.svc.Jobs.CreateJob(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req jobRequest
	if !h.decode(w, r, &req) {
		return
	}

	job, err := h.svc.Jobs.UpdateJob(r.Context(), id, service.UpdateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Start:       req.Start.Time,
		End:         req.End.Time,
		Departments: toDepartments(req.Departments),
		Color:       req.Color,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Jobs.DeleteJob(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createTour(w http.ResponseWriter, r *http.Request) {
	var req createTourRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.svc.Jobs.CreateTour(r.Context(), service.CreateTourInput{
		Title:            req.Title,
		Description:      req.Description,
		Color:            req.Color,
		Departments:      toDepartments(req.Departments),
		ActingDepartment: model.Department(req.ActingDepartment),
		Dates:            req.entries(),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *Handler) listTourDates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	dates, err := h.svc.Jobs.ListTourDates(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dates)
}

func (h *Handler) addTourDate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req addTourDateRequest
	if !h.decode(w, r, &req) {
		return
	}

	job, err := h.svc.Jobs.AddTourDate(r.Context(), id, service.AddTourDateInput{
		Date:     req.Date.Time,
		Location: req.Location,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, job)
}
