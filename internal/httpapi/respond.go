package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Leganyst/crew-platform/internal/calendar"
	"github.com/Leganyst/crew-platform/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError переводит ошибку сервиса в HTTP-ответ.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr validator.ValidationErrors
	switch {
	case calendar.IsValidation(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case calendar.IsPartial(err):
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("operation partially applied")
		writeMessage(w, http.StatusInternalServerError, "operation partially applied")
	default:
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// decode читает JSON-тело и проверяет теги validate.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.writeError(w, r, err)
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
