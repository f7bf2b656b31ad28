package httpapi

import (
	"net/http"

	"github.com/Leganyst/crew-platform/internal/auth"
	"github.com/Leganyst/crew-platform/internal/service"
)

type sessionResponse struct {
	State   string          `json:"state"`
	Profile *sessionProfile `json:"profile,omitempty"`
}

type sessionProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.svc.Identity.SignUp(r.Context(), service.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.svc.Identity.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// signOut закрывает сессию запроса. Токен stateless, клиент просто его удаляет.
func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	auth.FromContext(r.Context()).SignOut()
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	s := auth.FromContext(r.Context())
	resp := sessionResponse{State: s.State.String()}
	if s.Authenticated() {
		resp.Profile = &sessionProfile{
			ID:   s.Profile.ID.String(),
			Name: s.Profile.Name,
			Role: string(s.Profile.Role),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.Identity.ListProfiles(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req setRoleRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.svc.Identity.SetRole(r.Context(), id, req.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
