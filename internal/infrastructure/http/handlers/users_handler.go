package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/user"
)

// UsersHandler handles /api/users/*. Requires AuthValidator.
type UsersHandler struct {
	getUser *user.GetUser
	log     zerolog.Logger
}

func NewUsersHandler(getUser *user.GetUser, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{getUser: getUser, log: log}
}

// Get handles GET /api/users/{id}.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.getUser.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "User found", toUserJSON(u))
}
