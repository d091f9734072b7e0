package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/auth"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/userorg/internal/domain/errors"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.RegisterUser
	login    *auth.Login
	audit    *Auditor
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.RegisterUser, login *auth.Login, audit *Auditor, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{register: register, login: login, audit: audit, log: log}
}

type authData struct {
	AccessToken string   `json:"accessToken"`
	User        userJSON `json:"user"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body auth.RegisterUserInput
	if !decodeBody(w, r, &body) {
		return
	}
	result, err := h.register.Execute(r.Context(), body)
	if err != nil {
		h.audit.Record(r, ports.AuditEvent{Event: EventSignup, Err: err.Error()})
		middleware.RecordAuthAttempt("signup", false)
		writeDomainErr(w, h.log, err)
		return
	}
	h.audit.Record(r, ports.AuditEvent{
		Event:   EventSignup,
		UserID:  result.User.ID.String(),
		OrgID:   result.Organisation.ID.String(),
		Success: true,
	})
	middleware.RecordAuthAttempt("signup", true)
	writeSuccess(w, http.StatusCreated, "Registration successful", authData{
		AccessToken: result.AccessToken,
		User:        toUserJSON(result.User),
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body auth.LoginInput
	if !decodeBody(w, r, &body) {
		return
	}
	result, err := h.login.Execute(r.Context(), body)
	if err != nil {
		h.audit.Record(r, ports.AuditEvent{Event: EventLogin, Err: err.Error()})
		middleware.RecordAuthAttempt("login", false)
		writeLoginErr(w, h.log, err)
		return
	}
	h.audit.Record(r, ports.AuditEvent{Event: EventLogin, UserID: result.User.ID.String(), Success: true})
	middleware.RecordAuthAttempt("login", true)
	writeSuccess(w, http.StatusOK, "Login successful", authData{
		AccessToken: result.AccessToken,
		User:        toUserJSON(result.User),
	})
}

// Login keeps its own wording for the two credential failures.
func writeLoginErr(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domerrors.ErrUserNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeUserNotFound, "User not found!")
	case errors.Is(err, domerrors.ErrAuthenticationFailed):
		writeErr(w, http.StatusUnauthorized, ErrCodeAuthFailed, "Authentication failed")
	default:
		writeDomainErr(w, log, err)
	}
}
