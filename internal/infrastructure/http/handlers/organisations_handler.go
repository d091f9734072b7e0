package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/organisation"
	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
	"github.com/amirhosseinghanipour/userorg/internal/infrastructure/http/middleware"
)

// OrganisationsHandler handles /api/organisations/*. Requires AuthValidator.
type OrganisationsHandler struct {
	create *organisation.CreateOrganisation
	get    *organisation.GetOrganisation
	list   *organisation.ListOrganisations
	add    *organisation.AddMember
	audit  *Auditor
	log    zerolog.Logger
}

func NewOrganisationsHandler(
	create *organisation.CreateOrganisation,
	get *organisation.GetOrganisation,
	list *organisation.ListOrganisations,
	add *organisation.AddMember,
	audit *Auditor,
	log zerolog.Logger,
) *OrganisationsHandler {
	return &OrganisationsHandler{create: create, get: get, list: list, add: add, audit: audit, log: log}
}

// Create handles POST /api/organisations.
func (h *OrganisationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized access. Please log in.")
		return
	}
	var body organisation.CreateOrganisationInput
	if !decodeBody(w, r, &body) {
		return
	}
	org, err := h.create.Execute(r.Context(), caller, body)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	h.audit.Record(r, ports.AuditEvent{
		Event:   EventOrganisationCreate,
		UserID:  caller.String(),
		OrgID:   org.ID.String(),
		Success: true,
	})
	writeSuccess(w, http.StatusCreated, "Organisation created successfully", toOrganisationJSON(org))
}

// List handles GET /api/organisations.
func (h *OrganisationsHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized access. Please log in.")
		return
	}
	orgs, err := h.list.Execute(r.Context(), caller)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	out := make([]organisationJSON, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, toOrganisationJSON(o))
	}
	writeSuccess(w, http.StatusOK, "Organisations retrieved successfully", map[string]any{"organisations": out})
}

// Get handles GET /api/organisations/{orgId}.
func (h *OrganisationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	org, err := h.get.Execute(r.Context(), chi.URLParam(r, "orgId"))
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Organisation found", toOrganisationJSON(org))
}

// AddUser handles POST /api/organisations/{orgId}/users.
func (h *OrganisationsHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		UserID string `json:"userId"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	orgID := chi.URLParam(r, "orgId")
	err := h.add.Execute(r.Context(), organisation.AddMemberInput{OrgID: orgID, UserID: body.UserID})
	ev := ports.AuditEvent{Event: EventMemberAdded, UserID: body.UserID, OrgID: orgID, Success: err == nil}
	if err != nil {
		ev.Err = err.Error()
	}
	h.audit.Record(r, ev)
	if err != nil {
		writeDomainErr(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Status: "success", Message: "User added to organisation successfully"})
}
