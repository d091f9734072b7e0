package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
)

// Audit event names.
const (
	EventSignup             = "user.signup"
	EventLogin              = "user.login"
	EventOrganisationCreate = "organisation.created"
	EventMemberAdded        = "organisation.member_added"
)

// Auditor logs audit events and, when a queue is configured, enqueues them
// for webhook delivery.
type Auditor struct {
	log   zerolog.Logger
	queue ports.TaskEnqueuer
}

// NewAuditor creates an auditor; queue may be nil.
func NewAuditor(log zerolog.Logger, queue ports.TaskEnqueuer) *Auditor {
	return &Auditor{log: log, queue: queue}
}

// Record logs ev with request metadata and enqueues it.
func (a *Auditor) Record(r *http.Request, ev ports.AuditEvent) {
	if a == nil {
		return
	}
	ev.IP = getClientIP(r)
	AuditLog(a.log, r, ev)
	if a.queue == nil {
		return
	}
	if err := a.queue.EnqueueAuditEvent(r.Context(), ev); err != nil {
		a.log.Warn().Err(err).Str("event", ev.Event).Msg("enqueue audit event")
	}
}

// AuditLog writes one auth_audit line.
func AuditLog(log zerolog.Logger, r *http.Request, ev ports.AuditEvent) {
	e := log.Info()
	if !ev.Success {
		e = log.Warn()
	}
	e.
		Str("event", ev.Event).
		Str("user_id", ev.UserID).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", ev.Success)
	if ev.OrgID != "" {
		e.Str("org_id", ev.OrgID)
	}
	if ev.Err != "" {
		e.Str("error", ev.Err)
	}
	e.Msg("auth_audit")
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
