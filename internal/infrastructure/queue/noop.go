package queue

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
)

// NoopEnqueuer drops audit events when REDIS_URL is not set.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueAuditEvent(context.Context, ports.AuditEvent) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
