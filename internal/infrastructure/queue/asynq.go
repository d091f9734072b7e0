package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
)

// TypeAuditWebhook delivers one audit event to the configured webhook.
const TypeAuditWebhook = "webhook:emit"

const (
	auditMaxRetry = 5
	auditTimeout  = 30 * time.Second
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisConnOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

// NewAuditTask encodes an audit event as a webhook task.
func NewAuditTask(event ports.AuditEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode audit event: %w", err)
	}
	return asynq.NewTask(TypeAuditWebhook, payload, asynq.MaxRetry(auditMaxRetry), asynq.Timeout(auditTimeout)), nil
}

func (q *TaskEnqueuer) EnqueueAuditEvent(ctx context.Context, event ports.AuditEvent) error {
	task, err := NewAuditTask(event)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue audit webhook failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
