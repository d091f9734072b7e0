package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
)

// AuditHandler delivers TypeAuditWebhook tasks. A failed delivery is returned
// so asynq retries it.
type AuditHandler struct {
	emitter ports.WebhookEmitter
	log     zerolog.Logger
}

func NewAuditHandler(emitter ports.WebhookEmitter, log zerolog.Logger) *AuditHandler {
	return &AuditHandler{emitter: emitter, log: log}
}

func (h *AuditHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var ev ports.AuditEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil {
		h.log.Error().Err(err).Msg("audit task payload invalid")
		return fmt.Errorf("decode audit task: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.emitter.Emit(ctx, ev); err != nil {
		h.log.Warn().Err(err).Str("event", ev.Event).Msg("audit webhook delivery failed")
		return err
	}
	h.log.Debug().Str("event", ev.Event).Msg("audit webhook delivered")
	return nil
}

// Worker runs Asynq task handlers.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisConnOpt, emitter ports.WebhookEmitter, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.WarnLevel,
	})
	mux := asynq.NewServeMux()
	mux.Handle(TypeAuditWebhook, NewAuditHandler(emitter, log))
	return &Worker{srv: srv, mux: mux, log: log}
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
