package webhook

import (
	"context"

	"github.com/amirhosseinghanipour/userorg/internal/application/ports"
)

// NoopEmitter drops events; the worker uses it when WEBHOOK_URL is unset.
type NoopEmitter struct{}

func NewNoopEmitter() *NoopEmitter {
	return &NoopEmitter{}
}

func (NoopEmitter) Emit(context.Context, ports.AuditEvent) error {
	return nil
}

var _ ports.WebhookEmitter = NoopEmitter{}
