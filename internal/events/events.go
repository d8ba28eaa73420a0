package events

import (
	"context"

	"tosipeli/internal/model"
)

// LeadPublisher forwards registrations to downstream consumers.
// Publishing never fails the registration that triggered it.
type LeadPublisher interface {
	PublishLead(ctx context.Context, lead model.LeadEvent)
	Close() error
}

type noop struct{}

func NewNoop() LeadPublisher {
	return noop{}
}

func (noop) PublishLead(context.Context, model.LeadEvent) {}

func (noop) Close() error { return nil }
