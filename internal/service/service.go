// Package service provides the business logic for users and products on top of the stores.
//
// Every mutation is committed by the store first. Domain events and metrics are emitted
// afterwards and never undo or fail a committed change.
package service

import (
	"context"
	"log/slog"

	"github.com/abgdnv/catalog/pkg/messaging"
)

// Recorder receives store operation outcomes for metrics.
type Recorder interface {
	// ObserveOperation counts one store operation on collection. A nil err is a success.
	ObserveOperation(collection, operation string, err error)

	// SetRecords reports the current number of records in collection.
	SetRecords(collection string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, string, error) {}

func (nopRecorder) SetRecords(string, int) {}

// Observer publishes domain events and records metrics for committed operations.
type Observer struct {
	publisher messaging.Publisher
	recorder  Recorder
	logger    *slog.Logger
}

// NewObserver creates an Observer. Nil publisher or recorder disable that output.
func NewObserver(publisher messaging.Publisher, recorder Recorder, logger *slog.Logger) *Observer {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{
		publisher: publisher,
		recorder:  recorder,
		logger:    logger.With("component", "service"),
	}
}

func (o *Observer) observe(collection, operation string, err error) {
	o.recorder.ObserveOperation(collection, operation, err)
}

// publish sends event and logs a failure.
func (o *Observer) publish(ctx context.Context, event messaging.Event) {
	if err := o.publisher.Publish(ctx, event); err != nil {
		o.logger.WarnContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}
