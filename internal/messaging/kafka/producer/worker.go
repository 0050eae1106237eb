package producer

import (
	"context"
	"time"

	"github.com/Falasefemi2/hr-portal/internal/messaging/kafka"
	"github.com/Falasefemi2/hr-portal/internal/observability"

	"go.uber.org/zap"
)

const defaultBatchSize = 50

type Relay struct {
	repo         kafka.OutboxRepository
	writer       MessageWriter
	metrics      *observability.Metrics
	logger       *zap.Logger
	pollInterval time.Duration
	batchSize    int
}

func NewRelay(
	repo kafka.OutboxRepository,
	writer MessageWriter,
	metrics *observability.Metrics,
	pollInterval time.Duration,
	batchSize int,
	logger ...*zap.Logger,
) *Relay {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	base := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		base = logger[0]
	}

	return &Relay{
		repo:         repo,
		writer:       writer,
		metrics:      metrics,
		logger:       base.Named("kafka.producer.relay"),
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Run polls the outbox until ctx is cancelled.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return nil
		case <-ticker.C:
			if _, err := r.ProcessPending(ctx); err != nil {
				r.logger.Error("process outbox events failed", zap.Error(err))
			}
		}
	}
}

// ProcessPending publishes one batch and returns how many events were sent.
func (r *Relay) ProcessPending(ctx context.Context) (int, error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	r.logger.Debug("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		err := publishEvent(ctx, r.writer, event)
		r.metrics.OutboxPublished(event.EventType, err)
		if err != nil {
			r.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		r.logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}
