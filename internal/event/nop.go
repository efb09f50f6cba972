package event

import (
	"context"

	"github.com/Frenky19/QRkot-spreadsheets/internal/logger"
)

// LogPublisher 未配置 Kafka 时只记录日志
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, events ...Event) error {
	for _, e := range events {
		logger.Debug("Event %s: %s %s#%d amount=%d", e.ID, e.Type, e.Kind, e.EntityId, e.Amount)
	}
	return nil
}

func (LogPublisher) Close() error {
	return nil
}
