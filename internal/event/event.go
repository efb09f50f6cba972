package event

import (
	"context"
	"time"

	"github.com/Frenky19/QRkot-spreadsheets/internal/model"
	"github.com/google/uuid"
)

// Type 事件类型
type Type string

const (
	TypeProjectCreated  Type = "charity_project.created"
	TypeDonationCreated Type = "donation.created"
	TypeFunded          Type = "fundable.fully_invested"
	TypeReportExported  Type = "report.exported"
)

// Event 资金池领域事件，提交事务后投递
type Event struct {
	ID         string             `json:"id"`
	Type       Type               `json:"type"`
	Kind       model.FundableKind `json:"kind,omitempty"`
	EntityId   int64              `json:"entity_id,omitempty"`
	Amount     int64              `json:"amount,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// New 创建事件
func New(typ Type, kind model.FundableKind, entityId, amount int64, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Kind:       kind,
		EntityId:   entityId,
		Amount:     amount,
		OccurredAt: at,
	}
}

// Key 分区键，同一实体的事件保持有序
func (e Event) Key() string {
	if e.Kind == "" {
		return string(e.Type)
	}
	return string(e.Kind)
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}
