package outboxrepo

import (
	"time"

	"ordering/internal/core/ports"

	"github.com/google/uuid"
)

type OutboxDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EventType  string    `gorm:"type:varchar(64);not null"`
	MessageKey string    `gorm:"type:varchar(255);not null"`
	Payload    []byte    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	SentAt     *time.Time
}

func (OutboxDTO) TableName() string {
	return "outbox"
}

func toMessage(dto OutboxDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:        dto.ID,
		EventID:   dto.EventID.String(),
		EventType: dto.EventType,
		Key:       dto.MessageKey,
		Payload:   dto.Payload,
		CreatedAt: dto.CreatedAt.UTC(),
	}
}
