package orderrepo

import (
	"encoding/json"
	"time"

	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// EventTypeStatusChanged tags outbox rows carrying StatusChangedPayload.
const EventTypeStatusChanged = "order.status_changed"

// StatusChangedPayload is the JSON body published for every status change.
type StatusChangedPayload struct {
	EventID    string    `json:"eventId"`
	OrderID    string    `json:"orderId"`
	ClientID   string    `json:"clientId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Actor      string    `json:"actor"`
	OccurredAt time.Time `json:"occurredAt"`
}

func outboxFromEvents(events []order.StatusChanged) ([]outboxrepo.OutboxDTO, error) {
	dtos := make([]outboxrepo.OutboxDTO, 0, len(events))
	for _, event := range events {
		eventID := uuid.New()
		payload, err := json.Marshal(StatusChangedPayload{
			EventID:    eventID.String(),
			OrderID:    event.OrderID.String(),
			ClientID:   event.ClientRef.String(),
			From:       event.From.String(),
			To:         event.To.String(),
			Actor:      string(event.Actor),
			OccurredAt: event.At.UTC(),
		})
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, outboxrepo.OutboxDTO{
			EventID:    eventID,
			EventType:  EventTypeStatusChanged,
			MessageKey: event.OrderID.String(),
			Payload:    payload,
			CreatedAt:  event.At.UTC(),
		})
	}
	return dtos, nil
}
