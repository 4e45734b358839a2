package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

// Routing keys of the domain events.
const (
	EventBeneficiaryCreated = "beneficiary.created"
	EventTransferCreated    = "transfer.created"
)

// Publisher delivers domain events. pkg/rabbitmq implements it.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
}

type BeneficiaryCreatedEvent struct {
	OwnerRUT       string    `json:"owner_rut"`
	BeneficiaryID  string    `json:"beneficiary_id"`
	BeneficiaryRUT string    `json:"beneficiary_rut"`
	Bank           string    `json:"bank"`
	OccurredAt     time.Time `json:"occurred_at"`
	RequestID      string    `json:"request_id,omitempty"`
}

type TransferCreatedEvent struct {
	OwnerRUT     string    `json:"owner_rut"`
	TransferID   string    `json:"transfer_id"`
	RecipientRUT string    `json:"recipient_rut"`
	Bank         string    `json:"bank"`
	Amount       int64     `json:"amount"`
	OccurredAt   time.Time `json:"occurred_at"`
	RequestID    string    `json:"request_id,omitempty"`
}

// publish never fails the caller: the record is already stored.
func publish(ctx context.Context, p Publisher, routingKey string, body any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, body); err != nil {
		slogx.FromContext(ctx).Warn("event publish failed",
			slog.String("routing_key", routingKey),
			slog.Any("error", err),
		)
	}
}
