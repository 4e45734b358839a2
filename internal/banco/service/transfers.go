package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/pkg/idx"
	"github.com/aussiebroadwan/mibanco/pkg/metrics"
	"github.com/aussiebroadwan/mibanco/pkg/rut"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

type TransferService struct {
	Store   store.Store
	Events  Publisher
	Metrics metrics.Recorder
	Now     func() time.Time
}

// History returns the owner's transfers, newest first. An owner without
// transfers gets an empty, non-nil slice.
func (s *TransferService) History(ctx context.Context, ownerRUT string) ([]domain.Transfer, error) {
	owner, err := s.Store.Users().FindByNationalID(ctx, rut.Normalize(ownerRUT), store.ProjectTransfers)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		slogx.FromContext(ctx).Error("failed to load transfer history", slog.Any("error", err))
		return nil, err
	}

	if owner.Transfers == nil {
		return []domain.Transfer{}, nil
	}
	domain.SortNewestFirst(owner.Transfers)
	return owner.Transfers, nil
}

// Issue records a transfer for the owner. The timestamp and id are assigned
// here; whatever the caller put in t.CreatedAt and t.ID is discarded.
func (s *TransferService) Issue(ctx context.Context, ownerRUT string, t domain.Transfer) (domain.Transfer, error) {
	log := slogx.FromContext(ctx)
	ownerRUT = rut.Normalize(ownerRUT)

	if t.Amount < 1 {
		return domain.Transfer{}, ErrInvalidAmount
	}
	recipient, err := rut.Parse(t.RecipientNationalID)
	if err != nil {
		return domain.Transfer{}, ErrInvalidNationalID
	}
	t.RecipientNationalID = recipient

	// 1. Cheap existence check, no lists loaded.
	exists, err := s.Store.Users().ExistsByNationalID(ctx, ownerRUT)
	if err != nil {
		log.Error("failed to check payer", slog.Any("error", err))
		return domain.Transfer{}, err
	}
	if !exists {
		log.Info("transfer rejected: payer not found", slog.String("rut", ownerRUT))
		return domain.Transfer{}, ErrUserNotFound
	}

	// 2. Server side id and timestamp.
	now := nowUTC(s.Now)
	t.ID = idx.NewAt(now).String()
	t.CreatedAt = now

	// 3. Append.
	modified, err := s.Store.Users().AppendTransfer(ctx, ownerRUT, t)
	if err != nil {
		log.Error("failed to append transfer", slog.Any("error", err))
		return domain.Transfer{}, err
	}
	if modified == 0 {
		return domain.Transfer{}, ErrUserNotFound
	}

	recorderOr(s.Metrics).TransferIssued(t.Amount)
	log.Info("transfer recorded",
		slog.String("rut", ownerRUT),
		slog.String("transfer_id", t.ID),
		slog.Int64("monto", t.Amount),
	)

	publish(ctx, s.Events, EventTransferCreated, TransferCreatedEvent{
		OwnerRUT:     ownerRUT,
		TransferID:   t.ID,
		RecipientRUT: t.RecipientNationalID,
		Bank:         t.Bank,
		Amount:       t.Amount,
		OccurredAt:   now,
		RequestID:    slogx.RequestID(ctx),
	})

	return t, nil
}
