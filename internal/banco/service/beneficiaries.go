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

type BeneficiaryService struct {
	Store   store.Store
	Events  Publisher
	Metrics metrics.Recorder
	Now     func() time.Time
}

// List returns the owner's beneficiaries in registration order. An owner with
// none gets an empty, non-nil slice.
func (s *BeneficiaryService) List(ctx context.Context, ownerRUT string) ([]domain.Beneficiary, error) {
	owner, err := s.Store.Users().FindByNationalID(ctx, rut.Normalize(ownerRUT), store.ProjectBeneficiaries)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		slogx.FromContext(ctx).Error("failed to list beneficiaries", slog.Any("error", err))
		return nil, err
	}

	if owner.Beneficiaries == nil {
		return []domain.Beneficiary{}, nil
	}
	return owner.Beneficiaries, nil
}

// Add registers b under the owner. A beneficiary RUT may appear once per
// owner; the same RUT under another owner is fine.
func (s *BeneficiaryService) Add(ctx context.Context, ownerRUT string, b domain.Beneficiary) (domain.Beneficiary, error) {
	log := slogx.FromContext(ctx)
	ownerRUT = rut.Normalize(ownerRUT)

	// 1. The beneficiary must be a real RUT.
	nationalID, err := rut.Parse(b.NationalID)
	if err != nil {
		return domain.Beneficiary{}, ErrInvalidNationalID
	}
	b.NationalID = nationalID

	// 2. Load the owner's current list.
	owner, err := s.Store.Users().FindByNationalID(ctx, ownerRUT, store.ProjectBeneficiaries)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info("beneficiary rejected: owner not found", slog.String("rut", ownerRUT))
		return domain.Beneficiary{}, ErrUserNotFound
	case err != nil:
		log.Error("failed to load owner", slog.Any("error", err))
		return domain.Beneficiary{}, err
	}

	// 3. Reject a duplicate early. The unique key still catches a racing one.
	for _, existing := range owner.Beneficiaries {
		if existing.NationalID == nationalID {
			log.Info("beneficiary rejected: duplicate",
				slog.String("rut", ownerRUT),
				slog.String("rut_destinatario", nationalID),
			)
			return domain.Beneficiary{}, ErrBeneficiaryExists
		}
	}

	// 4. Append.
	now := nowUTC(s.Now)
	b.ID = idx.NewAt(now).String()
	b.CreatedAt = now

	modified, err := s.Store.Users().AppendBeneficiary(ctx, ownerRUT, b)
	switch {
	case errors.Is(err, store.ErrDuplicateBeneficiary):
		return domain.Beneficiary{}, ErrBeneficiaryExists
	case err != nil:
		log.Error("failed to append beneficiary", slog.Any("error", err))
		return domain.Beneficiary{}, err
	case modified == 0:
		return domain.Beneficiary{}, ErrUserNotFound
	}

	recorderOr(s.Metrics).BeneficiaryAdded()
	log.Info("beneficiary added",
		slog.String("rut", ownerRUT),
		slog.String("rut_destinatario", nationalID),
	)

	publish(ctx, s.Events, EventBeneficiaryCreated, BeneficiaryCreatedEvent{
		OwnerRUT:       ownerRUT,
		BeneficiaryID:  b.ID,
		BeneficiaryRUT: b.NationalID,
		Bank:           b.Bank,
		OccurredAt:     now,
		RequestID:      slogx.RequestID(ctx),
	})

	return b, nil
}
