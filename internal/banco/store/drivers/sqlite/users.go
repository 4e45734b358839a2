package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
)

type usersRepo struct {
	q *queries
}

func (r *usersRepo) FindByNationalID(ctx context.Context, rut string, proj store.Projection) (domain.User, error) {
	row, err := r.q.GetUserByRut(ctx, rut)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u := mapUser(row, proj)

	if proj.Has(store.ProjectBeneficiaries) {
		if u.Beneficiaries, err = r.q.ListBeneficiaries(ctx, row.ID); err != nil {
			return domain.User{}, err
		}
	}
	if proj.Has(store.ProjectTransfers) {
		if u.Transfers, err = r.q.ListTransfers(ctx, row.ID); err != nil {
			return domain.User{}, err
		}
	}
	return u, nil
}

func (r *usersRepo) ExistsByNationalID(ctx context.Context, rut string) (bool, error) {
	n, err := r.q.CountUsersByRut(ctx, rut)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *usersRepo) FindByNationalIDOrEmail(ctx context.Context, rut, email string) (domain.User, error) {
	row, err := r.q.GetUserByRutOrEmail(ctx, rut, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row, store.ProjectIdentity), nil
}

func (r *usersRepo) AppendBeneficiary(ctx context.Context, ownerRUT string, b domain.Beneficiary) (int64, error) {
	b.CreatedAt = b.CreatedAt.UTC()
	n, err := r.q.InsertBeneficiary(ctx, ownerRUT, b)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return n, nil
}

func (r *usersRepo) AppendTransfer(ctx context.Context, ownerRUT string, t domain.Transfer) (int64, error) {
	t.CreatedAt = t.CreatedAt.UTC()
	n, err := r.q.InsertTransfer(ctx, ownerRUT, t)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return n, nil
}

func (r *usersRepo) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.CreatedAt = u.CreatedAt.UTC()

	err := r.q.CreateUser(ctx, userRow{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Rut:          u.NationalID,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	})
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	u.PasswordHash = ""
	u.Beneficiaries = []domain.Beneficiary{}
	u.Transfers = []domain.Transfer{}
	return u, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, rut, hash string) (int64, error) {
	return r.q.UpdatePasswordHash(ctx, rut, hash)
}

func mapUser(row userRow, proj store.Projection) domain.User {
	u := domain.User{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		NationalID: row.Rut,
		CreatedAt:  row.CreatedAt,
	}
	if proj.Has(store.ProjectCredentials) {
		u.PasswordHash = row.PasswordHash
	}
	return u
}
