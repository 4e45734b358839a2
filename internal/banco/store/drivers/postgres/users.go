package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type usersRepo struct {
	pool *pgxpool.Pool
}

type userRow struct {
	ID           string
	Name         string
	Email        string
	Rut          string
	PasswordHash string
	CreatedAt    time.Time
}

const selectUser = `
SELECT id, name, email, rut, password_hash, created_at
FROM users
`

func scanUser(row pgx.Row) (userRow, error) {
	var r userRow
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Rut, &r.PasswordHash, &r.CreatedAt)
	return r, err
}

func (r *usersRepo) FindByNationalID(ctx context.Context, rut string, proj store.Projection) (domain.User, error) {
	row, err := scanUser(r.pool.QueryRow(ctx, selectUser+`WHERE rut = $1`, rut))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u := mapUser(row, proj)

	if proj.Has(store.ProjectBeneficiaries) {
		if u.Beneficiaries, err = r.listBeneficiaries(ctx, row.ID); err != nil {
			return domain.User{}, err
		}
	}
	if proj.Has(store.ProjectTransfers) {
		if u.Transfers, err = r.listTransfers(ctx, row.ID); err != nil {
			return domain.User{}, err
		}
	}
	return u, nil
}

func (r *usersRepo) ExistsByNationalID(ctx context.Context, rut string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE rut = $1)`, rut).Scan(&exists)
	return exists, err
}

func (r *usersRepo) FindByNationalIDOrEmail(ctx context.Context, rut, email string) (domain.User, error) {
	row, err := scanUser(r.pool.QueryRow(ctx, selectUser+`WHERE rut = $1 OR email = $2 LIMIT 1`, rut, email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row, store.ProjectIdentity), nil
}

// The owner is resolved in the same statement: a missing owner inserts
// nothing and reports zero rows.
const insertBeneficiary = `
INSERT INTO beneficiaries (
    id, owner_id, first_name, last_name, email, rut, phone, bank,
    account_type, account_number, created_at
)
SELECT $1, u.id, $2, $3, $4, $5, $6, $7, $8, $9, $10
FROM users u
WHERE u.rut = $11`

func (r *usersRepo) AppendBeneficiary(ctx context.Context, ownerRUT string, b domain.Beneficiary) (int64, error) {
	tag, err := r.pool.Exec(ctx, insertBeneficiary,
		b.ID, b.FirstName, b.LastName, b.Email, b.NationalID, b.Phone, b.Bank,
		b.AccountType, b.AccountNumber, b.CreatedAt.UTC(), ownerRUT,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return tag.RowsAffected(), nil
}

const insertTransfer = `
INSERT INTO transfers (
    id, owner_id, recipient_name, email, rut, bank, account_type, amount, created_at
)
SELECT $1, u.id, $2, $3, $4, $5, $6, $7, $8
FROM users u
WHERE u.rut = $9`

func (r *usersRepo) AppendTransfer(ctx context.Context, ownerRUT string, t domain.Transfer) (int64, error) {
	tag, err := r.pool.Exec(ctx, insertTransfer,
		t.ID, t.RecipientName, t.RecipientEmail, t.RecipientNationalID, t.Bank,
		t.AccountType, t.Amount, t.CreatedAt.UTC(), ownerRUT,
	)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return tag.RowsAffected(), nil
}

func (r *usersRepo) InsertUser(ctx context.Context, u domain.User) (domain.User, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.CreatedAt = u.CreatedAt.UTC()

	_, err := r.pool.Exec(ctx, `
INSERT INTO users (id, name, email, rut, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Name, u.Email, u.NationalID, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}

	u.PasswordHash = ""
	u.Beneficiaries = []domain.Beneficiary{}
	u.Transfers = []domain.Transfer{}
	return u, nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, rut, hash string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE rut = $2`, hash, rut)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *usersRepo) listBeneficiaries(ctx context.Context, ownerID string) ([]domain.Beneficiary, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, first_name, last_name, email, rut, phone, bank, account_type, account_number, created_at
FROM beneficiaries
WHERE owner_id = $1
ORDER BY created_at, id`, ownerID)
	if err != nil {
		return nil, err
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Beneficiary, error) {
		var b domain.Beneficiary
		err := row.Scan(
			&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.NationalID, &b.Phone,
			&b.Bank, &b.AccountType, &b.AccountNumber, &b.CreatedAt,
		)
		b.CreatedAt = b.CreatedAt.UTC()
		return b, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Beneficiary{}
	}
	return out, nil
}

func (r *usersRepo) listTransfers(ctx context.Context, ownerID string) ([]domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, recipient_name, email, rut, bank, account_type, amount, created_at
FROM transfers
WHERE owner_id = $1
ORDER BY created_at DESC, id DESC`, ownerID)
	if err != nil {
		return nil, err
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transfer, error) {
		var t domain.Transfer
		err := row.Scan(
			&t.ID, &t.RecipientName, &t.RecipientEmail, &t.RecipientNationalID,
			&t.Bank, &t.AccountType, &t.Amount, &t.CreatedAt,
		)
		t.CreatedAt = t.CreatedAt.UTC()
		return t, err
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Transfer{}
	}
	return out, nil
}

func mapUser(row userRow, proj store.Projection) domain.User {
	u := domain.User{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		NationalID: row.Rut,
		CreatedAt:  row.CreatedAt.UTC(),
	}
	if proj.Has(store.ProjectCredentials) {
		u.PasswordHash = row.PasswordHash
	}
	return u
}
