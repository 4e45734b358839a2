package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
)

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

type userRow struct {
	ID           string
	Name         string
	Email        string
	Rut          string
	PasswordHash string
	CreatedAt    time.Time
}

const getUserByRut = `
SELECT id, name, email, rut, password_hash, created_at
FROM users
WHERE rut = ?`

func (q *queries) GetUserByRut(ctx context.Context, rut string) (userRow, error) {
	var r userRow
	err := q.db.QueryRowContext(ctx, getUserByRut, rut).
		Scan(&r.ID, &r.Name, &r.Email, &r.Rut, &r.PasswordHash, &r.CreatedAt)
	return r, err
}

const getUserByRutOrEmail = `
SELECT id, name, email, rut, password_hash, created_at
FROM users
WHERE rut = ? OR email = ?
LIMIT 1`

func (q *queries) GetUserByRutOrEmail(ctx context.Context, rut, email string) (userRow, error) {
	var r userRow
	err := q.db.QueryRowContext(ctx, getUserByRutOrEmail, rut, email).
		Scan(&r.ID, &r.Name, &r.Email, &r.Rut, &r.PasswordHash, &r.CreatedAt)
	return r, err
}

const countUsersByRut = `SELECT COUNT(1) FROM users WHERE rut = ?`

func (q *queries) CountUsersByRut(ctx context.Context, rut string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countUsersByRut, rut).Scan(&n)
	return n, err
}

const createUser = `
INSERT INTO users (id, name, email, rut, password_hash, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

func (q *queries) CreateUser(ctx context.Context, r userRow) error {
	_, err := q.db.ExecContext(ctx, createUser, r.ID, r.Name, r.Email, r.Rut, r.PasswordHash, r.CreatedAt)
	return err
}

const updatePasswordHash = `UPDATE users SET password_hash = ? WHERE rut = ?`

func (q *queries) UpdatePasswordHash(ctx context.Context, rut, hash string) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePasswordHash, hash, rut)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listBeneficiaries = `
SELECT b.id, b.first_name, b.last_name, b.email, b.rut, b.phone, b.bank,
       b.account_type, b.account_number, b.created_at
FROM beneficiaries b
WHERE b.owner_id = ?
ORDER BY b.created_at, b.id`

func (q *queries) ListBeneficiaries(ctx context.Context, ownerID string) ([]domain.Beneficiary, error) {
	rows, err := q.db.QueryContext(ctx, listBeneficiaries, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Beneficiary, 0)
	for rows.Next() {
		var b domain.Beneficiary
		if err := rows.Scan(
			&b.ID, &b.FirstName, &b.LastName, &b.Email, &b.NationalID, &b.Phone,
			&b.Bank, &b.AccountType, &b.AccountNumber, &b.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// insertBeneficiary resolves the owner in the same statement, so a missing
// owner inserts nothing and reports zero rows.
const insertBeneficiary = `
INSERT INTO beneficiaries (
    id, owner_id, first_name, last_name, email, rut, phone, bank,
    account_type, account_number, created_at
)
SELECT ?, u.id, ?, ?, ?, ?, ?, ?, ?, ?, ?
FROM users u
WHERE u.rut = ?`

func (q *queries) InsertBeneficiary(ctx context.Context, ownerRut string, b domain.Beneficiary) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertBeneficiary,
		b.ID, b.FirstName, b.LastName, b.Email, b.NationalID, b.Phone, b.Bank,
		b.AccountType, b.AccountNumber, b.CreatedAt, ownerRut,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTransfers = `
SELECT t.id, t.recipient_name, t.email, t.rut, t.bank, t.account_type, t.amount, t.created_at
FROM transfers t
WHERE t.owner_id = ?
ORDER BY t.created_at DESC, t.id DESC`

func (q *queries) ListTransfers(ctx context.Context, ownerID string) ([]domain.Transfer, error) {
	rows, err := q.db.QueryContext(ctx, listTransfers, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Transfer, 0)
	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(
			&t.ID, &t.RecipientName, &t.RecipientEmail, &t.RecipientNationalID,
			&t.Bank, &t.AccountType, &t.Amount, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const insertTransfer = `
INSERT INTO transfers (
    id, owner_id, recipient_name, email, rut, bank, account_type, amount, created_at
)
SELECT ?, u.id, ?, ?, ?, ?, ?, ?, ?
FROM users u
WHERE u.rut = ?`

func (q *queries) InsertTransfer(ctx context.Context, ownerRut string, t domain.Transfer) (int64, error) {
	res, err := q.db.ExecContext(ctx, insertTransfer,
		t.ID, t.RecipientName, t.RecipientEmail, t.RecipientNationalID, t.Bank,
		t.AccountType, t.Amount, t.CreatedAt, ownerRut,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
