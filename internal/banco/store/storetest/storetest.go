// Package storetest is the behaviour every store driver must share. Drivers
// call Run from their own tests with a constructor for a fresh, migrated
// store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/pkg/idx"
	"github.com/stretchr/testify/require"
)

// NewStoreFunc returns an empty store with its schema applied. It owns
// cleanup through t.
type NewStoreFunc func(t *testing.T) store.Store

// Run exercises the Users contract against the driver built by newStore.
func Run(t *testing.T, newStore NewStoreFunc) {
	tests := []struct {
		name string
		fn   func(*testing.T, NewStoreFunc)
	}{
		{"InsertUser", testInsertUser},
		{"FindByNationalIDProjections", testFindByNationalIDProjections},
		{"EmptyListsAreNotNil", testEmptyListsAreNotNil},
		{"ExistsAndFindByNationalIDOrEmail", testExistsAndFindByNationalIDOrEmail},
		{"AppendBeneficiary", testAppendBeneficiary},
		{"AppendBeneficiaryConcurrentDuplicates", testAppendBeneficiaryConcurrentDuplicates},
		{"AppendTransferOrdering", testAppendTransferOrdering},
		{"UpdatePasswordHash", testUpdatePasswordHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { tt.fn(t, newStore) })
	}
}

func seedUser(t *testing.T, st store.Store, rut, email string) domain.User {
	t.Helper()

	u, err := st.Users().InsertUser(context.Background(), domain.User{
		ID:           idx.New().String(),
		Name:         "Usuario " + rut,
		Email:        email,
		NationalID:   rut,
		PasswordHash: "$argon2id$fake",
	})
	require.NoError(t, err)
	return u
}

func testBeneficiary(rut string) domain.Beneficiary {
	return domain.Beneficiary{
		ID:            idx.New().String(),
		FirstName:     "María",
		LastName:      "González",
		Email:         "maria@example.com",
		NationalID:    rut,
		Phone:         "+56912345678",
		Bank:          "Banco Estado",
		AccountType:   "Vista",
		AccountNumber: 123456,
		CreatedAt:     time.Now(),
	}
}

func testInsertUser(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)

	u := seedUser(t, st, "87654321-4", "ana@example.com")
	require.Empty(t, u.PasswordHash)
	require.NotNil(t, u.Beneficiaries)
	require.NotNil(t, u.Transfers)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := st.Users().InsertUser(ctx, domain.User{
			ID: idx.New().String(), Name: "Otra", Email: "ana@example.com", NationalID: "11111111-1", PasswordHash: "x",
		})
		require.ErrorIs(t, err, store.ErrDuplicateEmail)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("duplicate rut", func(t *testing.T) {
		_, err := st.Users().InsertUser(ctx, domain.User{
			ID: idx.New().String(), Name: "Otra", Email: "otra@example.com", NationalID: "87654321-4", PasswordHash: "x",
		})
		require.ErrorIs(t, err, store.ErrDuplicateNationalID)
	})
}

func testFindByNationalIDProjections(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")

	_, err := st.Users().AppendBeneficiary(ctx, "87654321-4", testBeneficiary("11111111-1"))
	require.NoError(t, err)
	_, err = st.Users().AppendTransfer(ctx, "87654321-4", domain.Transfer{
		ID: idx.New().String(), RecipientName: "María", RecipientEmail: "maria@example.com",
		RecipientNationalID: "11111111-1", Bank: "Banco Estado", AccountType: "Vista",
		Amount: 50000, CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	t.Run("identity only", func(t *testing.T) {
		u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectIdentity)
		require.NoError(t, err)
		require.Equal(t, "ana@example.com", u.Email)
		require.Nil(t, u.Beneficiaries)
		require.Nil(t, u.Transfers)
		require.Empty(t, u.PasswordHash)
	})

	t.Run("beneficiaries only", func(t *testing.T) {
		u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectBeneficiaries)
		require.NoError(t, err)
		require.Len(t, u.Beneficiaries, 1)
		require.Equal(t, int64(123456), u.Beneficiaries[0].AccountNumber)
		require.Nil(t, u.Transfers)
	})

	t.Run("transfers only", func(t *testing.T) {
		u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectTransfers)
		require.NoError(t, err)
		require.Len(t, u.Transfers, 1)
		require.Equal(t, int64(50000), u.Transfers[0].Amount)
		require.Nil(t, u.Beneficiaries)
	})

	t.Run("credentials", func(t *testing.T) {
		u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectCredentials)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$fake", u.PasswordHash)
	})

	t.Run("unknown rut", func(t *testing.T) {
		_, err := st.Users().FindByNationalID(ctx, "12345678-5", store.ProjectProfile)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testUpdatePasswordHash(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")
	seedUser(t, st, "11111111-1", "otro@example.com")

	n, err := st.Users().UpdatePasswordHash(ctx, "87654321-4", "$argon2id$rehashed")
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectCredentials)
	require.NoError(t, err)
	require.Equal(t, "$argon2id$rehashed", u.PasswordHash)

	other, err := st.Users().FindByNationalID(ctx, "11111111-1", store.ProjectCredentials)
	require.NoError(t, err)
	require.Equal(t, "$argon2id$fake", other.PasswordHash)

	n, err = st.Users().UpdatePasswordHash(ctx, "12345678-5", "$argon2id$rehashed")
	require.NoError(t, err)
	require.Zero(t, n)
}

func testEmptyListsAreNotNil(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")

	u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectProfile)
	require.NoError(t, err)
	require.NotNil(t, u.Beneficiaries)
	require.Empty(t, u.Beneficiaries)
	require.NotNil(t, u.Transfers)
	require.Empty(t, u.Transfers)
}

func testExistsAndFindByNationalIDOrEmail(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")

	ok, err := st.Users().ExistsByNationalID(ctx, "87654321-4")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.Users().ExistsByNationalID(ctx, "12345678-5")
	require.NoError(t, err)
	require.False(t, ok)

	u, err := st.Users().FindByNationalIDOrEmail(ctx, "12345678-5", "ana@example.com")
	require.NoError(t, err)
	require.Equal(t, "87654321-4", u.NationalID)

	_, err = st.Users().FindByNationalIDOrEmail(ctx, "12345678-5", "nadie@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testAppendBeneficiary(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")
	seedUser(t, st, "12345678-5", "juan@example.com")

	t.Run("missing owner modifies nothing", func(t *testing.T) {
		n, err := st.Users().AppendBeneficiary(ctx, "1000005-K", testBeneficiary("11111111-1"))
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("unique per owner", func(t *testing.T) {
		n, err := st.Users().AppendBeneficiary(ctx, "87654321-4", testBeneficiary("11111111-1"))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		_, err = st.Users().AppendBeneficiary(ctx, "87654321-4", testBeneficiary("11111111-1"))
		require.ErrorIs(t, err, store.ErrDuplicateBeneficiary)
	})

	t.Run("same rut under another owner", func(t *testing.T) {
		n, err := st.Users().AppendBeneficiary(ctx, "12345678-5", testBeneficiary("11111111-1"))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	})
}

func testAppendBeneficiaryConcurrentDuplicates(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Users().AppendBeneficiary(ctx, "87654321-4", testBeneficiary("11111111-1"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, store.ErrDuplicateBeneficiary):
				conflicts++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, conflicts)
}

func testAppendTransferOrdering(t *testing.T, newStore NewStoreFunc) {
	ctx := context.Background()
	st := newStore(t)
	seedUser(t, st, "87654321-4", "ana@example.com")

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, amount := range []int64{100, 200, 300} {
		n, err := st.Users().AppendTransfer(ctx, "87654321-4", domain.Transfer{
			ID: idx.New().String(), RecipientName: "María", RecipientEmail: "maria@example.com",
			RecipientNationalID: "11111111-1", Bank: "BCI", AccountType: "Corriente",
			Amount: amount, CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	}

	n, err := st.Users().AppendTransfer(ctx, "1000005-K", domain.Transfer{
		ID: idx.New().String(), Amount: 1, CreatedAt: base,
	})
	require.NoError(t, err)
	require.Zero(t, n)

	u, err := st.Users().FindByNationalID(ctx, "87654321-4", store.ProjectTransfers)
	require.NoError(t, err)
	require.Len(t, u.Transfers, 3)
	require.Equal(t, int64(300), u.Transfers[0].Amount)
	require.Equal(t, int64(100), u.Transfers[2].Amount)
	require.True(t, u.Transfers[0].CreatedAt.Equal(base.Add(2*time.Hour)))
}
