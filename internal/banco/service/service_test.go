package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/service"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/internal/banco/store/drivers/sqlite"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

// fakeClock returns successive instants one minute apart.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 2, 8, 15, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

type recordedEvent struct {
	key  string
	body any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{key: key, body: body})
	return p.err
}

type countingRecorder struct {
	mu            sync.Mutex
	registered    int
	loginFailures int
	beneficiaries int
	transfers     int
	amount        int64
}

func (r *countingRecorder) UserRegistered()   { r.mu.Lock(); r.registered++; r.mu.Unlock() }
func (r *countingRecorder) LoginFailed()      { r.mu.Lock(); r.loginFailures++; r.mu.Unlock() }
func (r *countingRecorder) BeneficiaryAdded() { r.mu.Lock(); r.beneficiaries++; r.mu.Unlock() }
func (r *countingRecorder) TransferIssued(amount int64) {
	r.mu.Lock()
	r.transfers++
	r.amount += amount
	r.mu.Unlock()
}

type fixture struct {
	store         store.Store
	users         *service.UserService
	beneficiaries *service.BeneficiaryService
	transfers     *service.TransferService
	events        *fakePublisher
	metrics       *countingRecorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := newTestStore(t)
	clock := newFakeClock()
	events := &fakePublisher{}
	rec := &countingRecorder{}

	return &fixture{
		store:         st,
		users:         &service.UserService{Store: st, Metrics: rec, Now: clock.Now},
		beneficiaries: &service.BeneficiaryService{Store: st, Events: events, Metrics: rec, Now: clock.Now},
		transfers:     &service.TransferService{Store: st, Events: events, Metrics: rec, Now: clock.Now},
		events:        events,
		metrics:       rec,
	}
}

func (f *fixture) register(t *testing.T, rut, email string) domain.User {
	t.Helper()

	u, err := f.users.Register(context.Background(), domain.NewUser{
		Name:       "Usuario " + rut,
		Email:      email,
		NationalID: rut,
		Password:   "secreto123",
	})
	require.NoError(t, err)
	return u
}

func beneficiary(rut string) domain.Beneficiary {
	return domain.Beneficiary{
		FirstName:     "María",
		LastName:      "González",
		Email:         "maria@example.com",
		NationalID:    rut,
		Phone:         "+56912345678",
		Bank:          "Banco Estado",
		AccountType:   "Vista",
		AccountNumber: 123456,
	}
}

func transfer(rut string, amount int64) domain.Transfer {
	return domain.Transfer{
		RecipientName:       "María González",
		RecipientEmail:      "maria@example.com",
		RecipientNationalID: rut,
		Bank:                "Banco Estado",
		AccountType:         "Vista",
		Amount:              amount,
	}
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "87654321-4", "cliente@example.com")

	_, err := f.beneficiaries.Add(ctx, "87654321-4", beneficiary("11111111-1"))
	require.NoError(t, err)

	_, err = f.transfers.Issue(ctx, "87654321-4", transfer("11111111-1", 50000))
	require.NoError(t, err)

	history, err := f.transfers.History(ctx, "87654321-4")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, int64(50000), history[0].Amount)
	require.Equal(t, "Banco Estado", history[0].Bank)

	list, err := f.beneficiaries.List(ctx, "87654321-4")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.Equal(t, 1, f.metrics.registered)
	require.Equal(t, 1, f.metrics.beneficiaries)
	require.Equal(t, int64(50000), f.metrics.amount)

	require.Len(t, f.events.events, 2)
	require.Equal(t, service.EventBeneficiaryCreated, f.events.events[0].key)
	require.Equal(t, service.EventTransferCreated, f.events.events[1].key)
	ev := f.events.events[1].body.(service.TransferCreatedEvent)
	require.Equal(t, "87654321-4", ev.OwnerRUT)
	require.Equal(t, int64(50000), ev.Amount)
}

func TestEventsCarryRequestID(t *testing.T) {
	f := newFixture(t)
	f.register(t, "87654321-4", "cliente@example.com")
	ctx := slogx.WithRequestID(context.Background(), "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV")

	_, err := f.beneficiaries.Add(ctx, "87654321-4", beneficiary("11111111-1"))
	require.NoError(t, err)
	_, err = f.transfers.Issue(ctx, "87654321-4", transfer("11111111-1", 10))
	require.NoError(t, err)

	require.Len(t, f.events.events, 2)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", f.events.events[0].body.(service.BeneficiaryCreatedEvent).RequestID)
	require.Equal(t, "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", f.events.events[1].body.(service.TransferCreatedEvent).RequestID)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")
	f.register(t, "87654321-4", "cliente@example.com")

	_, err := f.transfers.Issue(context.Background(), "87654321-4", transfer("11111111-1", 10))
	require.NoError(t, err)

	history, err := f.transfers.History(context.Background(), "87654321-4")
	require.NoError(t, err)
	require.Len(t, history, 1)
}
