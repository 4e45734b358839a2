package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// Refinements of ErrAlreadyExists naming the unique key that collided.
	ErrDuplicateEmail       = fmt.Errorf("%w: email", ErrAlreadyExists)
	ErrDuplicateNationalID  = fmt.Errorf("%w: rut", ErrAlreadyExists)
	ErrDuplicateBeneficiary = fmt.Errorf("%w: beneficiary rut", ErrAlreadyExists)
)

// Projection selects which owned collections a read loads. Identity fields
// (id, name, email, rut) are always returned. The password hash is only
// returned when ProjectCredentials is requested.
type Projection uint8

const (
	ProjectBeneficiaries Projection = 1 << iota
	ProjectTransfers
	ProjectCredentials
)

const (
	ProjectIdentity Projection = 0
	ProjectProfile             = ProjectBeneficiaries | ProjectTransfers
)

// Has reports whether all bits of want are set.
func (p Projection) Has(want Projection) bool { return p&want == want }

// Info describes the backing database for health reporting. It never
// contains credentials.
type Info struct {
	Driver string
	Host   string
	Name   string
}

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres, mongo) implement this. Every mutation the services need is a
// single atomic statement, and uniqueness is enforced by the database, so
// there is no transaction API.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Info reports which database the store is connected to.
	Info() Info

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Users is the identity record store: users with their beneficiaries and
// transfer history.
type Users interface {
	// FindByNationalID loads a user by canonical RUT, with the owned lists
	// selected by proj. Lists that are not projected are nil; projected lists
	// are non-nil even when empty.
	FindByNationalID(ctx context.Context, rut string, proj Projection) (domain.User, error)

	// ExistsByNationalID checks for a user without loading any lists.
	ExistsByNationalID(ctx context.Context, rut string) (bool, error)

	// FindByNationalIDOrEmail returns any user matching either key, with
	// identity fields only, so callers can tell which key collided.
	FindByNationalIDOrEmail(ctx context.Context, rut, email string) (domain.User, error)

	// AppendBeneficiary adds b to the owner's list and returns the number of
	// users modified: 0 when the owner does not exist. A beneficiary with the
	// same RUT under the same owner yields ErrDuplicateBeneficiary.
	AppendBeneficiary(ctx context.Context, ownerRUT string, b domain.Beneficiary) (int64, error)

	// AppendTransfer adds t to the owner's history and returns the number of
	// users modified: 0 when the owner does not exist.
	AppendTransfer(ctx context.Context, ownerRUT string, t domain.Transfer) (int64, error)

	// InsertUser creates a user. Duplicate keys yield ErrDuplicateEmail or
	// ErrDuplicateNationalID.
	InsertUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdatePasswordHash replaces the stored hash and returns the number of
	// users matched: 0 when no user has that RUT.
	UpdatePasswordHash(ctx context.Context, rut, hash string) (int64, error)
}
