package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	pool *pgxpool.Pool
}

// Options tunes the connection pool. Zero values keep the pgxpool defaults.
type Options struct {
	MaxConns int32
}

// NewStore connects to databaseURL and verifies the connection with a ping
// bounded by ctx.
func NewStore(ctx context.Context, databaseURL string, opts Options) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Info() store.Info {
	cc := s.pool.Config().ConnConfig
	return store.Info{
		Driver: "postgres",
		Host:   cc.Host + ":" + strconv.Itoa(int(cc.Port)),
		Name:   cc.Database,
	}
}

func (s *Store) Users() store.Users { return &usersRepo{pool: s.pool} }

func mapNotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns a unique violation into the store error naming the
// constraint that fired. Other errors pass through.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "users_email_key":
		return store.ErrDuplicateEmail
	case "users_rut_key":
		return store.ErrDuplicateNationalID
	case "beneficiaries_owner_rut_key":
		return store.ErrDuplicateBeneficiary
	default:
		return store.ErrAlreadyExists
	}
}
