package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/mibanco/internal/banco/domain"
	"github.com/aussiebroadwan/mibanco/internal/banco/store"
	"github.com/aussiebroadwan/mibanco/pkg/cryptox"
	"github.com/aussiebroadwan/mibanco/pkg/idx"
	"github.com/aussiebroadwan/mibanco/pkg/metrics"
	"github.com/aussiebroadwan/mibanco/pkg/rut"
	"github.com/aussiebroadwan/mibanco/pkg/slogx"
)

type UserService struct {
	Store   store.Store
	Metrics metrics.Recorder
	Now     func() time.Time
	Hash    func(password string) (string, error) // nil means cryptox.HashPassword

	decoyMu   sync.Mutex
	decoyHash string
}

func (s *UserService) hash(password string) (string, error) {
	if s.Hash != nil {
		return s.Hash(password)
	}
	return cryptox.HashPassword(password)
}

// Register creates a user after checking that neither the email nor the RUT
// is taken. The database unique keys settle concurrent registrations; the
// loser gets the same error as the pre-check would have returned.
func (s *UserService) Register(ctx context.Context, in domain.NewUser) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Canonical RUT with a matching check digit.
	nationalID, err := rut.Parse(in.NationalID)
	if err != nil {
		return domain.User{}, ErrInvalidNationalID
	}

	// 2. Name the colliding field for the client.
	existing, err := s.Store.Users().FindByNationalIDOrEmail(ctx, nationalID, in.Email)
	switch {
	case err == nil:
		if existing.Email == in.Email {
			log.Info("registration rejected: email taken", slog.String("rut", nationalID))
			return domain.User{}, ErrEmailTaken
		}
		log.Info("registration rejected: rut taken", slog.String("rut", nationalID))
		return domain.User{}, ErrNationalIDTaken
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to check existing user", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Hash and insert.
	hash, err := s.hash(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowUTC(s.Now)
	user, err := s.Store.Users().InsertUser(ctx, domain.User{
		ID:           idx.NewAt(now).String(),
		Name:         in.Name,
		Email:        in.Email,
		NationalID:   nationalID,
		PasswordHash: hash,
		CreatedAt:    now,
	})
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		return domain.User{}, ErrEmailTaken
	case errors.Is(err, store.ErrDuplicateNationalID):
		return domain.User{}, ErrNationalIDTaken
	case err != nil:
		log.Error("failed to insert user", slog.Any("error", err))
		return domain.User{}, err
	}

	recorderOr(s.Metrics).UserRegistered()
	log.Info("user registered", slog.String("rut", nationalID))

	user.PasswordHash = ""
	return user, nil
}

// Login verifies a RUT and password pair. An unknown RUT and a wrong
// password both yield ErrInvalidCredentials, after the same amount of work.
func (s *UserService) Login(ctx context.Context, nationalID, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	canonical, err := rut.Parse(nationalID)
	if err != nil {
		s.rejectLogin(ctx, nationalID, password)
		return domain.User{}, ErrInvalidCredentials
	}

	user, err := s.Store.Users().FindByNationalID(ctx, canonical, store.ProjectProfile|store.ProjectCredentials)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.rejectLogin(ctx, canonical, password)
		return domain.User{}, ErrInvalidCredentials
	case err != nil:
		log.Error("failed to load user for login", slog.Any("error", err))
		return domain.User{}, err
	}

	switch err := cryptox.VerifyPassword(password, user.PasswordHash); {
	case errors.Is(err, cryptox.ErrMismatch):
		recorderOr(s.Metrics).LoginFailed()
		log.Info("login rejected", slog.String("rut", canonical))
		return domain.User{}, ErrInvalidCredentials
	case err != nil:
		log.Error("stored password hash is unreadable", slog.String("rut", canonical), slog.Any("error", err))
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}

	if cryptox.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, canonical, password)
	}
	log.Info("login succeeded", slog.String("rut", canonical))

	user.PasswordHash = ""
	domain.SortNewestFirst(user.Transfers)
	return user, nil
}

// upgradeHash replaces a legacy hash with argon2id once the password is
// known to be right. Failures only log: the login itself stands.
func (s *UserService) upgradeHash(ctx context.Context, nationalID, password string) {
	log := slogx.FromContext(ctx)

	hash, err := s.hash(password)
	if err != nil {
		log.Warn("failed to rehash legacy password", slog.String("rut", nationalID), slog.Any("error", err))
		return
	}
	if _, err := s.Store.Users().UpdatePasswordHash(ctx, nationalID, hash); err != nil {
		log.Warn("failed to store rehashed password", slog.String("rut", nationalID), slog.Any("error", err))
		return
	}
	log.Info("legacy password hash upgraded", slog.String("rut", nationalID))
}

// decoy returns the hash that rejected logins verify against. A failed
// computation is logged and retried on the next rejection.
func (s *UserService) decoy(ctx context.Context) string {
	s.decoyMu.Lock()
	defer s.decoyMu.Unlock()

	if s.decoyHash == "" {
		hash, err := s.hash("mibanco-decoy")
		if err != nil {
			slogx.FromContext(ctx).Error("failed to compute decoy password hash", slog.Any("error", err))
			return ""
		}
		s.decoyHash = hash
	}
	return s.decoyHash
}

// rejectLogin burns one hash verification so an unknown RUT is not faster
// to reject than a wrong password.
func (s *UserService) rejectLogin(ctx context.Context, nationalID, password string) {
	if decoy := s.decoy(ctx); decoy != "" {
		_ = cryptox.VerifyPassword(password, decoy)
	}

	recorderOr(s.Metrics).LoginFailed()
	slogx.FromContext(ctx).Info("login rejected", slog.String("rut", nationalID))
}
