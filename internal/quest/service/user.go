package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/store"
	"github.com/aussiebroadwan/cardquest/pkg/cryptox"
	"github.com/aussiebroadwan/cardquest/pkg/idx"
	"github.com/aussiebroadwan/cardquest/pkg/slogx"
)

// UserService is the canonical account registry. Accounts are immutable once
// created.
type UserService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	uid, err := idx.Parse(id)
	if err != nil {
		return domain.User{}, ErrInvalidUserID
	}

	u, err := s.Store.Users().GetUserByID(ctx, uid.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user",
			slog.String("user_id", uid.String()),
			slog.Any("error", err),
		)
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUserByCardHash(ctx context.Context, cardHash string) (domain.User, error) {
	hash, err := cryptox.NormalizeCardHash(cardHash)
	if err != nil {
		return domain.User{}, ErrInvalidCardHash
	}

	u, err := s.Store.Users().GetUserByCardHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user by card hash", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("get user by card hash: %w", err)
	}
	return u, nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	name, err := NormalizeUsername(username)
	if err != nil {
		return false, err
	}
	return s.Store.Users().UsernameExists(ctx, name)
}

func (s *UserService) CardHashExists(ctx context.Context, cardHash string) (bool, error) {
	hash, err := cryptox.NormalizeCardHash(cardHash)
	if err != nil {
		return false, ErrInvalidCardHash
	}
	return s.Store.Users().CardHashExists(ctx, hash)
}

// Create inserts an account directly. Registration normally goes through
// RegistrationService.Complete, which also consumes the token.
func (s *UserService) Create(ctx context.Context, id, cardHash, username string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	uid, err := idx.Parse(id)
	if err != nil {
		return domain.User{}, ErrInvalidUserID
	}
	hash, err := cryptox.NormalizeCardHash(cardHash)
	if err != nil {
		return domain.User{}, ErrInvalidCardHash
	}
	name, err := NormalizeUsername(username)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:        uid.String(),
		CardHash:  hash,
		Username:  name,
		CreatedAt: s.now(),
	}
	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("user already exists", slog.String("username", name))
			return domain.User{}, ErrUserExists
		}
		log.Error("failed to create user", slog.Any("error", err))
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("user created", slog.String("user_id", u.ID), slog.String("username", u.Username))
	return u, nil
}
