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

// RegistrationService issues one-time registration tokens for card hashes and
// turns a redeemed token into an account.
type RegistrationService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *RegistrationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue reserves an account id for cardHash and returns the outstanding
// registration. Issuing again for a hash that already holds a token returns
// that token unchanged.
func (s *RegistrationService) Issue(ctx context.Context, cardHash string) (domain.Registration, error) {
	log := slogx.FromContext(ctx)

	hash, err := cryptox.NormalizeCardHash(cardHash)
	if err != nil {
		log.Warn("registration requested with malformed card hash")
		return domain.Registration{}, ErrInvalidCardHash
	}

	var reg domain.Registration
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		registered, err := (&UserService{Store: tx}).CardHashExists(ctx, hash)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}

		existing, err := tx.Registrations().GetRegistrationByCardHash(ctx, hash)
		switch {
		case err == nil:
			reg = existing
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		reg = domain.Registration{
			CardHash:  hash,
			PendingID: idx.New().String(),
			Prefix:    cryptox.TokenPrefix(hash),
			CreatedAt: s.now(),
		}
		if err := tx.Registrations().CreateRegistration(ctx, reg); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrTokenCollision
			}
			return err
		}
		return nil
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRegistered):
		log.Warn("registration requested for registered card", slog.String("token", cryptox.TokenPrefix(hash)))
		return domain.Registration{}, err
	case errors.Is(err, ErrTokenCollision):
		log.Warn("registration token collides with an outstanding one", slog.String("token", cryptox.TokenPrefix(hash)))
		return domain.Registration{}, err
	default:
		log.Error("failed to issue registration", slog.Any("error", err))
		return domain.Registration{}, fmt.Errorf("issue registration: %w", err)
	}

	log.Info("registration issued",
		slog.String("token", reg.Prefix),
		slog.String("pending_id", reg.PendingID),
	)
	return reg, nil
}

// Lookup resolves a token without consuming it.
func (s *RegistrationService) Lookup(ctx context.Context, token string) (domain.Registration, error) {
	prefix, err := cryptox.NormalizeTokenPrefix(token)
	if err != nil {
		return domain.Registration{}, ErrInvalidToken
	}

	reg, err := s.Store.Registrations().GetRegistrationByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Registration{}, ErrInvalidToken
		}
		slogx.FromContext(ctx).Error("failed to look up registration", slog.Any("error", err))
		return domain.Registration{}, fmt.Errorf("lookup registration: %w", err)
	}
	return reg, nil
}

// Redeem consumes a token. Of any number of concurrent callers presenting the
// same token, exactly one succeeds; the rest get ErrInvalidToken. Complete
// redeems through a transaction-scoped service so the token only goes away
// together with the new account.
func (s *RegistrationService) Redeem(ctx context.Context, token string) (domain.Registration, error) {
	prefix, err := cryptox.NormalizeTokenPrefix(token)
	if err != nil {
		return domain.Registration{}, ErrInvalidToken
	}

	reg, err := s.Store.Registrations().TakeRegistrationByPrefix(ctx, prefix)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Registration{}, ErrInvalidToken
		}
		slogx.FromContext(ctx).Error("failed to redeem registration", slog.Any("error", err))
		return domain.Registration{}, fmt.Errorf("redeem registration: %w", err)
	}

	slogx.FromContext(ctx).Info("registration redeemed", slog.String("token", prefix))
	return reg, nil
}

// Complete consumes the pending token and creates its account in one
// transaction. Any failure leaves the token redeemable.
func (s *RegistrationService) Complete(ctx context.Context, pending domain.Registration, username string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	name, err := NormalizeUsername(username)
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		regs := &RegistrationService{Store: tx, Now: s.Now}
		users := &UserService{Store: tx, Now: s.Now}

		reg, err := regs.Redeem(ctx, pending.Prefix)
		if err != nil {
			return err
		}
		// The prefix may have been reissued to a different card since the
		// dialogue looked it up.
		if reg.PendingID != pending.PendingID || reg.CardHash != pending.CardHash {
			return ErrInvalidToken
		}

		taken, err := users.UsernameExists(ctx, name)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		user, err = users.Create(ctx, reg.PendingID, reg.CardHash, name)
		if errors.Is(err, ErrUserExists) {
			return ErrUsernameTaken
		}
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrUsernameTaken):
		log.Warn("registration not completed",
			slog.String("token", pending.Prefix),
			slog.String("username", name),
			slog.String("reason", err.Error()),
		)
		return domain.User{}, err
	default:
		log.Error("failed to complete registration",
			slog.String("token", pending.Prefix),
			slog.Any("error", err),
		)
		return domain.User{}, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	log.Info("registration completed",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// PurgeRegistrations drops tokens issued before cutoff.
func (s *RegistrationService) PurgeRegistrations(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.Store.Registrations().DeleteRegistrationsBefore(ctx, cutoff)
}
