package sqlite

import (
	"context"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
)

const (
	selectUserByID = `SELECT id, card_hash, username, created_at FROM users WHERE id = ?`

	selectUserByCardHash = `SELECT id, card_hash, username, created_at FROM users WHERE card_hash = ?`

	existsUsername = `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	existsCardHash = `SELECT EXISTS(SELECT 1 FROM users WHERE card_hash = ?)`

	insertUser = `INSERT INTO users (id, card_hash, username, created_at) VALUES (?, ?, ?, ?)`
)

type usersRepo struct {
	q dbtx
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, selectUserByID, id)
}

func (r *usersRepo) GetUserByCardHash(ctx context.Context, cardHash string) (domain.User, error) {
	return r.getOne(ctx, selectUserByCardHash, cardHash)
}

func (r *usersRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, existsUsername, username)
}

func (r *usersRepo) CardHashExists(ctx context.Context, cardHash string) (bool, error) {
	return r.exists(ctx, existsCardHash, cardHash)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, insertUser,
		u.ID,
		u.CardHash,
		u.Username,
		toMillis(nowOr(u.CreatedAt)),
	)
	return mapUniqueViolation(err)
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	var (
		u       domain.User
		created int64
	)
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.CardHash, &u.Username, &created)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(created)
	return u, nil
}

func (r *usersRepo) exists(ctx context.Context, query string, arg string) (bool, error) {
	var found bool
	if err := r.q.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
