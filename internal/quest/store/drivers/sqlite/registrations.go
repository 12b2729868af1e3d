package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
)

const (
	insertRegistration = `INSERT INTO users_reg (hash, id, prefix, created_at) VALUES (?, ?, ?, ?)`

	selectRegistrationByPrefix = `SELECT hash, id, prefix, created_at FROM users_reg WHERE prefix = ?`

	selectRegistrationByHash = `SELECT hash, id, prefix, created_at FROM users_reg WHERE hash = ?`

	takeRegistrationByPrefix = `DELETE FROM users_reg WHERE prefix = ? RETURNING hash, id, prefix, created_at`

	deleteRegistrationsBefore = `DELETE FROM users_reg WHERE created_at < ?`
)

type registrationsRepo struct {
	q dbtx
}

func (r *registrationsRepo) CreateRegistration(ctx context.Context, reg domain.Registration) error {
	_, err := r.q.ExecContext(ctx, insertRegistration,
		reg.CardHash,
		reg.PendingID,
		reg.Prefix,
		toMillis(nowOr(reg.CreatedAt)),
	)
	return mapUniqueViolation(err)
}

func (r *registrationsRepo) GetRegistrationByPrefix(ctx context.Context, prefix string) (domain.Registration, error) {
	return r.scanOne(ctx, selectRegistrationByPrefix, prefix)
}

func (r *registrationsRepo) GetRegistrationByCardHash(ctx context.Context, cardHash string) (domain.Registration, error) {
	return r.scanOne(ctx, selectRegistrationByHash, cardHash)
}

func (r *registrationsRepo) TakeRegistrationByPrefix(ctx context.Context, prefix string) (domain.Registration, error) {
	return r.scanOne(ctx, takeRegistrationByPrefix, prefix)
}

func (r *registrationsRepo) DeleteRegistrationsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, deleteRegistrationsBefore, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *registrationsRepo) scanOne(ctx context.Context, query string, arg string) (domain.Registration, error) {
	var (
		reg     domain.Registration
		created int64
	)
	err := r.q.QueryRowContext(ctx, query, arg).Scan(&reg.CardHash, &reg.PendingID, &reg.Prefix, &created)
	if err != nil {
		return domain.Registration{}, mapNotFound(err)
	}
	reg.CreatedAt = fromMillis(created)
	return reg, nil
}
