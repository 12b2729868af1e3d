package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/cardquest/internal/quest/domain"
	"github.com/aussiebroadwan/cardquest/internal/quest/questionbank"
	"github.com/aussiebroadwan/cardquest/internal/quest/store"
	"github.com/aussiebroadwan/cardquest/internal/quest/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("disk on fire")

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func hashOf(c string) string { return strings.Repeat(c, 64) }

// txBase names the embedded transaction. Embedding store.Tx directly would
// give the field the name Tx and hide the Tx method.
type txBase = store.Tx

// usersOverrideStore behaves like the wrapped store except that repositories
// handed out inside a transaction are replaced by wrap(users).
type usersOverrideStore struct {
	store.Store
	wrap func(store.Users) store.Users
}

func (s usersOverrideStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(usersOverrideTx{txBase: tx, wrap: s.wrap})
	})
}

type usersOverrideTx struct {
	txBase
	wrap func(store.Users) store.Users
}

func (t usersOverrideTx) Users() store.Users { return t.wrap(t.txBase.Users()) }

// failingStore makes account inserts inside a transaction fail.
func failingStore(st store.Store) store.Store {
	return usersOverrideStore{Store: st, wrap: func(u store.Users) store.Users {
		return failingUsers{Users: u}
	}}
}

type failingUsers struct{ store.Users }

func (failingUsers) CreateUser(context.Context, domain.User) error { return errBoom }

// gatedUsers signals entered and then blocks UsernameExists until release is
// closed, reporting every name as taken.
type gatedUsers struct {
	store.Users
	entered chan<- struct{}
	release <-chan struct{}
}

func (g gatedUsers) UsernameExists(context.Context, string) (bool, error) {
	g.entered <- struct{}{}
	<-g.release
	return true, nil
}

func gatedStore(st store.Store, entered chan<- struct{}, release <-chan struct{}) store.Store {
	return usersOverrideStore{Store: st, wrap: func(u store.Users) store.Users {
		return gatedUsers{Users: u, entered: entered, release: release}
	}}
}

type fakeBank map[string][]domain.Question

func (b fakeBank) Categories(context.Context) ([]string, error) {
	cats := make([]string, 0, len(b))
	for c := range b {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	return cats, nil
}

func (b fakeBank) Questions(_ context.Context, category string) ([]domain.Question, error) {
	qs, ok := b[category]
	if !ok {
		return nil, questionbank.ErrUnknownCategory
	}
	return qs, nil
}

func fixedClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000).UTC()
	return func() time.Time { return t }
}
