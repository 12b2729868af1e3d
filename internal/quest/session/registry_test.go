package session_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aussiebroadwan/cardquest/internal/quest/session"
	"github.com/stretchr/testify/require"
)

func TestRegistryPutGetTake(t *testing.T) {
	r := session.NewRegistry[string, int]()

	_, ok := r.Get("a")
	require.False(t, ok)

	r.Put("a", 1)
	r.Put("a", 2)
	v, ok := r.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, r.Len())

	v, ok = r.Take("a")
	require.True(t, ok)
	require.Equal(t, 2, v)

	_, ok = r.Take("a")
	require.False(t, ok)
	require.Zero(t, r.Len())
}

func TestRegistryDelete(t *testing.T) {
	r := session.NewRegistry[int64, string]()
	r.Put(7, "x")
	require.True(t, r.Delete(7))
	require.False(t, r.Delete(7))
}

func TestRegistrySweep(t *testing.T) {
	r := session.NewRegistry[int, int]()
	for i := range 10 {
		r.Put(i, i)
	}

	removed := r.Sweep(func(v int) bool { return v%2 == 0 })
	require.Equal(t, 5, removed)
	require.Equal(t, 5, r.Len())

	_, ok := r.Get(4)
	require.False(t, ok)
	_, ok = r.Get(5)
	require.True(t, ok)
}

func TestRegistryTakeIsSingleUse(t *testing.T) {
	r := session.NewRegistry[string, struct{}]()
	r.Put("q", struct{}{})

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := r.Take("q"); ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, wins.Load())
}

func TestRegistryUpdate(t *testing.T) {
	r := session.NewRegistry[string, int]()

	require.False(t, r.Update("a", func(v int) (int, bool) { return v + 1, true }))
	_, ok := r.Get("a")
	require.False(t, ok, "update must not insert")

	r.Put("a", 1)
	require.True(t, r.Update("a", func(v int) (int, bool) { return v + 1, true }))
	require.False(t, r.Update("a", func(v int) (int, bool) { return 100, false }))

	v, _ := r.Get("a")
	require.Equal(t, 2, v)
}

func TestRegistryDeleteIf(t *testing.T) {
	r := session.NewRegistry[string, int]()
	r.Put("a", 1)

	require.False(t, r.DeleteIf("a", func(v int) bool { return v == 2 }))
	require.Equal(t, 1, r.Len())

	require.True(t, r.DeleteIf("a", func(v int) bool { return v == 1 }))
	require.Zero(t, r.Len())
	require.False(t, r.DeleteIf("a", func(int) bool { return true }))
}
