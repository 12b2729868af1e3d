package idx_test

import (
	"testing"

	"github.com/aussiebroadwan/cardquest/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.False(t, id.IsZero())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseNormalises(t *testing.T) {
	id, err := idx.Parse("  6BA7B810-9DAD-11D1-80B4-00C04FD430C8 ")
	require.NoError(t, err)
	require.Equal(t, idx.ID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), id)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-uuid", "6ba7b810"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, in)
	}
}

func TestMustParse(t *testing.T) {
	require.Panics(t, func() { idx.MustParse("nope") })
	require.NotPanics(t, func() { idx.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8") })
}
