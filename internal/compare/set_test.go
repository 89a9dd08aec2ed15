package compare

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRejectsSixth(t *testing.T) {
	t.Parallel()

	s, err := NewSet("a", "b", "c", "d", "e")
	require.NoError(t, err)
	require.True(t, s.Full())

	err = s.Add("f")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComparisonLimitExceeded))
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, s.Keys())
	assert.False(t, s.Contains("f"))
}

func TestSetAddExistingIsNoop(t *testing.T) {
	t.Parallel()

	s, err := NewSet("a", "b", "c", "d", "e")
	require.NoError(t, err)

	require.NoError(t, s.Add("c"))
	assert.Equal(t, 5, s.Len())
}

func TestSetRemoveAndToggle(t *testing.T) {
	t.Parallel()

	var s Set
	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("b"))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Toggle("a"))
	assert.Equal(t, []string{"b"}, s.Keys())

	assert.False(t, s.Remove("zzz"))
	assert.True(t, s.Remove("b"))
	assert.Zero(t, s.Len())
}

func TestSetToggleOnFullSet(t *testing.T) {
	t.Parallel()

	s, err := NewSet("a", "b", "c", "d", "e")
	require.NoError(t, err)

	assert.True(t, errors.Is(s.Toggle("f"), ErrComparisonLimitExceeded))
	require.NoError(t, s.Toggle("a"))
	require.NoError(t, s.Toggle("f"))
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, s.Keys())
}

func TestNewSetTooMany(t *testing.T) {
	t.Parallel()

	_, err := NewSet("a", "b", "c", "d", "e", "f")
	assert.True(t, errors.Is(err, ErrComparisonLimitExceeded))

	s, err := NewSet("a", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestSetKeysIsCopy(t *testing.T) {
	t.Parallel()

	s, err := NewSet("a")
	require.NoError(t, err)
	k := s.Keys()
	k[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.Keys())

	s.Clear()
	assert.Zero(t, s.Len())
}
