package prefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *MemoryStorage, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	mem := NewMemoryStorage()
	return New(mem, WithClock(clock.Now)), mem, clock
}

func boolPtr(v bool) *bool { return &v }

func TestParseThemeMode(t *testing.T) {
	t.Parallel()
	for _, in := range []string{"light", "DARK", " system "} {
		_, err := ParseThemeMode(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseThemeMode("sepia")
	assert.ErrorIs(t, err, ErrInvalidTheme)
}

func TestTheme_DefaultsToSystem(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	tp, err := s.Theme("")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, tp.Mode)
	assert.Equal(t, 30, tp.TTLDays)
}

func TestTheme_SetAndGet(t *testing.T) {
	t.Parallel()
	s, _, clock := newTestStore(t)

	_, err := s.SetTheme("alice", ThemeDark)
	require.NoError(t, err)

	clock.Advance(29 * 24 * time.Hour)
	tp, err := s.Theme("alice")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, tp.Mode)

	other, err := s.Theme("bob")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, other.Mode)
}

func TestTheme_ExpiredEntryIsCleared(t *testing.T) {
	t.Parallel()
	s, mem, clock := newTestStore(t)

	_, err := s.SetTheme("alice", ThemeLight)
	require.NoError(t, err)
	require.Equal(t, 1, mem.Len())

	clock.Advance(31 * 24 * time.Hour)
	tp, err := s.Theme("alice")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, tp.Mode)
	assert.Equal(t, 0, mem.Len())
}

func TestTheme_CorruptEntryIsCleared(t *testing.T) {
	t.Parallel()
	s, mem, _ := newTestStore(t)

	require.NoError(t, mem.Put("alice_theme_prefs", []byte("{not json")))
	tp, err := s.Theme("alice")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, tp.Mode)
	assert.Equal(t, 0, mem.Len())

	require.NoError(t, mem.Put("alice_theme_prefs", []byte(`{"mode":"sepia","stored_at":"2025-03-01T12:00:00Z"}`)))
	tp, err = s.Theme("alice")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, tp.Mode)
	assert.Equal(t, 0, mem.Len())
}

func TestSetTheme_RejectsInvalid(t *testing.T) {
	t.Parallel()
	s, mem, _ := newTestStore(t)

	_, err := s.SetTheme("alice", ThemeMode("sepia"))
	assert.ErrorIs(t, err, ErrInvalidTheme)
	assert.Equal(t, 0, mem.Len())
}

func TestInvalidClient(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	_, err := s.Theme("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidClient)
	_, err = s.Sidebar("a b", DeviceDesktop)
	assert.ErrorIs(t, err, ErrInvalidClient)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode       ThemeMode
		systemDark bool
		want       ThemeMode
	}{
		{ThemeLight, true, ThemeLight},
		{ThemeDark, false, ThemeDark},
		{ThemeSystem, true, ThemeDark},
		{ThemeSystem, false, ThemeLight},
		{"", false, ThemeLight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.mode, tt.systemDark), "%s/%v", tt.mode, tt.systemDark)
	}
}

func TestResolvedTheme(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	got, err := s.ResolvedTheme("alice", true)
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got)

	_, err = s.SetTheme("alice", ThemeLight)
	require.NoError(t, err)
	got, err = s.ResolvedTheme("alice", true)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)
}

func TestSidebar_Defaults(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestStore(t)

	sb, err := s.Sidebar("alice", DeviceMobile)
	require.NoError(t, err)
	assert.False(t, sb.Open)
	assert.Nil(t, sb.Pinned)
	assert.Equal(t, DeviceMobile, sb.DeviceContext)

	sb, err = s.Sidebar("alice", "")
	require.NoError(t, err)
	assert.Equal(t, DeviceDesktop, sb.DeviceContext)
}

func TestUpdateSidebar_MergesAndStamps(t *testing.T) {
	t.Parallel()
	s, _, clock := newTestStore(t)

	sb, err := s.UpdateSidebar("alice", SidebarUpdate{Open: boolPtr(true)}, DeviceDesktop)
	require.NoError(t, err)
	assert.True(t, sb.Open)
	require.NotNil(t, sb.LastInteraction)
	assert.Equal(t, clock.Now(), *sb.LastInteraction)

	clock.Advance(time.Hour)
	sb, err = s.UpdateSidebar("alice", SidebarUpdate{Pinned: boolPtr(true)}, DeviceDesktop)
	require.NoError(t, err)
	assert.True(t, sb.Open, "open survives a pinned-only update")
	require.NotNil(t, sb.Pinned)
	assert.True(t, *sb.Pinned)
	assert.Equal(t, clock.Now(), *sb.LastInteraction)

	got, err := s.Sidebar("alice", DeviceMobile)
	require.NoError(t, err)
	assert.Equal(t, sb.Open, got.Open)
	assert.Equal(t, DeviceDesktop, got.DeviceContext, "stored device wins over the caller's")
}

func TestSidebar_ExpiredEntryIsCleared(t *testing.T) {
	t.Parallel()
	s, mem, clock := newTestStore(t)

	_, err := s.UpdateSidebar("alice", SidebarUpdate{Open: boolPtr(true)}, DeviceDesktop)
	require.NoError(t, err)

	clock.Advance(30*24*time.Hour + time.Second)
	sb, err := s.Sidebar("alice", DeviceDesktop)
	require.NoError(t, err)
	assert.False(t, sb.Open)
	assert.Equal(t, 0, mem.Len())
}

func TestWithTTL(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{t: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)}
	s := New(NewMemoryStorage(), WithClock(clock.Now), WithTTL(48*time.Hour))

	_, err := s.UpdateSidebar("", SidebarUpdate{Open: boolPtr(true)}, DeviceDesktop)
	require.NoError(t, err)
	clock.Advance(49 * time.Hour)
	sb, err := s.Sidebar("", DeviceDesktop)
	require.NoError(t, err)
	assert.False(t, sb.Open)
}

func TestClear(t *testing.T) {
	t.Parallel()
	s, mem, _ := newTestStore(t)

	_, err := s.SetTheme("alice", ThemeDark)
	require.NoError(t, err)
	_, err = s.UpdateSidebar("alice", SidebarUpdate{Open: boolPtr(true)}, DeviceDesktop)
	require.NoError(t, err)
	require.Equal(t, 2, mem.Len())

	require.NoError(t, s.ClearTheme("alice"))
	require.NoError(t, s.ClearSidebar("alice"))
	assert.Equal(t, 0, mem.Len())
}
