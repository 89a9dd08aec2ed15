// Package prefs persists per-client display preferences (theme and
// sidebar state) with a time-to-live. Expired or unreadable entries are
// cleared and the defaults returned.
package prefs

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultTTL is how long a stored preference stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// DefaultClient is the client id used when the caller supplies none.
const DefaultClient = "default"

const (
	themeKey   = "theme_prefs"
	sidebarKey = "sidebar_prefs"
)

var (
	// ErrInvalidTheme is returned for a theme mode outside light|dark|system.
	ErrInvalidTheme = eris.New("invalid theme mode")
	// ErrInvalidClient is returned for a client id that cannot name a storage key.
	ErrInvalidClient = eris.New("invalid client id")
)

var clientPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ThemeMode is the stored theme choice.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ParseThemeMode validates a user-supplied theme mode.
func ParseThemeMode(s string) (ThemeMode, error) {
	switch m := ThemeMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ThemeLight, ThemeDark, ThemeSystem:
		return m, nil
	default:
		return "", eris.Wrapf(ErrInvalidTheme, "prefs: %q", s)
	}
}

// DeviceContext is the form factor the sidebar state was recorded on.
type DeviceContext string

const (
	DeviceMobile  DeviceContext = "mobile"
	DeviceDesktop DeviceContext = "desktop"
)

// ParseDeviceContext maps free text to a DeviceContext, defaulting to desktop.
func ParseDeviceContext(s string) DeviceContext {
	if strings.EqualFold(strings.TrimSpace(s), string(DeviceMobile)) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// ThemePrefs is the stored theme entry.
type ThemePrefs struct {
	Mode     ThemeMode `json:"mode"`
	StoredAt time.Time `json:"stored_at"`
	TTLDays  int       `json:"ttl_days"`
}

// SidebarPrefs is the stored sidebar entry.
type SidebarPrefs struct {
	Open            bool          `json:"open"`
	Pinned          *bool         `json:"pinned,omitempty"`
	LastInteraction *time.Time    `json:"last_interaction,omitempty"`
	DeviceContext   DeviceContext `json:"device_context"`
}

// SidebarUpdate carries the fields a caller wants to change. Nil fields
// keep their current value.
type SidebarUpdate struct {
	Open          *bool          `json:"open,omitempty"`
	Pinned        *bool          `json:"pinned,omitempty"`
	DeviceContext *DeviceContext `json:"device_context,omitempty"`
}

type storedSidebar struct {
	SidebarPrefs
	StoredAt time.Time `json:"stored_at"`
}

// Store reads and writes preferences through a Storage.
type Store struct {
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New returns a Store over storage.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) ttlDays() int {
	return int(s.ttl / (24 * time.Hour))
}

func storageKey(client, name string) (string, error) {
	if client == "" {
		client = DefaultClient
	}
	if !clientPattern.MatchString(client) {
		return "", eris.Wrapf(ErrInvalidClient, "prefs: %q", client)
	}
	return client + "_" + name, nil
}

func (s *Store) expired(storedAt time.Time, ttl time.Duration) bool {
	return s.now().Sub(storedAt) > ttl
}

// load reads key into v. It reports false, clearing the entry, when the
// entry is missing, corrupt or expired per the validity func.
func (s *Store) load(key string, v any, valid func() bool) (bool, error) {
	data, ok, err := s.storage.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil || !valid() {
		if err != nil {
			zap.L().Debug("discarding corrupt preference", zap.String("key", key), zap.Error(err))
		}
		return false, s.storage.Delete(key)
	}
	return true, nil
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return eris.Wrapf(err, "prefs: encode %s", key)
	}
	return s.storage.Put(key, data)
}

func (s *Store) defaultTheme() ThemePrefs {
	return ThemePrefs{Mode: ThemeSystem, StoredAt: s.now(), TTLDays: s.ttlDays()}
}

// Theme returns the client's theme entry, or the system default when none
// is stored or the stored one has expired.
func (s *Store) Theme(client string) (ThemePrefs, error) {
	key, err := storageKey(client, themeKey)
	if err != nil {
		return ThemePrefs{}, err
	}
	var tp ThemePrefs
	ok, err := s.load(key, &tp, func() bool {
		if _, perr := ParseThemeMode(string(tp.Mode)); perr != nil {
			return false
		}
		ttl := s.ttl
		if tp.TTLDays > 0 {
			ttl = time.Duration(tp.TTLDays) * 24 * time.Hour
		}
		return !s.expired(tp.StoredAt, ttl)
	})
	if err != nil {
		return ThemePrefs{}, err
	}
	if !ok {
		return s.defaultTheme(), nil
	}
	return tp, nil
}

// SetTheme stores mode for client.
func (s *Store) SetTheme(client string, mode ThemeMode) (ThemePrefs, error) {
	if _, err := ParseThemeMode(string(mode)); err != nil {
		return ThemePrefs{}, err
	}
	key, err := storageKey(client, themeKey)
	if err != nil {
		return ThemePrefs{}, err
	}
	tp := ThemePrefs{Mode: mode, StoredAt: s.now(), TTLDays: s.ttlDays()}
	if err := s.save(key, tp); err != nil {
		return ThemePrefs{}, err
	}
	return tp, nil
}

// ResolvedTheme returns the theme to apply: the stored light or dark
// choice, or the caller's system preference when the mode is system.
func (s *Store) ResolvedTheme(client string, systemDark bool) (ThemeMode, error) {
	tp, err := s.Theme(client)
	if err != nil {
		return "", err
	}
	return Resolve(tp.Mode, systemDark), nil
}

// Resolve maps a mode to light or dark.
func Resolve(mode ThemeMode, systemDark bool) ThemeMode {
	switch mode {
	case ThemeLight, ThemeDark:
		return mode
	default:
		if systemDark {
			return ThemeDark
		}
		return ThemeLight
	}
}

// ClearTheme removes the client's theme entry.
func (s *Store) ClearTheme(client string) error {
	key, err := storageKey(client, themeKey)
	if err != nil {
		return err
	}
	return s.storage.Delete(key)
}

// Sidebar returns the client's sidebar entry. When none is stored, or the
// stored one expired, it returns a closed sidebar for device.
func (s *Store) Sidebar(client string, device DeviceContext) (SidebarPrefs, error) {
	key, err := storageKey(client, sidebarKey)
	if err != nil {
		return SidebarPrefs{}, err
	}
	var st storedSidebar
	ok, err := s.load(key, &st, func() bool { return !s.expired(st.StoredAt, s.ttl) })
	if err != nil {
		return SidebarPrefs{}, err
	}
	if !ok {
		if device == "" {
			device = DeviceDesktop
		}
		return SidebarPrefs{Open: false, DeviceContext: device}, nil
	}
	if st.DeviceContext == "" {
		st.DeviceContext = DeviceDesktop
	}
	return st.SidebarPrefs, nil
}

// UpdateSidebar merges u into the client's current sidebar entry, stamps
// the interaction time and stores the result.
func (s *Store) UpdateSidebar(client string, u SidebarUpdate, device DeviceContext) (SidebarPrefs, error) {
	cur, err := s.Sidebar(client, device)
	if err != nil {
		return SidebarPrefs{}, err
	}
	if u.Open != nil {
		cur.Open = *u.Open
	}
	if u.Pinned != nil {
		pinned := *u.Pinned
		cur.Pinned = &pinned
	}
	if u.DeviceContext != nil {
		cur.DeviceContext = ParseDeviceContext(string(*u.DeviceContext))
	}
	now := s.now()
	cur.LastInteraction = &now

	key, err := storageKey(client, sidebarKey)
	if err != nil {
		return SidebarPrefs{}, err
	}
	if err := s.save(key, storedSidebar{SidebarPrefs: cur, StoredAt: now}); err != nil {
		return SidebarPrefs{}, err
	}
	return cur, nil
}

// ClearSidebar removes the client's sidebar entry.
func (s *Store) ClearSidebar(client string) error {
	key, err := storageKey(client, sidebarKey)
	if err != nil {
		return err
	}
	return s.storage.Delete(key)
}
