package session

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// LogoutReason tells the UI why a session ended so it can pick a message.
type LogoutReason int

const (
	ReasonManual LogoutReason = iota
	ReasonExpired
	ReasonUnauthorized
)

// Manager owns the client-side auth lifecycle: it restores a persisted
// session on construction, schedules an automatic logout at the expiry
// instant, and collapses any number of concurrent 401s into a single logout.
type Manager struct {
	mu     sync.Mutex
	repo   Repository
	now    func() time.Time
	log    zerolog.Logger
	notify func(LogoutReason)

	token               string
	email               string
	expireAt            time.Time
	authenticated       bool
	handledUnauthorized bool
	timer               *time.Timer
}

// NewManager restores any persisted session. An expired record is discarded
// and storage cleared; a live one is restored without a network round-trip.
// notify may be nil.
func NewManager(repo Repository, notify func(LogoutReason), log zerolog.Logger) *Manager {
	m := &Manager{
		repo:   repo,
		now:    time.Now,
		log:    log,
		notify: notify,
	}
	m.restore()
	return m
}

func (m *Manager) restore() {
	rec, err := m.repo.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("session restore failed")
		return
	}
	if rec.Token == "" {
		return
	}
	if !m.now().Before(rec.ExpireAt) {
		_ = m.repo.Clear()
		m.log.Info().Msg("discarded expired session")
		return
	}

	m.mu.Lock()
	m.token = rec.Token
	m.email = rec.Email
	m.expireAt = rec.ExpireAt
	m.authenticated = true
	m.scheduleLocked()
	m.mu.Unlock()
	m.log.Info().Time("expireAt", rec.ExpireAt).Msg("session restored")
}

// Login arms the in-memory session and its expiry timer, then persists it. A
// zero expiry or empty email is recovered from the token's JWT claims when
// possible. Storage is best-effort: a failed save only costs the restore on
// the next run, never the current session.
func (m *Manager) Login(token string, expireAt time.Time, email string) {
	claimEmail, claimExpiry := tokenClaims(token)
	if expireAt.IsZero() {
		expireAt = claimExpiry
	}
	if email == "" {
		email = claimEmail
	}

	m.mu.Lock()
	m.token = token
	m.email = email
	m.expireAt = expireAt
	m.authenticated = true
	m.handledUnauthorized = false
	m.scheduleLocked()
	m.mu.Unlock()

	if err := m.repo.Save(Record{Token: token, ExpireAt: expireAt, Email: email}); err != nil {
		m.log.Warn().Err(err).Msg("persisting session failed")
	}
	m.log.Info().Str("email", email).Time("expireAt", expireAt).Msg("logged in")
}

// Logout clears the persisted session.
func (m *Manager) Logout() {
	m.mu.Lock()
	fire := m.logoutLocked()
	m.mu.Unlock()
	if fire {
		m.emit(ReasonManual)
	}
}

// HandleUnauthorized reacts to an auth-failed API call. Only the first call
// after a login performs the logout; later ones are no-ops so several
// in-flight requests failing together produce a single notification.
func (m *Manager) HandleUnauthorized() {
	m.mu.Lock()
	if !m.authenticated || m.handledUnauthorized {
		m.mu.Unlock()
		return
	}
	m.handledUnauthorized = true
	fire := m.logoutLocked()
	m.mu.Unlock()
	if fire {
		m.emit(ReasonUnauthorized)
	}
}

// logoutLocked clears state and reports whether a logout actually happened.
func (m *Manager) logoutLocked() bool {
	if !m.authenticated && m.token == "" {
		return false
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if err := m.repo.Clear(); err != nil {
		m.log.Warn().Err(err).Msg("clearing session storage failed")
	}
	m.token = ""
	m.email = ""
	m.expireAt = time.Time{}
	m.authenticated = false
	return true
}

func (m *Manager) scheduleLocked() {
	if m.timer != nil {
		m.timer.Stop()
	}
	d := m.expireAt.Sub(m.now())
	if d <= 0 {
		d = 0
	}
	m.timer = time.AfterFunc(d, m.expire)
}

func (m *Manager) expire() {
	m.mu.Lock()
	if !m.authenticated {
		m.mu.Unlock()
		return
	}
	// A timer armed for an earlier session can fire after a new Login has
	// replaced the state under it. Reschedule for the current instant
	// instead of logging the fresh session out.
	if m.now().Before(m.expireAt) {
		m.scheduleLocked()
		m.mu.Unlock()
		return
	}
	fire := m.logoutLocked()
	m.mu.Unlock()
	if fire {
		m.log.Info().Msg("session expired")
		m.emit(ReasonExpired)
	}
}

func (m *Manager) emit(reason LogoutReason) {
	if m.notify != nil {
		m.notify(reason)
	}
}

// SetNotify installs the logout sink. The TUI wires this to its message loop
// after the program exists.
func (m *Manager) SetNotify(fn func(LogoutReason)) {
	m.mu.Lock()
	m.notify = fn
	m.mu.Unlock()
}

// Token returns the current access token, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Email returns the logged-in account email, or "".
func (m *Manager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email
}

// Authenticated reports whether a live token is held.
func (m *Manager) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authenticated
}
