// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package session owns the authentication lifecycle of the client.
//
// A [Manager] holds the current token and user profile, persists them
// through a [SessionStore], supplies the token to every outbound request and
// clears everything when the server answers 401 to a request that carried the
// current token. Consumers observe transitions with [Manager.Subscribe].
//
// The in-memory session is a single cell. Transitions are serialised; network
// calls never run under a lock. Each transition bumps a generation counter,
// and an operation whose generation moved while its network calls were in
// flight returns [ErrSessionChanged] instead of applying a stale result.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/store"
	"github.com/MKhiriev/go-clinic-client/internal/utils"
	"github.com/MKhiriev/go-clinic-client/models"
)

// Manager is the single owner of the in-memory session.
type Manager struct {
	api     AuthAPI
	storage SessionStore
	logger  *logger.Logger
	now     func() time.Time

	// transMu serialises transitions: generation check, persist, commit.
	transMu sync.Mutex

	// mu guards current and generation.
	mu         sync.RWMutex
	current    models.Session
	generation uint64

	subMu       sync.RWMutex
	subscribers []subscriber
	nextSubID   int

	// emitMu guards pending and draining. Events are queued in commit
	// order under transMu and delivered by one goroutine at a time.
	emitMu   sync.Mutex
	pending  []Event
	draining bool

	stopListening func()
}

type subscriber struct {
	id int
	fn func(Event)
}

// NewManager returns a Manager in the restoring state and registers it with
// api as token source and 401 listener. Call Restore to leave the restoring
// state and Close to detach from api.
func NewManager(api AuthAPI, storage SessionStore, logger *logger.Logger) *Manager {
	m := &Manager{
		api:         api,
		storage:     storage,
		logger:      logger,
		now:         time.Now,
		current: models.Session{IsLoading: true},
	}

	api.SetTokenSource(m)
	m.stopListening = api.OnUnauthorized(m.handleUnauthorized)

	return m
}

// Close detaches the Manager from the adapter and drops all subscribers.
func (m *Manager) Close() {
	if m.stopListening != nil {
		m.stopListening()
	}
	m.api.SetTokenSource(nil)

	m.subMu.Lock()
	m.subscribers = nil
	m.subMu.Unlock()
}

// Token implements adapter.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token
}

// Snapshot returns the current session. The User it points to is never
// mutated; a later change installs a new one.
func (m *Manager) Snapshot() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// State returns the current lifecycle state.
func (m *Manager) State() models.AuthState {
	return m.Snapshot().State()
}

// Subscribe registers fn for every later transition. Events reach
// subscribers in commit order and in subscription order, with no lock held.
// A transition committed while another goroutine is delivering is delivered
// by that goroutine, so fn may call back into the Manager.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSubID
	m.nextSubID++
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			m.subMu.Lock()
			defer m.subMu.Unlock()
			for i, sub := range m.subscribers {
				if sub.id == id {
					m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
					break
				}
			}
		})
	}
}

// Restore loads the persisted session. It never fails: an unreadable,
// incomplete or expired pair means no session, and the leftovers are removed
// from storage.
func (m *Manager) Restore(ctx context.Context) models.AuthState {
	log := m.logger.With().Str("func", "Manager.Restore").Logger()
	gen := m.currentGeneration()

	token, user, err := m.storage.Load(ctx)
	discard := false
	switch {
	case err != nil:
		if errors.Is(err, store.ErrKeyNotFound) || errors.Is(err, store.ErrCorruptedValue) {
			log.Info().Err(err).Msg("no usable persisted session")
			discard = true
		} else {
			log.Error().Err(err).Msg("failed to read persisted session")
		}
		token, user = "", nil
	case utils.TokenExpired(token, m.now()):
		log.Info().Msg("persisted token expired")
		discard = true
		token, user = "", nil
	}

	m.transMu.Lock()
	if gen != m.currentGeneration() {
		m.transMu.Unlock()
		log.Info().Msg("session changed while restoring, result discarded")
		return m.State()
	}
	if discard {
		m.clearStorage(ctx, "Manager.Restore")
	}
	evt := m.commit(models.Session{Token: token, User: user}, ReasonRestored)
	m.transMu.Unlock()

	m.deliver()
	log.Info().Str("state", evt.State.String()).Msg("session restored")
	return evt.State
}

// Login exchanges the credentials for a token, fetches the profile with that
// token and only then persists and publishes both. Nothing is changed when
// either call fails.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	return m.login(ctx, m.currentGeneration(), models.Credentials{Email: email, Password: password})
}

// Register creates the account and logs it in.
func (m *Manager) Register(ctx context.Context, reg models.Registration) (models.Session, error) {
	gen := m.currentGeneration()

	if reg.Role == "" {
		reg.Role = models.RoleDoctor
	}
	if _, err := m.api.Register(ctx, reg); err != nil {
		return models.Session{}, newAuthError(OpRegister, err)
	}

	return m.login(ctx, gen, reg.Credentials())
}

func (m *Manager) login(ctx context.Context, gen uint64, creds models.Credentials) (models.Session, error) {
	log := m.logger.With().Str("func", "Manager.login").Logger()

	tokenResp, err := m.api.Login(ctx, creds)
	if err != nil {
		return models.Session{}, newAuthError(OpLogin, err)
	}

	// the pending token is not the session token yet
	user, err := m.api.Me(utils.WithBearerToken(ctx, tokenResp.AccessToken))
	if err != nil {
		return models.Session{}, newAuthError(OpLogin, err)
	}

	m.transMu.Lock()
	if gen != m.currentGeneration() {
		m.transMu.Unlock()
		log.Info().Msg("session changed during login, result discarded")
		return models.Session{}, ErrSessionChanged
	}
	if err = m.storage.Save(ctx, tokenResp.AccessToken, user); err != nil {
		log.Error().Err(err).Msg("failed to persist session, keeping it in memory only")
	}
	evt := m.commit(models.Session{Token: tokenResp.AccessToken, User: &user}, ReasonLogin)
	m.transMu.Unlock()

	m.deliver()
	log.Info().Int64("user_id", user.ID).Msg("logged in")
	return evt.Session, nil
}

// Logout clears the local session and then tells the server, using the token
// that was just dropped. Server failures are logged only; Logout never
// returns an error for them and is safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) error {
	log := m.logger.With().Str("func", "Manager.Logout").Logger()

	m.transMu.Lock()
	token := m.Token()
	m.clearStorage(ctx, "Manager.Logout")
	m.commit(models.Session{}, ReasonLogout)
	m.transMu.Unlock()

	m.deliver()

	if token == "" {
		return nil
	}
	log.Info().Msg("logged out")
	if err := m.api.Logout(utils.WithBearerToken(ctx, token)); err != nil {
		log.Warn().Err(err).Msg("server logout failed, local session already cleared")
	}
	return nil
}

// UpdateProfile sends a partial profile update and installs the returned
// user. The token is left untouched.
func (m *Manager) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.User, error) {
	snap, gen := m.snapshotWithGeneration()
	if !snap.HasToken() {
		return models.User{}, ErrNotAuthenticated
	}
	if update.IsEmpty() && snap.User != nil {
		return *snap.User, nil
	}

	user, err := m.api.UpdateMe(utils.WithBearerToken(ctx, snap.Token), update)
	if err != nil {
		return models.User{}, newAuthError(OpUpdateProfile, err)
	}

	if err = m.replaceUser(ctx, gen, user, "Manager.UpdateProfile"); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RefreshProfile re-reads the profile of the current token from the server.
// A revoked token surfaces as a 401 and ends the session.
func (m *Manager) RefreshProfile(ctx context.Context) (models.User, error) {
	snap, gen := m.snapshotWithGeneration()
	if !snap.HasToken() {
		return models.User{}, ErrNotAuthenticated
	}

	user, err := m.api.Me(utils.WithBearerToken(ctx, snap.Token))
	if err != nil {
		return models.User{}, newAuthError(OpRefreshProfile, err)
	}

	if err = m.replaceUser(ctx, gen, user, "Manager.RefreshProfile"); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ChangePassword changes the account password. The session is unchanged
// whatever the outcome.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	token := m.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	change := models.PasswordChange{CurrentPassword: current, NewPassword: next}
	if err := m.api.ChangePassword(utils.WithBearerToken(ctx, token), change); err != nil {
		return newAuthError(OpChangePassword, err)
	}

	m.logger.Info().Str("func", "Manager.ChangePassword").Msg("password changed")
	return nil
}

// handleUnauthorized is the single invalidation path for 401 responses.
// Only a rejection of the current token ends the session.
func (m *Manager) handleUnauthorized(evt adapter.UnauthorizedEvent) {
	if evt.Token == "" {
		return
	}

	m.transMu.Lock()
	if evt.Token != m.Token() {
		m.transMu.Unlock()
		m.logger.Debug().
			Str("func", "Manager.handleUnauthorized").
			Str("path", evt.Path).
			Msg("ignoring 401 for a superseded token")
		return
	}
	m.clearStorage(context.Background(), "Manager.handleUnauthorized")
	m.commit(models.Session{}, ReasonUnauthorized)
	m.transMu.Unlock()

	m.logger.Warn().
		Str("func", "Manager.handleUnauthorized").
		Str("method", evt.Method).
		Str("path", evt.Path).
		Msg("session invalidated by server")

	m.deliver()
}

func (m *Manager) replaceUser(ctx context.Context, gen uint64, user models.User, fn string) error {
	m.transMu.Lock()
	if gen != m.currentGeneration() {
		m.transMu.Unlock()
		m.logger.Info().Str("func", fn).Msg("session changed during profile call, result discarded")
		return ErrSessionChanged
	}
	if err := m.storage.SaveUser(ctx, user); err != nil {
		m.logger.Error().Err(err).Str("func", fn).Msg("failed to persist user, keeping it in memory only")
	}
	m.commit(models.Session{Token: m.Token(), User: &user}, ReasonProfileUpdated)
	m.transMu.Unlock()

	m.deliver()
	return nil
}

// commit installs next, bumps the generation and queues an event when the
// session actually changed. transMu must be held; call deliver after
// releasing it.
func (m *Manager) commit(next models.Session, reason Reason) Event {
	m.mu.Lock()
	prev := m.current
	m.current = next
	m.generation++
	m.mu.Unlock()

	evt := newEvent(next, reason)
	if prev.IsLoading != next.IsLoading || prev.Token != next.Token || prev.User != next.User {
		m.emitMu.Lock()
		m.pending = append(m.pending, evt)
		m.emitMu.Unlock()
	}
	return evt
}

func (m *Manager) clearStorage(ctx context.Context, fn string) {
	if err := m.storage.Clear(ctx); err != nil {
		m.logger.Error().Err(err).Str("func", fn).Msg("failed to clear persisted session")
	}
}

func (m *Manager) currentGeneration() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *Manager) snapshotWithGeneration() (models.Session, uint64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current, m.generation
}

// deliver drains the pending queue unless another goroutine already does.
func (m *Manager) deliver() {
	m.emitMu.Lock()
	if m.draining {
		m.emitMu.Unlock()
		return
	}
	m.draining = true

	for len(m.pending) > 0 {
		evt := m.pending[0]
		m.pending = m.pending[1:]
		m.emitMu.Unlock()

		m.notify(evt)

		m.emitMu.Lock()
	}

	m.draining = false
	m.emitMu.Unlock()
}

func (m *Manager) notify(evt Event) {
	m.subMu.RLock()
	subscribers := make([]subscriber, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.subMu.RUnlock()

	for _, sub := range subscribers {
		sub.fn(evt)
	}
}
