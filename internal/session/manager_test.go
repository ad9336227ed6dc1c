// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/mock"
	"github.com/MKhiriev/go-clinic-client/internal/store"
	"github.com/MKhiriev/go-clinic-client/internal/utils"
	"github.com/MKhiriev/go-clinic-client/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type testDeps struct {
	api          *mock.MockAuthAPI
	storage      *mock.MockSessionStore
	unauthorized func(adapter.UnauthorizedEvent)
	unsubscribed bool
}

func newTestManager(t *testing.T) (*Manager, *testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := &testDeps{
		api:     mock.NewMockAuthAPI(ctrl),
		storage: mock.NewMockSessionStore(ctrl),
	}

	d.api.EXPECT().SetTokenSource(gomock.Any())
	d.api.EXPECT().OnUnauthorized(gomock.Any()).DoAndReturn(func(fn func(adapter.UnauthorizedEvent)) func() {
		d.unauthorized = fn
		return func() { d.unsubscribed = true }
	})

	return NewManager(d.api, d.storage, logger.Nop()), d
}

func testUser() models.User {
	phone := "+34 600 000 000"
	return models.User{ID: 7, Email: "ana@clinic.test", Name: "Ana Ruiz", Role: models.RoleDoctor, Phone: &phone, Active: true}
}

// authenticate drives m into the authenticated state through Restore.
func authenticate(t *testing.T, m *Manager, d *testDeps, token string) models.User {
	t.Helper()
	user := testUser()
	d.storage.EXPECT().Load(gomock.Any()).Return(token, &user, nil)
	require.Equal(t, models.StateAuthenticated, m.Restore(context.Background()))
	return user
}

func recordEvents(m *Manager) *[]Event {
	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })
	return &events
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// ---------------------------------------------------------------------------
// NewManager / Close
// ---------------------------------------------------------------------------

func TestNewManager_StartsRestoring(t *testing.T) {
	m, d := newTestManager(t)

	assert.Equal(t, models.StateRestoring, m.State())
	assert.True(t, m.Snapshot().IsLoading)
	assert.Empty(t, m.Token())
	assert.NotNil(t, d.unauthorized)
}

func TestClose_DetachesFromAdapter(t *testing.T) {
	m, d := newTestManager(t)
	events := recordEvents(m)

	d.api.EXPECT().SetTokenSource(nil)
	m.Close()
	assert.True(t, d.unsubscribed)

	d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
	require.NoError(t, m.Logout(context.Background()))
	assert.Empty(t, *events)
}

// ---------------------------------------------------------------------------
// Restore
// ---------------------------------------------------------------------------

func TestRestore_Authenticated(t *testing.T) {
	m, d := newTestManager(t)
	events := recordEvents(m)

	user := authenticate(t, m, d, "tok-1")

	snap := m.Snapshot()
	assert.Equal(t, "tok-1", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, user, *snap.User)
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "tok-1", m.Token())

	require.Len(t, *events, 1)
	assert.Equal(t, ReasonRestored, (*events)[0].Reason)
	assert.Equal(t, models.StateAuthenticated, (*events)[0].State)
}

func TestRestore_UnusablePairIsCleared(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "nothing stored",
			err:  &store.StorageError{Op: "get", Key: store.TokenKey, Err: store.ErrKeyNotFound},
		},
		{
			name: "token without user",
			err:  &store.StorageError{Op: "get", Key: store.UserKey, Err: store.ErrKeyNotFound},
		},
		{
			name: "corrupted user",
			err:  &store.StorageError{Op: "get", Key: store.UserKey, Err: store.ErrCorruptedValue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, d := newTestManager(t)
			events := recordEvents(m)

			gomock.InOrder(
				d.storage.EXPECT().Load(gomock.Any()).Return("", nil, tt.err),
				d.storage.EXPECT().Clear(gomock.Any()).Return(nil),
			)

			assert.Equal(t, models.StateUnauthenticated, m.Restore(context.Background()))
			assert.Empty(t, m.Token())
			assert.Nil(t, m.Snapshot().User)

			require.Len(t, *events, 1)
			assert.Equal(t, models.StateUnauthenticated, (*events)[0].State)
		})
	}
}

func TestRestore_ReadFailureKeepsStorage(t *testing.T) {
	m, d := newTestManager(t)

	// no Clear: a transient read failure must not wipe a valid session
	d.storage.EXPECT().Load(gomock.Any()).
		Return("", nil, &store.StorageError{Op: "get", Key: store.TokenKey, Err: errors.New("disk I/O error")})

	assert.Equal(t, models.StateUnauthenticated, m.Restore(context.Background()))
}

func TestRestore_ExpiredJWTIsDiscarded(t *testing.T) {
	m, d := newTestManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	user := testUser()
	gomock.InOrder(
		d.storage.EXPECT().Load(gomock.Any()).Return(signedToken(t, now.Add(-time.Minute)), &user, nil),
		d.storage.EXPECT().Clear(gomock.Any()).Return(nil),
	)

	assert.Equal(t, models.StateUnauthenticated, m.Restore(context.Background()))
	assert.Empty(t, m.Token())
}

func TestRestore_ValidJWTIsKept(t *testing.T) {
	m, d := newTestManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token := signedToken(t, now.Add(time.Hour))
	authenticate(t, m, d, token)
	assert.Equal(t, token, m.Token())
}

func TestRestore_ClearFailureIsSwallowed(t *testing.T) {
	m, d := newTestManager(t)

	d.storage.EXPECT().Load(gomock.Any()).
		Return("", nil, &store.StorageError{Op: "get", Key: store.UserKey, Err: store.ErrCorruptedValue})
	d.storage.EXPECT().Clear(gomock.Any()).Return(errors.New("read-only filesystem"))

	assert.Equal(t, models.StateUnauthenticated, m.Restore(context.Background()))
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_Success(t *testing.T) {
	m, d := newTestManager(t)
	d.storage.EXPECT().Load(gomock.Any()).Return("", nil, store.ErrKeyNotFound)
	d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
	m.Restore(context.Background())
	events := recordEvents(m)

	user := testUser()
	gomock.InOrder(
		d.api.EXPECT().Login(gomock.Any(), models.Credentials{Email: "ana@clinic.test", Password: "secret"}).
			Return(models.TokenResponse{AccessToken: "tok-new", TokenType: "bearer"}, nil),
		d.api.EXPECT().Me(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.User, error) {
			token, ok := utils.BearerTokenFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, "tok-new", token)
			// not committed before the profile arrives
			assert.Empty(t, m.Token())
			return user, nil
		}),
		d.storage.EXPECT().Save(gomock.Any(), "tok-new", user).Return(nil),
	)

	got, err := m.Login(context.Background(), "ana@clinic.test", "secret")
	require.NoError(t, err)

	assert.Equal(t, "tok-new", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, user, *got.User)
	assert.Equal(t, models.StateAuthenticated, m.State())

	require.Len(t, *events, 1)
	evt := (*events)[0]
	assert.Equal(t, ReasonLogin, evt.Reason)
	assert.Equal(t, models.StateAuthenticated, evt.State)
	assert.NotNil(t, evt.Session.User)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-old")
	events := recordEvents(m)

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.TokenResponse{}, adapter.NewAPIError(401, "Email o contraseña incorrectos"))

	_, err := m.Login(context.Background(), "ana@clinic.test", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, OpLogin, authErr.Op)
	assert.Equal(t, "Email o contraseña incorrectos", authErr.Reason)
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	assert.Equal(t, "tok-old", m.Token())
	assert.Empty(t, *events)
}

func TestLogin_ProfileFetchFailureChangesNothing(t *testing.T) {
	m, d := newTestManager(t)
	d.storage.EXPECT().Load(gomock.Any()).Return("", nil, store.ErrKeyNotFound)
	d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
	m.Restore(context.Background())
	events := recordEvents(m)

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.TokenResponse{AccessToken: "tok-new"}, nil)
	d.api.EXPECT().Me(gomock.Any()).
		Return(models.User{}, errors.New("connection reset by peer"))
	// no Save expected: nothing is persisted without the profile

	_, err := m.Login(context.Background(), "ana@clinic.test", "secret")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "could not sign in", authErr.Reason)
	assert.Equal(t, models.StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())
	assert.Empty(t, *events)
}

func TestLogin_SessionChangedWhileInFlight(t *testing.T) {
	m, d := newTestManager(t)
	user := testUser()

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ models.Credentials) (models.TokenResponse, error) {
			// a concurrent transition lands while the exchange is in flight
			d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
			require.NoError(t, m.Logout(ctx))
			return models.TokenResponse{AccessToken: "tok-late"}, nil
		})
	d.api.EXPECT().Me(gomock.Any()).Return(user, nil)

	_, err := m.Login(context.Background(), "ana@clinic.test", "secret")
	assert.ErrorIs(t, err, ErrSessionChanged)
	assert.Empty(t, m.Token())
	assert.Equal(t, models.StateUnauthenticated, m.State())
}

func TestLogin_PersistFailureKeepsMemory(t *testing.T) {
	m, d := newTestManager(t)
	user := testUser()

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{AccessToken: "tok-1"}, nil)
	d.api.EXPECT().Me(gomock.Any()).Return(user, nil)
	d.storage.EXPECT().Save(gomock.Any(), "tok-1", user).
		Return(&store.StorageError{Op: "set", Key: store.TokenKey, Err: errors.New("disk full")})

	got, err := m.Login(context.Background(), "ana@clinic.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, models.StateAuthenticated, m.State())
}

func TestLogin_PendingToken401DoesNotInvalidate(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-current")

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{AccessToken: "tok-pending"}, nil)
	d.api.EXPECT().Me(gomock.Any()).DoAndReturn(func(ctx context.Context) (models.User, error) {
		d.unauthorized(adapter.UnauthorizedEvent{Token: "tok-pending", Method: "GET", Path: "/api/v1/auth/me"})
		return models.User{}, adapter.NewAPIError(401, "Token inválido")
	})

	_, err := m.Login(context.Background(), "ana@clinic.test", "secret")
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.Equal(t, "tok-current", m.Token())
	assert.Equal(t, models.StateAuthenticated, m.State())
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister_CreatesAccountThenLogsIn(t *testing.T) {
	m, d := newTestManager(t)
	user := testUser()

	gomock.InOrder(
		d.api.EXPECT().Register(gomock.Any(), models.Registration{
			Name: "Ana Ruiz", Email: "ana@clinic.test", Password: "secret", Role: models.RoleDoctor,
		}).Return(user, nil),
		d.api.EXPECT().Login(gomock.Any(), models.Credentials{Email: "ana@clinic.test", Password: "secret"}).
			Return(models.TokenResponse{AccessToken: "tok-1"}, nil),
		d.api.EXPECT().Me(gomock.Any()).Return(user, nil),
		d.storage.EXPECT().Save(gomock.Any(), "tok-1", user).Return(nil),
	)

	got, err := m.Register(context.Background(), models.Registration{Name: "Ana Ruiz", Email: "ana@clinic.test", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, models.StateAuthenticated, got.State())
}

func TestRegister_Rejected(t *testing.T) {
	m, d := newTestManager(t)

	d.api.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(models.User{}, adapter.NewAPIError(400, "El email ya está registrado"))

	_, err := m.Register(context.Background(), models.Registration{Name: "Ana", Email: "ana@clinic.test", Password: "secret"})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, OpRegister, authErr.Op)
	assert.Equal(t, "El email ya está registrado", authErr.Reason)
	assert.ErrorIs(t, err, adapter.ErrBadRequest)
	assert.Equal(t, models.StateRestoring, m.State())
}

// ---------------------------------------------------------------------------
// Logout
// ---------------------------------------------------------------------------

func TestLogout_ClearsEvenWhenServerFails(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")
	events := recordEvents(m)

	gomock.InOrder(
		d.storage.EXPECT().Clear(gomock.Any()).Return(nil),
		d.api.EXPECT().Logout(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
			token, ok := utils.BearerTokenFromContext(ctx)
			assert.True(t, ok)
			assert.Equal(t, "tok-1", token)
			assert.Empty(t, m.Token())
			return adapter.NewAPIError(500, "Internal Server Error")
		}),
	)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, models.StateUnauthenticated, m.State())
	assert.Nil(t, m.Snapshot().User)

	require.Len(t, *events, 1)
	assert.Equal(t, ReasonLogout, (*events)[0].Reason)
}

func TestLogout_Twice(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")
	events := recordEvents(m)

	d.storage.EXPECT().Clear(gomock.Any()).Return(nil).Times(2)
	d.api.EXPECT().Logout(gomock.Any()).Return(nil).Times(1)

	require.NoError(t, m.Logout(context.Background()))
	require.NoError(t, m.Logout(context.Background()))

	assert.Equal(t, models.StateUnauthenticated, m.State())
	assert.Len(t, *events, 1)
}

func TestLogout_ClearFailureIsSwallowed(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")

	d.storage.EXPECT().Clear(gomock.Any()).Return(errors.New("locked"))
	d.api.EXPECT().Logout(gomock.Any()).Return(nil)

	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, models.StateUnauthenticated, m.State())
}

// ---------------------------------------------------------------------------
// 401 invalidation
// ---------------------------------------------------------------------------

func TestUnauthorized_CurrentTokenInvalidates(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")
	events := recordEvents(m)

	d.storage.EXPECT().Clear(gomock.Any()).Return(nil)

	d.unauthorized(adapter.UnauthorizedEvent{Token: "tok-1", Method: "GET", Path: "/api/v1/pacientes"})

	assert.Equal(t, models.StateUnauthenticated, m.State())
	assert.Empty(t, m.Token())
	require.Len(t, *events, 1)
	assert.Equal(t, ReasonUnauthorized, (*events)[0].Reason)
	assert.Equal(t, models.StateUnauthenticated, (*events)[0].State)
}

func TestUnauthorized_IgnoredEvents(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "superseded token", token: "tok-old"},
		{name: "anonymous request", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, d := newTestManager(t)
			authenticate(t, m, d, "tok-1")
			events := recordEvents(m)

			d.unauthorized(adapter.UnauthorizedEvent{Token: tt.token, Method: "POST", Path: "/api/v1/auth/login"})

			assert.Equal(t, models.StateAuthenticated, m.State())
			assert.Equal(t, "tok-1", m.Token())
			assert.Empty(t, *events)
		})
	}
}

// ---------------------------------------------------------------------------
// ChangePassword
// ---------------------------------------------------------------------------

func TestChangePassword_FailureLeavesSession(t *testing.T) {
	m, d := newTestManager(t)
	user := authenticate(t, m, d, "tok-1")
	events := recordEvents(m)

	d.api.EXPECT().ChangePassword(gomock.Any(), models.PasswordChange{CurrentPassword: "wrong", NewPassword: "new"}).
		Return(adapter.NewAPIError(400, "La contraseña actual es incorrecta"))

	err := m.ChangePassword(context.Background(), "wrong", "new")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, OpChangePassword, authErr.Op)
	assert.Equal(t, "La contraseña actual es incorrecta", authErr.Reason)

	snap := m.Snapshot()
	assert.Equal(t, "tok-1", snap.Token)
	require.NotNil(t, snap.User)
	assert.Equal(t, user, *snap.User)
	assert.Empty(t, *events)
}

func TestChangePassword_Success(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")

	d.api.EXPECT().ChangePassword(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ models.PasswordChange) error {
		token, _ := utils.BearerTokenFromContext(ctx)
		assert.Equal(t, "tok-1", token)
		return nil
	})

	require.NoError(t, m.ChangePassword(context.Background(), "old", "new"))
	assert.Equal(t, "tok-1", m.Token())
}

func TestChangePassword_NotAuthenticated(t *testing.T) {
	m, _ := newTestManager(t)
	assert.ErrorIs(t, m.ChangePassword(context.Background(), "a", "b"), ErrNotAuthenticated)
}

// ---------------------------------------------------------------------------
// UpdateProfile / RefreshProfile
// ---------------------------------------------------------------------------

func TestUpdateProfile_ReplacesUser(t *testing.T) {
	m, d := newTestManager(t)
	user := authenticate(t, m, d, "tok-1")
	events := recordEvents(m)

	specialty := "Pediatría"
	updated := user
	updated.Specialty = &specialty

	gomock.InOrder(
		d.api.EXPECT().UpdateMe(gomock.Any(), models.ProfileUpdate{Specialty: &specialty}).Return(updated, nil),
		d.storage.EXPECT().SaveUser(gomock.Any(), updated).Return(nil),
	)

	got, err := m.UpdateProfile(context.Background(), models.ProfileUpdate{Specialty: &specialty})
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	snap := m.Snapshot()
	assert.Equal(t, "tok-1", snap.Token)
	assert.Equal(t, updated, *snap.User)
	require.Len(t, *events, 1)
	assert.Equal(t, ReasonProfileUpdated, (*events)[0].Reason)
}

func TestUpdateProfile_Failure(t *testing.T) {
	m, d := newTestManager(t)
	user := authenticate(t, m, d, "tok-1")

	name := ""
	d.api.EXPECT().UpdateMe(gomock.Any(), gomock.Any()).
		Return(models.User{}, adapter.NewAPIError(422, "name: field required"))

	_, err := m.UpdateProfile(context.Background(), models.ProfileUpdate{Name: &name})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, OpUpdateProfile, authErr.Op)
	assert.ErrorIs(t, err, adapter.ErrUnprocessable)
	assert.Equal(t, user, *m.Snapshot().User)
}

func TestUpdateProfile_EmptyUpdateIsNoop(t *testing.T) {
	m, d := newTestManager(t)
	user := authenticate(t, m, d, "tok-1")

	got, err := m.UpdateProfile(context.Background(), models.ProfileUpdate{})
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUpdateProfile_NotAuthenticated(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.UpdateProfile(context.Background(), models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestRefreshProfile(t *testing.T) {
	m, d := newTestManager(t)
	user := authenticate(t, m, d, "tok-1")

	fresh := user
	fresh.Name = "Ana Ruiz Gómez"
	d.api.EXPECT().Me(gomock.Any()).Return(fresh, nil)
	d.storage.EXPECT().SaveUser(gomock.Any(), fresh).Return(nil)

	got, err := m.RefreshProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz Gómez", got.Name)
	assert.Equal(t, "Ana Ruiz Gómez", m.Snapshot().User.Name)
}

func TestRefreshProfile_SessionChangedWhileInFlight(t *testing.T) {
	m, d := newTestManager(t)
	authenticate(t, m, d, "tok-1")

	d.api.EXPECT().Me(gomock.Any()).DoAndReturn(func(context.Context) (models.User, error) {
		d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
		d.unauthorized(adapter.UnauthorizedEvent{Token: "tok-1", Method: "GET", Path: "/api/v1/pacientes"})
		return testUser(), nil
	})

	_, err := m.RefreshProfile(context.Background())
	assert.ErrorIs(t, err, ErrSessionChanged)
	assert.Equal(t, models.StateUnauthenticated, m.State())
}

// ---------------------------------------------------------------------------
// Subscribe
// ---------------------------------------------------------------------------

func TestSubscribe_Unsubscribe(t *testing.T) {
	m, d := newTestManager(t)

	var calls int
	unsubscribe := m.Subscribe(func(Event) { calls++ })

	authenticate(t, m, d, "tok-1")
	assert.Equal(t, 1, calls)

	unsubscribe()
	unsubscribe()

	d.storage.EXPECT().Clear(gomock.Any()).Return(nil)
	d.api.EXPECT().Logout(gomock.Any()).Return(nil)
	require.NoError(t, m.Logout(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestSubscriber_CanReadSnapshot(t *testing.T) {
	m, d := newTestManager(t)

	var seen models.AuthState
	m.Subscribe(func(Event) { seen = m.State() })

	authenticate(t, m, d, "tok-1")
	assert.Equal(t, models.StateAuthenticated, seen)
}

func TestSubscribe_DeliveredInSubscriptionOrder(t *testing.T) {
	m, d := newTestManager(t)

	var order []int
	for i := 0; i < 8; i++ {
		m.Subscribe(func(Event) { order = append(order, i) })
	}

	authenticate(t, m, d, "tok-1")
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
}

func TestSubscriber_TransitionFromCallbackIsDeliveredAfter(t *testing.T) {
	m, d := newTestManager(t)
	d.storage.EXPECT().Load(gomock.Any()).Return("", nil, store.ErrKeyNotFound)
	d.storage.EXPECT().Clear(gomock.Any()).Return(nil).Times(2)
	m.Restore(context.Background())

	d.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{AccessToken: "tok-1"}, nil)
	d.api.EXPECT().Me(gomock.Any()).Return(testUser(), nil)
	d.storage.EXPECT().Save(gomock.Any(), "tok-1", gomock.Any()).Return(nil)
	d.api.EXPECT().Logout(gomock.Any()).Return(nil)

	// первый подписчик выходит прямо из обработчика события входа
	m.Subscribe(func(e Event) {
		if e.Reason == ReasonLogin {
			require.NoError(t, m.Logout(context.Background()))
		}
	})
	events := recordEvents(m)

	_, err := m.Login(context.Background(), "ana@clinic.test", "secret")
	require.NoError(t, err)

	require.Len(t, *events, 2)
	assert.Equal(t, ReasonLogin, (*events)[0].Reason)
	assert.Equal(t, ReasonLogout, (*events)[1].Reason)
	assert.Equal(t, models.StateUnauthenticated, m.State())
}

func TestSubscriber_LastEventMatchesStateUnderConcurrentLogout(t *testing.T) {
	for run := 0; run < 40; run++ {
		m, d := newTestManager(t)
		d.storage.EXPECT().Load(gomock.Any()).Return("", nil, store.ErrKeyNotFound)
		d.storage.EXPECT().Clear(gomock.Any()).Return(nil).AnyTimes()
		m.Restore(context.Background())

		d.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.TokenResponse{AccessToken: "tok-1"}, nil)
		d.api.EXPECT().Me(gomock.Any()).Return(testUser(), nil)
		d.storage.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		d.api.EXPECT().Logout(gomock.Any()).Return(nil).AnyTimes()

		var wg sync.WaitGroup
		m.Subscribe(func(e Event) {
			if e.Reason != ReasonLogin {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = m.Logout(context.Background())
			}()
		})

		var (
			mu   sync.Mutex
			last models.AuthState
		)
		m.Subscribe(func(e Event) {
			mu.Lock()
			defer mu.Unlock()
			last = e.State
		})

		_, err := m.Login(context.Background(), "ana@clinic.test", "secret")
		require.NoError(t, err)
		wg.Wait()

		mu.Lock()
		assert.Equal(t, m.State(), last, "run %d", run)
		mu.Unlock()
		assert.Equal(t, models.StateUnauthenticated, m.State())
	}
}

// ---------------------------------------------------------------------------
// AuthError
// ---------------------------------------------------------------------------

func TestAuthError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := newAuthError(OpChangePassword, cause)

	assert.Equal(t, "change password: could not change the password", err.Error())
	assert.ErrorIs(t, err, ErrAuthFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrSessionChanged)
}
