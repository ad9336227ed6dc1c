package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clinic-client/internal/adapter"
	"github.com/MKhiriev/go-clinic-client/internal/config"
	"github.com/MKhiriev/go-clinic-client/internal/logger"
	"github.com/MKhiriev/go-clinic-client/internal/store"
	"github.com/MKhiriev/go-clinic-client/models"
)

// fakeAPI is a minimal clinic API that issues one token per login and can
// revoke every token at once.
type fakeAPI struct {
	mu      sync.Mutex
	issued  int
	valid   map[string]bool
	logouts int
}

func (f *fakeAPI) router(t *testing.T) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
			var creds models.Credentials
			require.NoError(t, json.NewDecoder(req.Body).Decode(&creds))
			if creds.Password != "secret" {
				writeTestJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Email o contraseña incorrectos"})
				return
			}

			f.mu.Lock()
			f.issued++
			token := "tok-" + string(rune('a'+f.issued-1))
			f.valid[token] = true
			f.mu.Unlock()

			writeTestJSON(w, http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
		})

		r.Group(func(r chi.Router) {
			r.Use(f.requireToken)
			r.Get("/auth/me", func(w http.ResponseWriter, _ *http.Request) {
				writeTestJSON(w, http.StatusOK, testUser())
			})
			r.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
				f.mu.Lock()
				f.logouts++
				f.mu.Unlock()
				writeTestJSON(w, http.StatusOK, map[string]string{"message": "ok"})
			})
			r.Get("/pacientes", func(w http.ResponseWriter, _ *http.Request) {
				writeTestJSON(w, http.StatusOK, []models.Patient{{ID: 1, FirstName: "Luis", LastName: "Pérez"}})
			})
		})
	})
	return r
}

func (f *fakeAPI) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		f.mu.Lock()
		ok := len(header) > len("Bearer ") && f.valid[header[len("Bearer "):]]
		f.mu.Unlock()
		if !ok {
			writeTestJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No autenticado"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeAPI) logoutCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logouts
}

func (f *fakeAPI) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.valid = make(map[string]bool)
}

func writeTestJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type e2eEnv struct {
	api      *fakeAPI
	adapter  adapter.ServerAdapter
	storages *store.ClientStorages
	manager  *Manager
}

func newE2EEnv(t *testing.T) *e2eEnv {
	t.Helper()
	fake := &fakeAPI{valid: make(map[string]bool)}
	srv := httptest.NewServer(fake.router(t))
	t.Cleanup(srv.Close)

	serverAdapter := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		HTTPAddress:    srv.URL + "/api/v1",
		RequestTimeout: 5 * time.Second,
	}, logger.Nop())

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{
		Backend: config.BackendSQLite,
		DB:      config.ClientDB{DSN: filepath.Join(t.TempDir(), "clinic.db")},
	}, "", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	m := NewManager(serverAdapter, storages.Session, logger.Nop())
	t.Cleanup(m.Close)

	return &e2eEnv{api: fake, adapter: serverAdapter, storages: storages, manager: m}
}

func TestE2E_LoginRequestLogout(t *testing.T) {
	ctx := context.Background()
	env := newE2EEnv(t)

	require.Equal(t, models.StateUnauthenticated, env.manager.Restore(ctx))

	_, err := env.adapter.ListPatients(ctx, models.PatientFilter{})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	sess, err := env.manager.Login(ctx, "ana@clinic.test", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", sess.Token)

	patients, err := env.adapter.ListPatients(ctx, models.PatientFilter{})
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Luis Pérez", patients[0].FullName())

	require.NoError(t, env.manager.Logout(ctx))
	assert.Equal(t, models.StateUnauthenticated, env.manager.State())
	assert.Equal(t, 1, env.api.logoutCount())

	_, _, err = env.storages.Session.Load(ctx)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestE2E_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	env := newE2EEnv(t)
	env.manager.Restore(ctx)

	_, err := env.manager.Login(ctx, "ana@clinic.test", "secret")
	require.NoError(t, err)

	// a second manager over the same storage plays the restarted process
	restarted := NewManager(env.adapter, env.storages.Session, logger.Nop())
	t.Cleanup(restarted.Close)

	assert.Equal(t, models.StateAuthenticated, restarted.Restore(ctx))
	assert.Equal(t, "tok-a", restarted.Token())
	assert.Equal(t, testUser().Email, restarted.Snapshot().User.Email)
}

func TestE2E_RevokedTokenInvalidatesOnAnyRequest(t *testing.T) {
	ctx := context.Background()
	env := newE2EEnv(t)
	env.manager.Restore(ctx)

	var reasons []Reason
	env.manager.Subscribe(func(e Event) { reasons = append(reasons, e.Reason) })

	_, err := env.manager.Login(ctx, "ana@clinic.test", "secret")
	require.NoError(t, err)

	env.api.revokeAll()

	_, err = env.adapter.ListPatients(ctx, models.PatientFilter{})
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)

	assert.Equal(t, models.StateUnauthenticated, env.manager.State())
	assert.Equal(t, []Reason{ReasonLogin, ReasonUnauthorized}, reasons)

	_, _, err = env.storages.Session.Load(ctx)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestE2E_WrongPasswordReportsServerReason(t *testing.T) {
	ctx := context.Background()
	env := newE2EEnv(t)
	env.manager.Restore(ctx)

	_, err := env.manager.Login(ctx, "ana@clinic.test", "wrong")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Email o contraseña incorrectos", authErr.Reason)
	assert.Equal(t, models.StateUnauthenticated, env.manager.State())
}
