package session

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/client/api"
	"momsdigitales/server/handler"
	"momsdigitales/server/hub"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	srv := &handler.Server{Tokens: middleware.Tokens{Secret: []byte("test")}, Hub: hub.New()}
	ts := httptest.NewServer(srv.Routes(repository.NewDatabase()))
	t.Cleanup(ts.Close)
	return ts
}

func newManager(t *testing.T, ts *httptest.Server, store Store) *Manager {
	t.Helper()
	client := api.New(ts.URL+"/api", ts.Client(), nil)
	m := New(client, store)
	client.SetTokenSource(m.Token)
	return m
}

type countingBackend struct {
	Backend
	profileCalls int
}

func (c *countingBackend) Profile(ctx context.Context) (model.User, error) {
	c.profileCalls++
	return model.User{}, nil
}

func TestLogInAuthenticatesAndNotifies(t *testing.T) {
	ts := newBackend(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	m := newManager(t, ts, store)
	ctx := context.Background()

	_, err := m.SignUp(ctx, model.RegisterCredentials{Username: "Ana María", Email: "ana@test.com", Password: "secreto"})
	require.NoError(t, err)
	require.NoError(t, m.LogOut(ctx))
	assert.Equal(t, Anonymous, m.State().Status)

	var seen []State
	cancel := m.Subscribe(func(s State) { seen = append(seen, s) })
	defer cancel()

	u, err := m.LogIn(ctx, model.Credentials{Email: "ana@test.com", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Username)
	assert.True(t, m.State().IsAuthenticated())
	require.Len(t, seen, 1)
	assert.Equal(t, "Ana María", seen[0].User.Username)

	snap, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, m.Token(), snap.Token)
}

func TestLogInFailureKeepsAnonymous(t *testing.T) {
	ts := newBackend(t)
	m := newManager(t, ts, NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	ctx := context.Background()
	m.Restore(ctx)

	_, err := m.LogIn(ctx, model.Credentials{Email: "nadie@test.com", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Equal(t, Anonymous, m.State().Status)
}

func TestRestoreWithRejectedTokenClearsStore(t *testing.T) {
	ts := newBackend(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, Snapshot{Token: "no-es-un-jwt", User: model.User{ID: "1"}}))

	m := newManager(t, ts, store)
	s := m.Restore(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, m.Token())
	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRestoreWithValidToken(t *testing.T) {
	ts := newBackend(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()

	first := newManager(t, ts, store)
	_, err := first.SignUp(ctx, model.RegisterCredentials{Username: "eva", Email: "eva@test.com", Password: "secreto"})
	require.NoError(t, err)

	second := newManager(t, ts, store)
	assert.Equal(t, Pending, second.State().Status)
	s := second.Restore(ctx)
	require.True(t, s.IsAuthenticated())
	assert.Equal(t, "eva", s.User.Username)
}

func TestRestoreWithExpiredTokenSkipsNetwork(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()

	claims := jwt.MapClaims{"sub": "1", "exp": time.Now().Add(-time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, Snapshot{Token: token}))

	backend := &countingBackend{}
	m := New(backend, store)
	s := m.Restore(ctx)

	assert.Equal(t, Anonymous, s.Status)
	assert.Zero(t, backend.profileCalls)
	_, ok, _ := store.Load(ctx)
	assert.False(t, ok)
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	backend := &countingBackend{}
	m := New(backend, NewFileStore(filepath.Join(t.TempDir(), "missing", "session.json")))

	assert.Equal(t, Anonymous, m.Restore(context.Background()).Status)
	assert.Zero(t, backend.profileCalls)
}

func TestUpdateUserPropagates(t *testing.T) {
	ts := newBackend(t)
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	m := newManager(t, ts, store)
	ctx := context.Background()

	assert.ErrorIs(t, m.UpdateUser(ctx, model.User{}), ErrNoSession)

	u, err := m.SignUp(ctx, model.RegisterCredentials{Username: "eva", Email: "eva@test.com", Password: "secreto"})
	require.NoError(t, err)

	var got model.User
	m.Subscribe(func(s State) { got = s.User })

	u.Username = "Eva Luna"
	require.NoError(t, m.UpdateUser(ctx, u))
	assert.Equal(t, "Eva Luna", got.Username)
	assert.Equal(t, "Eva Luna", m.State().User.Username)

	snap, _, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Eva Luna", snap.User.Username)
}
