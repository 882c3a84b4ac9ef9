package mvc

import (
	"context"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/client/api"
	"momsdigitales/client/chat"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/payment"
	"momsdigitales/client/realtime"
	"momsdigitales/client/session"
	"momsdigitales/client/wall"
	"momsdigitales/server/handler"
	"momsdigitales/server/hub"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

type opened struct {
	urls []string
}

func (o *opened) open(u string) error {
	o.urls = append(o.urls, u)
	return nil
}

func newDeps(t *testing.T) (*Deps, *opened) {
	t.Helper()
	deps, o, _ := newStack(t)
	return deps, o
}

// newStack levanta el servidor en memoria y devuelve también su hub.
func newStack(t *testing.T) (*Deps, *opened, *hub.Hub) {
	t.Helper()
	h := hub.New()
	srv := &handler.Server{Tokens: middleware.Tokens{Secret: []byte("test")}, Hub: h}
	ts := httptest.NewServer(srv.Routes(repository.NewDatabase()))
	t.Cleanup(ts.Close)

	client := api.New(ts.URL+"/api", ts.Client(), nil)
	sessions := session.New(client, session.NewFileStore(filepath.Join(t.TempDir(), "session.json")))
	client.SetTokenSource(sessions.Token)

	plans, err := payment.LoadPlans("")
	require.NoError(t, err)

	rt := realtime.New("ws" + strings.TrimPrefix(ts.URL, "http") + "/ws")
	rt.SetTokenSource(sessions.Token)
	t.Cleanup(func() { rt.Close() })

	o := &opened{}
	return &Deps{
		API:      client,
		Session:  sessions,
		Realtime: rt,
		Guard:    guard.New(guard.Policies),
		Plans:    plans,
		Open:     o.open,
	}, o, h
}

// connectAndJoin ejecuta a mano lo que el runtime haría tras identificar al usuario.
func connectAndJoin(t *testing.T, a App) App {
	t.Helper()
	next, cmd := a.Update(connectRealtime(a.deps)())
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	return next.(App)
}

func logInAs(t *testing.T, a App, email string) App {
	t.Helper()
	_, err := a.deps.Session.LogIn(context.Background(), model.Credentials{Email: email, Password: "secreto"})
	require.NoError(t, err)
	next, _ := a.Update(message.SessionMsg(a.deps.Session.State()))
	return next.(App)
}

func register(t *testing.T, deps *Deps, name, email string) model.User {
	t.Helper()
	res, err := deps.API.Register(context.Background(), model.RegisterCredentials{Username: name, Email: email, Password: "secreto"})
	require.NoError(t, err)
	return res.User
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoginNavigatesToDashboard(t *testing.T) {
	deps, _ := newDeps(t)
	register(t, deps, "Ana", "ana@test.com")

	m := InitialLoginModel(deps)
	m.form = m.form.Set(0, "ana@test.com").Set(1, "secreto").setFocus(1)

	next, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, next.(LoginPage).loading)

	_, cmd = next.Update(cmd())
	require.NotNil(t, cmd)
	assert.Equal(t, message.NavigateMsg{Path: guard.Dashboard}, cmd())
	assert.True(t, deps.Session.State().IsAuthenticated())
}

func TestLoginWrongPasswordShowsError(t *testing.T) {
	deps, _ := newDeps(t)
	register(t, deps, "Ana", "ana@test.com")

	m := InitialLoginModel(deps)
	m.form = m.form.Set(0, "ana@test.com").Set(1, "otra").setFocus(1)

	next, cmd := m.Update(key("enter"))
	next, _ = next.Update(cmd())
	assert.Equal(t, "Credenciales inválidas", next.(LoginPage).msg)
	assert.False(t, deps.Session.State().IsAuthenticated())
}

func TestAnonymousIsSentToLogin(t *testing.T) {
	deps, _ := newDeps(t)
	a := InitialAppModel(deps, "/dashboard")

	next, _ := a.Update(message.NavigateMsg{Path: "/dashboard"})
	_, loading := next.(App).page.(LoadingPage)
	assert.True(t, loading, "protected route waits while the session is pending")

	next, _ = next.Update(message.RestoredMsg(deps.Session.Restore(context.Background())))
	assert.Equal(t, guard.Login, next.(App).Path())
	_, ok := next.(App).page.(LoginPage)
	assert.True(t, ok)
}

func TestPublicRouteRendersWhilePending(t *testing.T) {
	deps, _ := newDeps(t)
	a := InitialAppModel(deps, guard.Home)

	next, _ := a.Update(message.NavigateMsg{Path: "/reset-password/abc"})
	page, ok := next.(App).page.(ResetPasswordPage)
	require.True(t, ok)
	assert.Equal(t, "abc", page.token)
}

func TestStudentCannotOpenAdmin(t *testing.T) {
	deps, _ := newDeps(t)
	register(t, deps, "Admin", "admin@test.com")
	register(t, deps, "Lucía", "lucia@test.com")
	_, err := deps.Session.LogIn(context.Background(), model.Credentials{Email: "lucia@test.com", Password: "secreto"})
	require.NoError(t, err)

	a := InitialAppModel(deps, guard.Home)
	next, _ := a.Update(message.NavigateMsg{Path: guard.AdminUsers})
	assert.Equal(t, guard.Home, next.(App).Path())
}

func TestNavbarGreetsLoggedInUser(t *testing.T) {
	deps, _ := newDeps(t)
	register(t, deps, "Ana María", "ana@test.com")

	a := InitialAppModel(deps, guard.Home)
	next, _ := a.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	a = logInAs(t, next.(App), "ana@test.com")
	next, _ = a.Update(message.NavigateMsg{Path: guard.Dashboard})
	a = next.(App)

	require.Equal(t, guard.Dashboard, a.Path())
	assert.Contains(t, a.View(), "Hola, Ana")
}

func TestLogoutLeavesPreviousUserRooms(t *testing.T) {
	deps, _, h := newStack(t)
	ana := register(t, deps, "Ana", "ana@test.com")
	lucia := register(t, deps, "Lucía", "lucia@test.com")
	waitFor := func(room string, n int) {
		t.Helper()
		require.Eventually(t, func() bool { return h.Members(room) == n }, 2*time.Second, 10*time.Millisecond)
	}

	a := logInAs(t, InitialAppModel(deps, guard.Home), "ana@test.com")
	a = connectAndJoin(t, a)
	waitFor(ana.ID, 1)

	require.NoError(t, deps.Session.LogOut(context.Background()))
	next, _ := a.Update(message.SessionMsg(deps.Session.State()))
	a = next.(App)
	waitFor(ana.ID, 0)
	assert.False(t, deps.Realtime.Connected())

	a = logInAs(t, a, "lucia@test.com")
	a = connectAndJoin(t, a)
	waitFor(lucia.ID, 1)
	assert.Zero(t, h.Members(ana.ID))

	h.Emit(ana.ID, model.EventNewNotification, model.Notification{ID: "n-ana", Recipient: ana.ID, Content: "privada para Ana"})
	h.Emit(lucia.ID, model.EventNewNotification, model.Notification{ID: "n-lucia", Recipient: lucia.ID, Content: "para Lucía"})

	var e realtime.Event
	select {
	case e = <-deps.Realtime.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó ninguna notificación")
	}
	require.NotNil(t, e.Notification)
	assert.Equal(t, "n-lucia", e.Notification.ID)

	next, _ = a.Update(message.RealtimeMsg(e))
	a = next.(App)
	items := a.layout.feed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "n-lucia", items[0].ID)
}

func TestStaleNotificationIsDropped(t *testing.T) {
	deps, _ := newDeps(t)
	l := InitialLayoutModel(deps).SetUser(model.User{ID: "lucia"})

	l, _ = l.Update(message.RealtimeMsg{Name: model.EventNewNotification, Notification: &model.Notification{ID: "vieja", Recipient: "ana"}})
	assert.Empty(t, l.feed.Items())

	l, _ = l.Update(message.RealtimeMsg{Name: model.EventNewNotification, Notification: &model.Notification{ID: "nueva", Recipient: "lucia"}})
	require.Len(t, l.feed.Items(), 1)
	assert.Equal(t, "nueva", l.feed.Items()[0].ID)

	l = l.SetUser(model.User{})
	l, _ = l.Update(message.RealtimeMsg{Name: model.EventNewNotification, Notification: &model.Notification{ID: "sin sesión", Recipient: "lucia"}})
	assert.Len(t, l.feed.Items(), 1)
}

func TestEmptyPostIsNotSent(t *testing.T) {
	deps, _ := newDeps(t)
	m := InitialWallModel(deps)
	m.loading = false
	m.mode = composing

	next, _ := m.Update(key("ctrl+s"))
	w := next.(WallPage)
	assert.False(t, w.posting)
	assert.Equal(t, wall.ErrEmptyPost.Error(), w.msg)
}

func TestChatSendIsConfirmed(t *testing.T) {
	deps, _ := newDeps(t)
	register(t, deps, "Ana", "ana@test.com")
	lucia := register(t, deps, "Lucía", "lucia@test.com")
	ctx := context.Background()
	me, err := deps.Session.LogIn(ctx, model.Credentials{Email: "ana@test.com", Password: "secreto"})
	require.NoError(t, err)
	conv, err := deps.API.StartConversation(ctx, lucia.ID)
	require.NoError(t, err)

	m := InitialChatModel(deps)
	m.inbox = chat.NewInbox(me, []model.Conversation{conv})
	next, _ := m.openConversation(conv.ID)
	m = next.(ChatPage)
	m.input.SetValue("hola")

	next, cmd := m.Update(key("enter"))
	m = next.(ChatPage)
	require.NotNil(t, cmd)
	require.Len(t, m.inbox.Transcript(), 1)
	assert.Equal(t, chat.Sending, m.inbox.Transcript()[0].Status)

	next, _ = m.Update(cmd())
	m = next.(ChatPage)
	require.Len(t, m.inbox.Transcript(), 1)
	entry := m.inbox.Transcript()[0]
	assert.Equal(t, chat.Sent, entry.Status)
	assert.NotEmpty(t, entry.ID)

	// el eco del canal con el mismo clientId no duplica
	m.inbox.Receive(entry.Message)
	assert.Len(t, m.inbox.Transcript(), 1)
}

func TestHomeCheckoutOpensBrowser(t *testing.T) {
	deps, o := newDeps(t)
	m := InitialHomeModel(deps)

	next, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	_, _ = next.Update(cmd())
	require.Len(t, o.urls, 1)
	assert.Contains(t, o.urls[0], "session_id=")
}

func TestPaymentSuccessShowsReference(t *testing.T) {
	m := InitialPaymentSuccessModel(nil, url.Values{"session_id": {"cs_test_abc"}})
	assert.Contains(t, m.View(), "cs_test_abc")
	assert.Contains(t, m.View(), "24 a 48 horas")
}

func TestValidateNewPassword(t *testing.T) {
	tests := []struct {
		password, confirmation string
		want                   error
	}{
		{"secreto", "secreto", nil},
		{"secreto", "secreta", ErrPasswordMismatch},
		{"abc", "abc", ErrPasswordShort},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateNewPassword(tt.password, tt.confirmation))
	}
}
