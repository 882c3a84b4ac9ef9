package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momsdigitales/client/session"
	"momsdigitales/util/model"
)

func authenticated(role model.Role) session.State {
	return session.State{Status: session.Authenticated, Token: "t", User: model.User{ID: "1", Role: role}}
}

func TestProtectedRedirectsAnonymousToLogin(t *testing.T) {
	g := New(Policies)
	anon := session.State{Status: session.Anonymous}

	for _, path := range []string{"/muro", "/dashboard", "/chat", "/perfil", "/course/42", "/admin"} {
		d := g.Check(path, anon)
		assert.Equal(t, Redirect, d.Outcome, path)
		assert.Equal(t, Login, d.Target, path)
	}
}

func TestPendingShowsLoading(t *testing.T) {
	g := New(Policies)
	pending := session.State{Status: session.Pending}

	assert.Equal(t, Loading, g.Check("/muro", pending).Outcome)
	// las públicas no esperan a la sesión
	assert.Equal(t, Render, g.Check("/login", pending).Outcome)
}

func TestAdminRoutesByRole(t *testing.T) {
	g := New(Policies)
	admin := []string{"/admin", "/admin/create-course", "/admin/crear-usuario", "/admin/course/7", "/admin/invite", "/admin/users"}

	for _, role := range []model.Role{model.NormalUser, "", "editor"} {
		for _, path := range admin {
			d := g.Check(path, authenticated(role))
			assert.Equal(t, Redirect, d.Outcome, path)
			assert.Equal(t, Home, d.Target, path)
		}
	}
	for _, path := range admin {
		d := g.Check(path, authenticated(model.Admin))
		assert.Equal(t, Render, d.Outcome, path)
	}
}

func TestRenderCarriesVarsAndQuery(t *testing.T) {
	g := New(Policies)

	d := g.Check("/course/abc123", authenticated(model.NormalUser))
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, CourseView, d.Route)
	assert.Equal(t, "abc123", d.Vars["id"])

	d = g.Check("/payment/success?session_id=cs_1", session.State{Status: session.Anonymous})
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, "cs_1", d.Query.Get("session_id"))
}

func TestUnknownRedirectsHome(t *testing.T) {
	g := New(Policies)
	d := g.Check("/no-existe", authenticated(model.Admin))
	assert.Equal(t, Redirect, d.Outcome)
	assert.Equal(t, Home, d.Target)
}

func TestURL(t *testing.T) {
	g := New(Policies)

	path, err := g.URL(AdminCourse, "id", "42")
	require.NoError(t, err)
	assert.Equal(t, "/admin/course/42", path)

	_, err = g.URL("/nada")
	assert.Error(t, err)
}

func TestPolicyLookup(t *testing.T) {
	g := New(Policies)

	p, ok := g.Policy(AdminUsers)
	require.True(t, ok)
	assert.Equal(t, Protected, p.Access)
	assert.Equal(t, []model.Role{model.Admin}, p.Roles)

	p, ok = g.Policy(Login)
	require.True(t, ok)
	assert.Equal(t, Public, p.Access)
}
