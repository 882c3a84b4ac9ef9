package guard

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"github.com/gorilla/mux"

	"momsdigitales/client/session"
	"momsdigitales/util/model"
)

// Rutas de la aplicación.
const (
	Home              = "/"
	Login             = "/login"
	Register          = "/register"
	SetupAccount      = "/setup-account/{token}"
	ForgotPassword    = "/forgot-password"
	ResetPassword     = "/reset-password/{token}"
	PaymentSuccess    = "/payment/success"
	Dashboard         = "/dashboard"
	Profile           = "/perfil"
	Wall              = "/muro"
	Chat              = "/chat"
	CourseView        = "/course/{id}"
	AdminHome         = "/admin"
	AdminCreateCourse = "/admin/create-course"
	AdminCreateUser   = "/admin/crear-usuario"
	AdminCourse       = "/admin/course/{id}"
	AdminInvite       = "/admin/invite"
	AdminUsers        = "/admin/users"
)

type Access int

const (
	Public Access = iota
	Protected
)

// Policy dice quién puede ver una ruta. Roles vacío significa cualquier rol.
type Policy struct {
	Route  string
	Access Access
	Roles  []model.Role
}

var adminOnly = []model.Role{model.Admin}

// Policies es la tabla de la aplicación.
var Policies = []Policy{
	{Route: Home, Access: Public},
	{Route: Login, Access: Public},
	{Route: Register, Access: Public},
	{Route: SetupAccount, Access: Public},
	{Route: ForgotPassword, Access: Public},
	{Route: ResetPassword, Access: Public},
	{Route: PaymentSuccess, Access: Public},
	{Route: Dashboard, Access: Protected},
	{Route: Profile, Access: Protected},
	{Route: Wall, Access: Protected},
	{Route: Chat, Access: Protected},
	{Route: CourseView, Access: Protected},
	{Route: AdminHome, Access: Protected, Roles: adminOnly},
	{Route: AdminCreateCourse, Access: Protected, Roles: adminOnly},
	{Route: AdminCreateUser, Access: Protected, Roles: adminOnly},
	{Route: AdminCourse, Access: Protected, Roles: adminOnly},
	{Route: AdminInvite, Access: Protected, Roles: adminOnly},
	{Route: AdminUsers, Access: Protected, Roles: adminOnly},
}

type Outcome int

const (
	Render Outcome = iota
	Loading
	Redirect
)

type Decision struct {
	Outcome Outcome
	// Route es el patrón que se renderiza; con Redirect, Target es la ruta destino.
	Route  string
	Target string
	Vars   map[string]string
	Query  url.Values
}

type Guard struct {
	router   *mux.Router
	policies map[string]Policy
}

func New(policies []Policy) *Guard {
	g := &Guard{router: mux.NewRouter(), policies: make(map[string]Policy, len(policies))}
	for _, p := range policies {
		g.router.Path(p.Route).Name(p.Route)
		g.policies[p.Route] = p
	}
	return g
}

// Check decide qué hacer al navegar a path con el estado de sesión s.
func (g *Guard) Check(path string, s session.State) Decision {
	u, err := url.Parse(path)
	if err != nil {
		return Decision{Outcome: Redirect, Target: Home}
	}

	var match mux.RouteMatch
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: u.Path}}
	if !g.router.Match(req, &match) {
		return Decision{Outcome: Redirect, Target: Home}
	}
	p := g.policies[match.Route.GetName()]

	if p.Access == Protected {
		switch {
		case s.Status == session.Pending:
			return Decision{Outcome: Loading, Route: p.Route}
		case !s.IsAuthenticated():
			return Decision{Outcome: Redirect, Target: Login}
		case len(p.Roles) > 0 && !slices.Contains(p.Roles, s.User.Role):
			return Decision{Outcome: Redirect, Target: Home}
		}
	}
	return Decision{Outcome: Render, Route: p.Route, Vars: match.Vars, Query: u.Query()}
}

func (g *Guard) Policy(route string) (Policy, bool) {
	p, ok := g.policies[route]
	return p, ok
}

// URL construye la ruta concreta de un patrón, p. ej. URL(CourseView, "id", "42").
func (g *Guard) URL(route string, pairs ...string) (string, error) {
	r := g.router.Get(route)
	if r == nil {
		return "", fmt.Errorf("ruta desconocida %q", route)
	}
	u, err := r.URLPath(pairs...)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}
