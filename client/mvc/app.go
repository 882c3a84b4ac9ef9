package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/realtime"
	"momsdigitales/client/session"
	"momsdigitales/logs"
)

type realtimeConnectedMsg struct {
	err error
}

// App es el modelo raíz: resuelve rutas con el guard y envuelve las protegidas en el Layout.
type App struct {
	deps    *Deps
	path    string
	route   string
	page    tea.Model
	layout  Layout
	changes <-chan session.State

	identified string
}

func InitialAppModel(deps *Deps, start string) App {
	changes := make(chan session.State, 16)
	deps.Session.Subscribe(func(s session.State) {
		select {
		case changes <- s:
		default:
			// la App vuelve a leer el estado al procesar el mensaje
		}
	})
	if start == "" {
		start = guard.Home
	}
	return App{
		deps:    deps,
		path:    start,
		page:    InitialLoadingModel(),
		layout:  InitialLayoutModel(deps),
		changes: changes,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		restoreSession(a.deps),
		message.WaitForSession(a.changes),
		message.WaitForEvent(a.deps.Realtime.Events()),
	)
}

func restoreSession(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		return message.RestoredMsg(deps.Session.Restore(bg()))
	}
}

// connectRealtime abre una conexión nueva con el token actual, cerrando la anterior.
func connectRealtime(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		return realtimeConnectedMsg{err: deps.Realtime.Reconnect(bg())}
	}
}

func joinRoom(deps *Deps, room string) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Realtime.Join(room); err != nil {
			logs.Warn("join room", "room", room, "error", err)
		}
		return nil
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.framed() {
			var cmd tea.Cmd
			var handled bool
			a.layout, cmd, handled = a.layout.HandleKey(msg)
			if handled {
				return a, cmd
			}
		}
	case tea.WindowSizeMsg:
		a.layout = a.layout.Resize(msg.Width, msg.Height)
	case message.NavigateMsg:
		return a.navigate(msg.Path)
	case message.RestoredMsg:
		identify := a.identify(session.State(msg))
		next, nav := a.navigate(a.path)
		return next, tea.Batch(identify, nav)
	case message.SessionMsg:
		return a.sessionChanged()
	case realtimeConnectedMsg:
		if msg.err != nil {
			logs.Warn("realtime no disponible", "error", msg.err)
			return a, nil
		}
		if a.identified == "" {
			// la sesión se cerró mientras se conectaba
			_ = a.deps.Realtime.Close()
			return a, nil
		}
		return a, joinRoom(a.deps, a.identified)
	case message.RealtimeMsg:
		var cmds []tea.Cmd
		cmds = append(cmds, message.WaitForEvent(a.deps.Realtime.Events()))
		if msg.Notification != nil {
			var cmd tea.Cmd
			a.layout, cmd = a.layout.Update(msg)
			cmds = append(cmds, cmd)
		}
		if msg.Message != nil {
			var cmd tea.Cmd
			a.page, cmd = a.page.Update(msg)
			cmds = append(cmds, cmd)
		}
		if msg.Name == realtime.Disconnected {
			logs.Warn("realtime desconectado por el servidor")
		}
		return a, tea.Batch(cmds...)
	case layoutMsg:
		var cmd tea.Cmd
		a.layout, cmd = a.layout.Update(msg)
		return a, cmd
	case message.ResetMsg:
		var lcmd, pcmd tea.Cmd
		a.layout, lcmd = a.layout.Update(msg)
		a.page, pcmd = a.page.Update(msg)
		return a, tea.Batch(lcmd, pcmd)
	}

	var cmd tea.Cmd
	a.page, cmd = a.page.Update(msg)
	return a, cmd
}

func (a App) sessionChanged() (tea.Model, tea.Cmd) {
	s := a.deps.Session.State()
	cmds := []tea.Cmd{message.WaitForSession(a.changes)}
	a.layout = a.layout.SetUser(s.User)

	if !s.IsAuthenticated() {
		if a.identified != "" {
			// fuera de todas las salas del usuario anterior antes de que entre otro
			if err := a.deps.Realtime.Close(); err != nil {
				logs.Debug("cerrando realtime", "error", err)
			}
		}
		a.identified = ""
		a.layout = a.layout.Clear()
	} else {
		cmds = append(cmds, a.identify(s))
	}

	// si la ruta actual ya no se puede ver (logout, cambio de rol) se vuelve a pasar por el guard
	if d := a.deps.Guard.Check(a.path, s); d.Outcome != guard.Render {
		next, cmd := a.navigate(a.path)
		return next, tea.Batch(append(cmds, cmd)...)
	}
	return a, tea.Batch(cmds...)
}

// identify abre el canal realtime con el token del usuario, que al conectar entra en su sala,
// y carga la barra superior. Solo una vez por usuario.
func (a *App) identify(s session.State) tea.Cmd {
	if !s.IsAuthenticated() || s.User.ID == a.identified {
		return nil
	}
	a.identified = s.User.ID
	a.layout = a.layout.SetUser(s.User)
	return tea.Batch(a.layout.Load(), connectRealtime(a.deps))
}

func (a App) navigate(path string) (tea.Model, tea.Cmd) {
	d := a.deps.Guard.Check(path, a.deps.Session.State())
	switch d.Outcome {
	case guard.Redirect:
		logs.Debug("redirect", "from", path, "to", d.Target)
		return a.navigate(d.Target)
	case guard.Loading:
		a.path = path
		a.page = InitialLoadingModel()
		return a, nil
	}

	a.path = path
	a.route = d.Route
	a.page = a.build(d)
	a.layout = a.layout.SetActive(d.Route)
	return a, a.page.Init()
}

func (a App) build(d guard.Decision) tea.Model {
	switch d.Route {
	case guard.Login:
		return InitialLoginModel(a.deps)
	case guard.Register:
		return InitialRegisterModel(a.deps)
	case guard.ForgotPassword:
		return InitialForgotPasswordModel(a.deps)
	case guard.ResetPassword:
		return InitialResetPasswordModel(a.deps, d.Vars["token"])
	case guard.SetupAccount:
		return InitialSetupAccountModel(a.deps, d.Vars["token"])
	case guard.PaymentSuccess:
		return InitialPaymentSuccessModel(a.deps, d.Query)
	case guard.Dashboard:
		return InitialDashboardModel(a.deps)
	case guard.CourseView:
		return InitialCourseViewModel(a.deps, d.Vars["id"])
	case guard.Wall:
		return InitialWallModel(a.deps)
	case guard.Chat:
		return InitialChatModel(a.deps)
	case guard.Profile:
		return InitialProfileModel(a.deps)
	case guard.AdminHome:
		return InitialAdminHomeModel(a.deps)
	case guard.AdminCreateCourse:
		return InitialCreateCourseModel(a.deps)
	case guard.AdminCourse:
		return InitialCourseManagerModel(a.deps, d.Vars["id"])
	case guard.AdminUsers:
		return InitialAdminUsersModel(a.deps)
	case guard.AdminInvite:
		return InitialInviteModel(a.deps)
	case guard.AdminCreateUser:
		return InitialCreateUserModel(a.deps)
	}
	return InitialHomeModel(a.deps)
}

// framed indica si la página actual va dentro del Layout.
func (a App) framed() bool {
	p, ok := a.deps.Guard.Policy(a.route)
	return ok && p.Access == guard.Protected && a.deps.Session.State().IsAuthenticated()
}

func (a App) Path() string {
	return a.path
}

func (a App) View() string {
	if a.framed() {
		return a.layout.View(a.page.View())
	}
	return a.page.View()
}
