package mvc

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/notify"
	"momsdigitales/client/terminal"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

// layoutMsg marca los mensajes que consume el Layout y no la página.
type layoutMsg interface {
	layoutMsg()
}

type notificationsLoadedMsg struct {
	items []model.Notification
	user  *model.User
	err   error
}

type notificationActionMsg struct {
	err error
}

func (notificationsLoadedMsg) layoutMsg() {}
func (notificationActionMsg) layoutMsg()  {}

type menuItem struct {
	label string
	path  string
}

const logoutPath = "logout"

var (
	sidebarStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).PaddingRight(2).MarginRight(2)
	navbarStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).MarginBottom(1)
	unreadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f55"))
)

// Layout es el marco de las páginas con sesión: menú lateral, barra superior y notificaciones.
type Layout struct {
	deps *Deps
	user model.User

	items   []menuItem
	cursor  int
	focused bool
	active  string

	feed       *notify.Feed
	showNotes  bool
	noteCursor int

	width  int
	height int
	msg    string
}

func InitialLayoutModel(deps *Deps) Layout {
	l := Layout{deps: deps, feed: notify.NewFeed(nil)}
	l.width, l.height = terminal.Size()
	return l.SetUser(model.User{})
}

func (l Layout) SetUser(u model.User) Layout {
	l.user = u
	l.items = []menuItem{
		{"Muro Social", guard.Wall},
		{"Mis Cursos", guard.Dashboard},
		{"Chat", guard.Chat},
		{"Mi Perfil", guard.Profile},
	}
	if u.IsAdmin() {
		l.items = append([]menuItem{{"Panel Admin", guard.AdminHome}}, l.items...)
	}
	l.items = append(l.items, menuItem{"Cerrar sesión", logoutPath})
	if l.cursor >= len(l.items) {
		l.cursor = 0
	}
	return l
}

func (l Layout) SetActive(route string) Layout {
	l.active = route
	return l
}

func (l Layout) Resize(width, height int) Layout {
	l.width, l.height = width, height
	return l
}

// Clear olvida las notificaciones al cerrar sesión.
func (l Layout) Clear() Layout {
	l.feed = notify.NewFeed(nil)
	l.showNotes = false
	l.focused = false
	return l
}

// Load trae notificaciones y perfil a la vez.
func (l Layout) Load() tea.Cmd {
	deps := l.deps
	return func() tea.Msg {
		var out notificationsLoadedMsg
		g, ctx := errgroup.WithContext(bg())
		g.Go(func() error {
			items, err := deps.API.Notifications(ctx)
			out.items = items
			return err
		})
		g.Go(func() error {
			u, err := deps.API.Profile(ctx)
			if err == nil {
				out.user = &u
			}
			return err
		})
		out.err = g.Wait()
		return out
	}
}

func (l Layout) Update(msg tea.Msg) (Layout, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		if msg.items != nil {
			l.feed = notify.NewFeed(msg.items)
		}
		var cmds []tea.Cmd
		if msg.user != nil && *msg.user != l.user {
			u := *msg.user
			cmds = append(cmds, func() tea.Msg {
				if err := l.deps.Session.UpdateUser(bg(), u); err != nil {
					logs.Warn("refreshing user", "error", err)
				}
				return nil
			})
		}
		if msg.err != nil {
			cmds = append(cmds, info(&l.msg, failure(msg.err, "Error cargando notificaciones")))
		}
		return l, tea.Batch(cmds...)
	case notificationActionMsg:
		if msg.err != nil {
			return l, info(&l.msg, failure(msg.err, "Error actualizando notificaciones"))
		}
	case message.RealtimeMsg:
		if n := msg.Notification; n != nil {
			// eventos que quedaron en cola de una sesión anterior
			if l.user.ID == "" || (n.Recipient != "" && n.Recipient != l.user.ID) {
				logs.Debug("notificación ajena descartada", "recipient", n.Recipient)
				return l, nil
			}
			l.feed.Prepend(*n)
			return l, info(&l.msg, "Nueva notificación")
		}
	case message.ResetMsg:
		l.msg = ""
	}
	return l, nil
}

// HandleKey procesa los atajos del marco. handled=false deja la tecla para la página.
func (l Layout) HandleKey(key tea.KeyMsg) (Layout, tea.Cmd, bool) {
	switch key.String() {
	case "ctrl+b":
		l.focused = !l.focused
		l.showNotes = false
		return l, nil, true
	case "ctrl+n":
		l.showNotes = !l.showNotes
		l.noteCursor = 0
		return l, nil, true
	}

	if l.showNotes {
		items := l.feed.Items()
		switch key.String() {
		case "up", "down":
			l.noteCursor = moveCursor(l.noteCursor, len(items), key.String())
		case "esc":
			l.showNotes = false
		case "a":
			l.feed.MarkAllRead()
			return l, markAllRead(l.deps), true
		case "enter":
			if len(items) == 0 {
				break
			}
			n := items[l.noteCursor]
			l.feed.MarkRead(n.ID)
			l.showNotes = false
			cmds := []tea.Cmd{markRead(l.deps, n.ID)}
			if n.Link != "" {
				cmds = append(cmds, message.Navigate(n.Link))
			}
			return l, tea.Batch(cmds...), true
		}
		return l, nil, true
	}

	if l.focused {
		switch key.String() {
		case "up", "down":
			l.cursor = moveCursor(l.cursor, len(l.items), key.String())
		case "esc":
			l.focused = false
		case "enter", "right":
			item := l.items[l.cursor]
			l.focused = false
			if item.path == logoutPath {
				return l, logout(l.deps), true
			}
			return l, message.Navigate(item.path), true
		}
		return l, nil, true
	}
	return l, nil, false
}

func markRead(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		return notificationActionMsg{err: deps.API.MarkRead(bg(), id)}
	}
}

func markAllRead(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		return notificationActionMsg{err: deps.API.MarkAllRead(bg())}
	}
}

func logout(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Session.LogOut(bg()); err != nil {
			logs.Warn("logout", "error", err)
		}
		return nil
	}
}

func roleLabel(u model.User) string {
	if u.IsAdmin() {
		return "Admin"
	}
	return "Estudiante"
}

func (l Layout) navbar() string {
	bell := fmt.Sprintf("Notificaciones: %d", l.feed.Unread())
	if l.feed.Unread() > 0 {
		bell = unreadStyle.Render(bell)
	}
	s := fmt.Sprintf("%s   Hola, %s · %s   %s",
		titleStyle.Render("MomsDigitales"), userStyle.Render(firstWord(l.user.Username)), roleLabel(l.user), bell)
	return navbarStyle.Width(max(l.width-2, 40)).Render(s)
}

func (l Layout) sidebar() string {
	var s string
	for i, item := range l.items {
		label := item.label
		if item.path == l.active {
			label = "› " + label
		} else {
			label = "  " + label
		}
		if l.focused && i == l.cursor {
			label = cursorStyle.Render(label)
		}
		s += label + "\n"
	}
	return sidebarStyle.Render(s)
}

func (l Layout) notifications() string {
	s := titleStyle.Render("Notificaciones") + "\n\n"
	items := l.feed.Items()
	if len(items) == 0 {
		return s + mutedStyle.Render("No tienes notificaciones") + "\n"
	}
	for i, n := range items {
		from := ""
		if n.Sender != nil {
			from = n.Sender.Username + " "
		}
		line := from + n.Content
		if !n.IsRead {
			line = "● " + line
		} else {
			line = "  " + line
		}
		if i == l.noteCursor {
			line = cursorStyle.Render(line)
		}
		s += line + "\n"
	}
	return s + "\nenter abrir · 'a' marcar todas como leídas · esc cerrar\n"
}

func (l Layout) View(content string) string {
	body := content
	if l.showNotes {
		body = l.notifications()
	}
	main := lipgloss.JoinHorizontal(lipgloss.Top, l.sidebar(), body)

	var b strings.Builder
	b.WriteString(l.navbar() + "\n")
	b.WriteString(terminal.Fill(main, l.height-4) + "\n")
	b.WriteString(renderInfo(l.msg))
	b.WriteString(mutedStyle.Render("ctrl+b menú · ctrl+n notificaciones · ctrl+c salir") + "\n")
	return b.String()
}
