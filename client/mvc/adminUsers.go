package mvc

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type usersLoadedMsg struct {
	users []model.User
	err   error
}

type userChangedMsg struct {
	done string
	err  error
}

// AdminUsersPage busca usuarias, cambia su rol o las elimina.
type AdminUsersPage struct {
	deps    *Deps
	search  textinput.Model
	users   []model.User
	cursor  int
	loading bool
	confirm confirm
	msg     string
}

func InitialAdminUsersModel(deps *Deps) AdminUsersPage {
	search := textinput.New()
	search.Placeholder = "Buscar por nombre o email"
	search.Focus()
	return AdminUsersPage{deps: deps, search: search, loading: true}
}

func (m AdminUsersPage) Init() tea.Cmd {
	return loadUsers(m.deps, "")
}

func loadUsers(deps *Deps, search string) tea.Cmd {
	return func() tea.Msg {
		users, err := deps.API.Users(bg(), search)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m AdminUsersPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	if m.confirm, cmd, handled = m.confirm.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case usersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al cargar las usuarias"))
		}
		m.users = msg.users
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		return m, nil
	case userChangedMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "No se pudo aplicar el cambio"))
		}
		return m, tea.Batch(info(&m.msg, msg.done), loadUsers(m.deps, m.search.Value()))
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.AdminHome)
		case "up", "down":
			m.cursor = moveCursor(m.cursor, len(m.users), msg.String())
			return m, nil
		case "enter":
			m.loading = true
			return m, loadUsers(m.deps, m.search.Value())
		case "ctrl+r":
			if u, ok := m.selected(); ok {
				role := model.Admin
				if u.IsAdmin() {
					role = model.NormalUser
				}
				m.confirm = ask(fmt.Sprintf("¿Cambiar el rol de %s a %s?", u.Username, roleLabel(model.User{Role: role})), changeRole(m.deps, u, role))
			}
			return m, nil
		case "ctrl+d":
			if u, ok := m.selected(); ok {
				if u.ID == m.deps.User().ID {
					return m, info(&m.msg, "No puedes eliminar tu propia cuenta")
				}
				m.confirm = ask(fmt.Sprintf("¿Eliminar a %s?", u.Username), deleteUser(m.deps, u))
			}
			return m, nil
		}
	}

	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m AdminUsersPage) selected() (model.User, bool) {
	if len(m.users) == 0 {
		return model.User{}, false
	}
	return m.users[m.cursor], true
}

func changeRole(deps *Deps, u model.User, role model.Role) tea.Cmd {
	return func() tea.Msg {
		err := deps.API.ChangeRole(bg(), u.ID, role)
		if err == nil {
			logs.Info("rol cambiado", "user", u.ID, "role", string(role))
		}
		return userChangedMsg{done: "Rol actualizado", err: err}
	}
}

func deleteUser(deps *Deps, u model.User) tea.Cmd {
	return func() tea.Msg {
		err := deps.API.DeleteUser(bg(), u.ID)
		if err == nil {
			logs.Info("usuaria eliminada", "user", u.ID)
		}
		return userChangedMsg{done: "Usuaria eliminada", err: err}
	}
}

func (m AdminUsersPage) View() string {
	s := titleStyle.Render("Usuarias") + "\n\n"
	s += m.search.View() + "\n\n"
	switch {
	case m.loading:
		s += "Buscando...\n\n"
	case len(m.users) == 0:
		s += mutedStyle.Render("Sin resultados.") + "\n\n"
	default:
		items := make([]string, len(m.users))
		for i, u := range m.users {
			items[i] = fmt.Sprintf("%-20s %-30s %s", u.Username, u.Email, roleLabel(u))
		}
		s += renderList(items, m.cursor) + "\n"
	}
	s += m.confirm.View()
	s += renderInfo(m.msg)
	s += "enter buscar · ctrl+r cambiar rol · ctrl+d eliminar · esc volver\n"
	return s
}
