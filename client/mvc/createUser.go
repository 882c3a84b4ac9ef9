package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type userCreatedMsg struct {
	user model.User
	err  error
}

// CreateUserPage da de alta una cuenta sin tocar la sesión de quien administra.
type CreateUserPage struct {
	deps    *Deps
	form    form
	loading bool
	msg     string
}

func InitialCreateUserModel(deps *Deps) CreateUserPage {
	return CreateUserPage{deps: deps, form: newForm("Nombre de usuario", "Email", "Contraseña").password(2)}
}

func (m CreateUserPage) Init() tea.Cmd {
	return nil
}

func (m CreateUserPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.AdminHome)
		case "enter":
			if !m.form.Last() {
				m.form = m.form.setFocus(m.form.focus + 1)
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			creds := model.RegisterCredentials{
				Username: m.form.Value(0),
				Email:    m.form.Value(1),
				Password: m.form.inputs[2].Value(),
			}
			if creds.Username == "" || creds.Email == "" || len(creds.Password) < 6 {
				return m, info(&m.msg, "Nombre, email y contraseña (mínimo 6 caracteres) son obligatorios")
			}
			m.loading = true
			deps := m.deps
			return m, func() tea.Msg {
				res, err := deps.API.Register(bg(), creds)
				return userCreatedMsg{user: res.User, err: err}
			}
		}
	case userCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al crear la usuaria"))
		}
		logs.Info("usuaria creada", "user", msg.user.ID)
		m.form = m.form.Reset()
		return m, info(&m.msg, "Usuaria "+msg.user.Username+" creada")
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m CreateUserPage) View() string {
	s := titleStyle.Render("Crear usuaria") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Creando...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter siguiente/crear · esc volver\n"
	return s
}
