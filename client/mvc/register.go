package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

type registerMsg struct {
	err error
}

type RegisterPage struct {
	deps    *Deps
	form    form
	loading bool
	msg     string
}

func InitialRegisterModel(deps *Deps) RegisterPage {
	return RegisterPage{deps: deps, form: newForm("Nombre de usuario", "Email", "Contraseña").password(2)}
}

func (m RegisterPage) Init() tea.Cmd {
	return nil
}

func (m RegisterPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Home)
		case "ctrl+l":
			return m, message.Navigate(guard.Login)
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
			if creds.Username == "" || creds.Email == "" || creds.Password == "" {
				return m, info(&m.msg, "Todos los campos son obligatorios")
			}
			m.loading = true
			return m, signUp(m.deps, creds)
		}
	case registerMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al registrarse"))
		}
		return m, message.Navigate(guard.Home)
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func signUp(deps *Deps, creds model.RegisterCredentials) tea.Cmd {
	return func() tea.Msg {
		_, err := deps.Session.SignUp(bg(), creds)
		return registerMsg{err: err}
	}
}

func (m RegisterPage) View() string {
	s := titleStyle.Render("Crear cuenta") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Creando cuenta...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter registrarse · ctrl+l ya tengo cuenta · esc volver\n\n"
	return s
}
