package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

type loginMsg struct {
	err error
}

type LoginPage struct {
	deps    *Deps
	form    form
	loading bool
	msg     string
}

func InitialLoginModel(deps *Deps) LoginPage {
	return LoginPage{deps: deps, form: newForm("Email", "Contraseña").password(1)}
}

func (m LoginPage) Init() tea.Cmd {
	return nil
}

func (m LoginPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Home)
		case "ctrl+r":
			return m, message.Navigate(guard.Register)
		case "ctrl+f":
			return m, message.Navigate(guard.ForgotPassword)
		case "enter":
			if !m.form.Last() {
				m.form = m.form.setFocus(m.form.focus + 1)
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			creds := model.Credentials{Email: m.form.Value(0), Password: m.form.inputs[1].Value()}
			if creds.Email == "" || creds.Password == "" {
				return m, info(&m.msg, "Email y contraseña son obligatorios")
			}
			m.loading = true
			return m, logIn(m.deps, creds)
		}
	case loginMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al iniciar sesión"))
		}
		return m, message.Navigate(guard.Dashboard)
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func logIn(deps *Deps, creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		_, err := deps.Session.LogIn(bg(), creds)
		return loginMsg{err: err}
	}
}

func (m LoginPage) View() string {
	s := titleStyle.Render("Bienvenida de nuevo") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Entrando...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter entrar · ctrl+f olvidé mi contraseña · ctrl+r crear cuenta · esc volver\n\n"
	return s
}
