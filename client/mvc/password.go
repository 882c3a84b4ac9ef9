package mvc

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

var (
	ErrPasswordMismatch = errors.New("las contraseñas no coinciden")
	ErrPasswordShort    = errors.New("la contraseña debe tener al menos 6 caracteres")
)

// ValidateNewPassword comprueba la contraseña nueva y su confirmación.
func ValidateNewPassword(password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}
	if len(password) < 6 {
		return ErrPasswordShort
	}
	return nil
}

type passwordResultMsg struct {
	err error
}

type ForgotPasswordPage struct {
	deps    *Deps
	form    form
	loading bool
	sent    bool
	msg     string
}

func InitialForgotPasswordModel(deps *Deps) ForgotPasswordPage {
	return ForgotPasswordPage{deps: deps, form: newForm("Email")}
}

func (m ForgotPasswordPage) Init() tea.Cmd {
	return nil
}

func (m ForgotPasswordPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Login)
		case "enter":
			email := m.form.Value(0)
			if email == "" || m.loading {
				return m, nil
			}
			m.loading = true
			deps := m.deps
			return m, func() tea.Msg {
				return passwordResultMsg{err: deps.API.ForgotPassword(bg(), email)}
			}
		}
	case passwordResultMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al enviar el correo"))
		}
		m.sent = true
		return m, info(&m.msg, "Revisa tu correo para restablecer la contraseña")
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m ForgotPasswordPage) View() string {
	s := titleStyle.Render("Recuperar contraseña") + "\n\n"
	s += "Te enviaremos un enlace para crear una nueva.\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Enviando...\n\n"
	}
	if m.sent {
		s += "Correo enviado.\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter enviar · esc volver al login\n\n"
	return s
}

type ResetPasswordPage struct {
	deps    *Deps
	token   string
	form    form
	loading bool
	msg     string
}

func InitialResetPasswordModel(deps *Deps, token string) ResetPasswordPage {
	return ResetPasswordPage{
		deps:  deps,
		token: token,
		form:  newForm("Nueva contraseña", "Confirmar contraseña").password(0).password(1),
	}
}

func (m ResetPasswordPage) Init() tea.Cmd {
	return nil
}

func (m ResetPasswordPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Login)
		case "enter":
			if !m.form.Last() {
				m.form = m.form.setFocus(m.form.focus + 1)
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			password := m.form.inputs[0].Value()
			if err := ValidateNewPassword(password, m.form.inputs[1].Value()); err != nil {
				return m, info(&m.msg, err.Error())
			}
			m.loading = true
			deps, token := m.deps, m.token
			return m, func() tea.Msg {
				return passwordResultMsg{err: deps.API.ResetPassword(bg(), token, password)}
			}
		}
	case passwordResultMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "El enlace es inválido o ha expirado"))
		}
		return m, message.Navigate(guard.Login)
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m ResetPasswordPage) View() string {
	s := titleStyle.Render("Nueva contraseña") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Guardando...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter guardar · esc volver al login\n\n"
	return s
}

// SetupAccountPage completa el perfil de una invitación.
type SetupAccountPage struct {
	deps    *Deps
	token   string
	form    form
	loading bool
	msg     string
}

func InitialSetupAccountModel(deps *Deps, token string) SetupAccountPage {
	return SetupAccountPage{
		deps:  deps,
		token: token,
		form:  newForm("Nombre de usuario", "Contraseña", "Ruta del avatar (opcional)").password(1),
	}
}

func (m SetupAccountPage) Init() tea.Cmd {
	return nil
}

func (m SetupAccountPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Home)
		case "enter":
			if !m.form.Last() {
				m.form = m.form.setFocus(m.form.focus + 1)
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			setup := model.AccountSetup{Username: m.form.Value(0), Password: m.form.inputs[1].Value()}
			if setup.Username == "" || len(setup.Password) < 6 {
				return m, info(&m.msg, "Nombre y contraseña (mínimo 6 caracteres) son obligatorios")
			}
			image, err := readUpload(m.form.Value(2))
			if err != nil {
				return m, info(&m.msg, err.Error())
			}
			setup.Image = image
			m.loading = true
			deps, token := m.deps, m.token
			return m, func() tea.Msg {
				return passwordResultMsg{err: deps.API.CompleteProfile(bg(), token, setup)}
			}
		}
	case passwordResultMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al activar la cuenta"))
		}
		return m, message.Navigate(guard.Login)
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m SetupAccountPage) View() string {
	s := titleStyle.Render("Activa tu cuenta") + "\n\n"
	s += "Te han invitado a MomsDigitales. Completa tu perfil para entrar.\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Activando...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter activar · esc salir\n\n"
	return s
}
