package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type invitedMsg struct {
	res model.InviteResponse
	err error
}

// InvitePage genera el enlace de activación para una usuaria nueva.
type InvitePage struct {
	deps    *Deps
	form    form
	link    string
	loading bool
	msg     string
}

func InitialInviteModel(deps *Deps) InvitePage {
	return InvitePage{deps: deps, form: newForm("Email de la invitada")}
}

func (m InvitePage) Init() tea.Cmd {
	return nil
}

func (m InvitePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.AdminHome)
		case "enter":
			email := m.form.Value(0)
			if email == "" || m.loading {
				return m, nil
			}
			m.loading = true
			deps := m.deps
			return m, func() tea.Msg {
				res, err := deps.API.Invite(bg(), email)
				return invitedMsg{res: res, err: err}
			}
		}
	case invitedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al generar la invitación"))
		}
		logs.Info("invitación generada", "email", m.form.Value(0))
		m.link = msg.res.Link
		m.form = m.form.Reset()
		return m, info(&m.msg, "Invitación creada. Comparte el enlace.")
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m InvitePage) View() string {
	s := titleStyle.Render("Invitar usuaria") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Generando...\n\n"
	}
	if m.link != "" {
		s += "Enlace de activación:\n" + userStyle.Render(m.link) + "\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter invitar · esc volver\n"
	return s
}
