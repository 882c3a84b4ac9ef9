package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type profileSavedMsg struct {
	err error
}

// ProfilePage muestra y edita el perfil de la usuaria.
type ProfilePage struct {
	deps    *Deps
	form    form
	editing bool
	loading bool
	msg     string
}

func InitialProfileModel(deps *Deps) ProfilePage {
	return ProfilePage{deps: deps, form: profileForm(deps.User())}
}

func profileForm(u model.User) form {
	f := newForm("Nombre de usuario", "Biografía", "Ruta del avatar (opcional)")
	f = f.Set(0, u.Username)
	return f.Set(1, u.Bio)
}

func (m ProfilePage) Init() tea.Cmd {
	return nil
}

func (m ProfilePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al guardar el perfil"))
		}
		m.editing = false
		m.form = profileForm(m.deps.User())
		return m, info(&m.msg, "Perfil actualizado")
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	case tea.KeyMsg:
		if !m.editing {
			if msg.String() == "e" {
				m.editing = true
				m.form = profileForm(m.deps.User())
			}
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.editing = false
			return m, nil
		case "enter":
			if !m.form.Last() {
				m.form = m.form.setFocus(m.form.focus + 1)
				return m, nil
			}
			if m.loading {
				return m, nil
			}
			draft := model.ProfileDraft{Username: m.form.Value(0), Bio: m.form.Value(1)}
			if draft.Username == "" {
				return m, info(&m.msg, "El nombre de usuario es obligatorio")
			}
			avatar, err := readUpload(m.form.Value(2))
			if err != nil {
				return m, info(&m.msg, err.Error())
			}
			draft.Image = avatar
			m.loading = true
			return m, saveProfile(m.deps, draft)
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

// saveProfile actualiza el backend y después la sesión, que avisa al resto de la interfaz.
func saveProfile(deps *Deps, draft model.ProfileDraft) tea.Cmd {
	return func() tea.Msg {
		u, err := deps.API.UpdateProfile(bg(), draft)
		if err != nil {
			return profileSavedMsg{err: err}
		}
		if err := deps.Session.UpdateUser(bg(), u); err != nil {
			logs.Warn("no se pudo guardar la sesión", "error", err)
		}
		return profileSavedMsg{}
	}
}

func (m ProfilePage) View() string {
	u := m.deps.User()
	s := titleStyle.Render("Mi Perfil") + "\n\n"

	if m.editing {
		s += m.form.View() + "\n"
		if m.loading {
			s += "Guardando...\n\n"
		}
		s += renderInfo(m.msg)
		s += "enter siguiente/guardar · esc cancelar\n"
		return s
	}

	s += "Nombre:  " + userStyle.Render(u.Username) + "\n"
	s += "Email:   " + u.Email + "\n"
	s += "Rol:     " + roleLabel(u) + "\n"
	if u.Avatar != "" {
		s += "Avatar:  " + mutedStyle.Render(u.Avatar) + "\n"
	}
	bio := u.Bio
	if bio == "" {
		bio = mutedStyle.Render("Sin biografía")
	}
	s += "\n" + bio + "\n\n"
	s += renderInfo(m.msg)
	s += "'e' editar perfil\n"
	return s
}
