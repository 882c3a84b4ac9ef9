package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/course"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type courseCreatedMsg struct {
	course model.Course
	err    error
}

type CreateCoursePage struct {
	deps    *Deps
	form    form
	loading bool
	msg     string
}

func InitialCreateCourseModel(deps *Deps) CreateCoursePage {
	return CreateCoursePage{deps: deps, form: newForm("Título", "Descripción", "Ruta de la portada (opcional)")}
}

func (m CreateCoursePage) Init() tea.Cmd {
	return nil
}

func (m CreateCoursePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			draft := model.CourseDraft{Title: m.form.Value(0), Description: m.form.Value(1)}
			if err := course.ValidateDraft(draft); err != nil {
				return m, info(&m.msg, err.Error())
			}
			thumb, err := readUpload(m.form.Value(2))
			if err != nil {
				return m, info(&m.msg, err.Error())
			}
			draft.Thumbnail = thumb
			m.loading = true
			deps := m.deps
			return m, func() tea.Msg {
				c, err := course.Create(bg(), deps.API, draft)
				return courseCreatedMsg{course: c, err: err}
			}
		}
	case courseCreatedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al crear el curso"))
		}
		logs.Info("curso creado", "course", msg.course.ID)
		return m, message.Navigate(m.deps.link(guard.AdminCourse, "id", msg.course.ID))
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m CreateCoursePage) View() string {
	s := titleStyle.Render("Nuevo curso") + "\n\n"
	s += m.form.View() + "\n"
	if m.loading {
		s += "Creando curso...\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter siguiente/crear · esc volver\n"
	return s
}
