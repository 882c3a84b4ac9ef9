package mvc

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/course"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type courseDeletedMsg struct {
	id  string
	err error
}

// AdminHomePage lista los cursos para gestionarlos.
type AdminHomePage struct {
	deps    *Deps
	courses []model.Course
	cursor  int
	loading bool
	confirm confirm
	msg     string
}

func InitialAdminHomeModel(deps *Deps) AdminHomePage {
	return AdminHomePage{deps: deps, loading: true}
}

func (m AdminHomePage) Init() tea.Cmd {
	return loadCourses(m.deps)
}

func (m AdminHomePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	if m.confirm, cmd, handled = m.confirm.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case coursesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al cargar los cursos"))
		}
		m.courses = msg.courses
		if m.cursor >= len(m.courses) {
			m.cursor = 0
		}
	case courseDeletedMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al eliminar el curso"))
		}
		for i, c := range m.courses {
			if c.ID == msg.id {
				m.courses = append(m.courses[:i:i], m.courses[i+1:]...)
				break
			}
		}
		m.cursor = 0
		return m, info(&m.msg, "Curso eliminado")
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down":
			m.cursor = moveCursor(m.cursor, len(m.courses), msg.String())
		case "n":
			return m, message.Navigate(guard.AdminCreateCourse)
		case "u":
			return m, message.Navigate(guard.AdminUsers)
		case "i":
			return m, message.Navigate(guard.AdminInvite)
		case "c":
			return m, message.Navigate(guard.AdminCreateUser)
		case "enter", "e":
			if len(m.courses) > 0 {
				return m, message.Navigate(m.deps.link(guard.AdminCourse, "id", m.courses[m.cursor].ID))
			}
		case "d":
			if len(m.courses) > 0 {
				c := m.courses[m.cursor]
				m.confirm = ask(fmt.Sprintf("¿Eliminar el curso %q?", c.Title), deleteCourse(m.deps, c.ID))
			}
		}
	case message.ResetMsg:
		m.msg = ""
	}
	return m, nil
}

func deleteCourse(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		err := deps.API.DeleteCourse(bg(), id)
		if err == nil {
			logs.Info("curso eliminado", "course", id)
		}
		return courseDeletedMsg{id: id, err: err}
	}
}

func (m AdminHomePage) View() string {
	s := titleStyle.Render("Panel de Administración") + "\n\n"
	switch {
	case m.loading:
		s += "Cargando cursos...\n\n"
	case len(m.courses) == 0:
		s += mutedStyle.Render("No hay cursos. Crea el primero con 'n'.") + "\n\n"
	default:
		items := make([]string, len(m.courses))
		for i, c := range m.courses {
			items[i] = fmt.Sprintf("%s  (%d módulos · %d lecciones)", c.Title, len(c.Modules), course.LessonCount(c))
		}
		s += renderList(items, m.cursor) + "\n"
	}
	s += m.confirm.View()
	s += renderInfo(m.msg)
	s += "enter gestionar · 'n' nuevo curso · 'd' eliminar\n"
	s += "'u' usuarios · 'i' invitar · 'c' crear usuario\n"
	return s
}
