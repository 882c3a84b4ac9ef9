package mvc

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/course"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

type coursesLoadedMsg struct {
	courses []model.Course
	err     error
}

// DashboardPage es el catálogo de cursos.
type DashboardPage struct {
	deps    *Deps
	catalog []course.Summary
	cursor  int
	loading bool
	msg     string
}

func InitialDashboardModel(deps *Deps) DashboardPage {
	return DashboardPage{deps: deps, loading: true}
}

func (m DashboardPage) Init() tea.Cmd {
	return loadCourses(m.deps)
}

func loadCourses(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		courses, err := deps.API.Courses(bg())
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

func (m DashboardPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al cargar los cursos"))
		}
		m.catalog = course.Catalog(msg.courses)
		m.cursor = 0
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down":
			m.cursor = moveCursor(m.cursor, len(m.catalog), msg.String())
		case "r":
			m.loading = true
			return m, loadCourses(m.deps)
		case "enter":
			if len(m.catalog) > 0 {
				return m, message.Navigate(m.deps.link(guard.CourseView, "id", m.catalog[m.cursor].Course.ID))
			}
		}
	case message.ResetMsg:
		m.msg = ""
	}
	return m, nil
}

func (m DashboardPage) View() string {
	s := titleStyle.Render("Mis Cursos") + "\n\n"
	switch {
	case m.loading:
		s += "Cargando cursos...\n\n"
	case len(m.catalog) == 0:
		s += mutedStyle.Render("Aún no hay cursos disponibles.") + "\n\n"
	default:
		items := make([]string, len(m.catalog))
		for i, c := range m.catalog {
			items[i] = fmt.Sprintf("%s  (%d módulos · %d lecciones)", c.Course.Title, c.Modules, c.Lessons)
		}
		s += renderList(items, m.cursor) + "\n"
		s += mutedStyle.Render(m.catalog[m.cursor].Course.Description) + "\n\n"
	}
	s += renderInfo(m.msg)
	s += "enter ver curso · 'r' recargar\n"
	return s
}
