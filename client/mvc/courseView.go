package mvc

import (
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/course"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

type courseLoadedMsg struct {
	course model.Course
	err    error
}

// CourseViewPage es el reproductor: temario a la izquierda y lección seleccionada.
type CourseViewPage struct {
	deps     *Deps
	id       string
	player   *course.Player
	outline  []course.OutlineItem
	cursor   int
	resource int
	loading  bool
	msg      string
}

func InitialCourseViewModel(deps *Deps, id string) CourseViewPage {
	return CourseViewPage{deps: deps, id: id, loading: true}
}

func (m CourseViewPage) Init() tea.Cmd {
	return loadCourse(m.deps, m.id)
}

func loadCourse(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		c, err := deps.API.Course(bg(), id)
		return courseLoadedMsg{course: c, err: err}
	}
}

func (m CourseViewPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "No se pudo cargar el curso"))
		}
		m.player = course.NewPlayer(msg.course)
		m.outline = m.player.Outline()
		m.cursor = m.selectedRow()
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, message.Navigate(guard.Dashboard)
		case "up", "down":
			m.cursor = moveCursor(m.cursor, len(m.outline), msg.String())
		case "enter":
			if m.player == nil || len(m.outline) == 0 {
				break
			}
			it := m.outline[m.cursor]
			if it.Lesson < 0 {
				break
			}
			if err := m.player.Select(it.Module, it.Lesson); err == nil {
				m.outline = m.player.Outline()
				m.resource = 0
			}
		case "left", "right":
			if l, ok := m.lesson(); ok && len(l.Resources) > 0 {
				if msg.String() == "right" {
					m.resource = (m.resource + 1) % len(l.Resources)
				} else {
					m.resource = (m.resource + len(l.Resources) - 1) % len(l.Resources)
				}
			}
		case "o":
			if l, ok := m.lesson(); ok && l.VideoURL != "" {
				return m, m.open(course.EmbedURL(l.VideoURL))
			}
		case "a":
			if l, ok := m.lesson(); ok && len(l.Resources) > 0 {
				return m, m.open(l.Resources[m.resource].URL)
			}
		}
	case message.ResetMsg:
		m.msg = ""
	}
	return m, nil
}

func (m CourseViewPage) lesson() (model.Lesson, bool) {
	if m.player == nil {
		return model.Lesson{}, false
	}
	return m.player.Lesson()
}

func (m CourseViewPage) selectedRow() int {
	for i, it := range m.outline {
		if it.Selected {
			return i
		}
	}
	return 0
}

func (m *CourseViewPage) open(link string) tea.Cmd {
	if m.deps.Open == nil || m.deps.Open(link) != nil {
		return info(&m.msg, "Abre este enlace: "+link)
	}
	return info(&m.msg, "Abriendo "+link)
}

func (m CourseViewPage) View() string {
	if m.loading {
		return "Cargando curso...\n"
	}
	if m.player == nil {
		return renderInfo(m.msg) + "esc volver\n"
	}

	c := m.player.Course()
	s := titleStyle.Render(c.Title) + "\n"
	s += mutedStyle.Render(c.Description) + "\n\n"

	if len(m.outline) == 0 {
		s += "Este curso todavía no tiene contenido.\n\n"
	}
	for i, it := range m.outline {
		line := it.Title
		if it.Lesson >= 0 {
			line = "   " + line
			if it.Selected {
				line += "  ▶"
			}
		} else {
			line = titleStyle.Render(line)
		}
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		s += "\t" + line + "\n"
	}
	s += "\n"

	if l, ok := m.lesson(); ok {
		s += titleStyle.Render(l.Title) + "\n"
		if l.VideoURL != "" {
			s += "Vídeo: " + course.EmbedURL(l.VideoURL) + "\n"
		}
		if l.Description != "" {
			s += l.Description + "\n"
		}
		if len(l.Resources) > 0 {
			s += "\nRecursos:\n"
			for i, r := range l.Resources {
				line := r.Label + "  " + mutedStyle.Render(r.URL)
				if i == m.resource {
					line = "> " + line
				} else {
					line = "  " + line
				}
				s += line + "\n"
			}
		}
		s += "\n"
	} else if len(m.outline) > 0 {
		s += "Selecciona una lección.\n\n"
	}

	s += renderInfo(m.msg)
	s += "enter ver lección · 'o' abrir vídeo · ←/→ recurso · 'a' abrir recurso · esc volver\n"
	return s
}
