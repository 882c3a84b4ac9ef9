package mvc

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/course"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/util/model"
)

type editMode int

const (
	browsing editMode = iota
	addingModule
	addingLesson
	addingResource
)

type courseEditedMsg struct {
	course model.Course
	done   string
	err    error
}

// row es una línea del árbol curso > módulo > lección > recurso.
type row struct {
	depth    int
	title    string
	module   string
	lesson   string
	resource string
}

func rows(c model.Course) []row {
	var out []row
	for _, m := range c.Modules {
		out = append(out, row{depth: 0, title: m.Title, module: m.ID})
		for _, l := range m.Lessons {
			out = append(out, row{depth: 1, title: l.Title, module: m.ID, lesson: l.ID})
			for _, r := range l.Resources {
				out = append(out, row{depth: 2, title: r.Label + "  " + r.URL, module: m.ID, lesson: l.ID, resource: r.ID})
			}
		}
	}
	return out
}

// CourseManagerPage edita los módulos, lecciones y recursos de un curso.
type CourseManagerPage struct {
	deps    *Deps
	id      string
	editor  *course.Editor
	rows    []row
	cursor  int
	mode    editMode
	form    form
	target  row
	loading bool
	confirm confirm
	msg     string
}

func InitialCourseManagerModel(deps *Deps, id string) CourseManagerPage {
	return CourseManagerPage{deps: deps, id: id, loading: true}
}

func (m CourseManagerPage) Init() tea.Cmd {
	return loadCourse(m.deps, m.id)
}

func (m CourseManagerPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	if m.confirm, cmd, handled = m.confirm.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case courseLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "No se pudo cargar el curso"))
		}
		m.editor = course.NewEditor(m.deps.API, msg.course)
		m.rows = rows(msg.course)
		return m, nil
	case courseEditedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "No se pudo guardar el cambio"))
		}
		m.editor.Adopt(msg.course)
		m.rows = rows(msg.course)
		if m.cursor >= len(m.rows) {
			m.cursor = max(len(m.rows)-1, 0)
		}
		m.mode = browsing
		return m, info(&m.msg, msg.done)
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	case tea.KeyMsg:
		if m.editor == nil {
			if msg.String() == "esc" {
				return m, message.Navigate(guard.AdminHome)
			}
			return m, nil
		}
		if m.mode != browsing {
			return m.updateForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m CourseManagerPage) selected() (row, bool) {
	if len(m.rows) == 0 {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m CourseManagerPage) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, message.Navigate(guard.AdminHome)
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(m.rows), msg.String())
	case "m":
		m.mode = addingModule
		m.form = newForm("Título del módulo")
	case "l":
		r, ok := m.selected()
		if !ok {
			return m, info(&m.msg, "Crea primero un módulo")
		}
		m.target = r
		m.mode = addingLesson
		m.form = newForm("Título de la lección", "URL del vídeo", "Descripción")
	case "r":
		r, ok := m.selected()
		if !ok || r.lesson == "" {
			return m, info(&m.msg, "Selecciona una lección")
		}
		m.target = r
		m.mode = addingResource
		m.form = newForm("Nombre del recurso", "Enlace")
	case "d":
		r, ok := m.selected()
		if !ok {
			break
		}
		m.confirm = ask(fmt.Sprintf("¿Eliminar %q?", r.title), m.remove(r))
	case "v":
		return m, message.Navigate(m.deps.link(guard.CourseView, "id", m.editor.Course().ID))
	}
	return m, nil
}

func (m CourseManagerPage) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = browsing
		return m, nil
	case "enter":
		if !m.form.Last() {
			m.form = m.form.setFocus(m.form.focus + 1)
			return m, nil
		}
		if m.loading {
			return m, nil
		}
		m.loading = true
		return m, m.submit()
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m CourseManagerPage) submit() tea.Cmd {
	editor, f, target := m.editor, m.form, m.target
	switch m.mode {
	case addingModule:
		return edit("Módulo añadido", func() (model.Course, error) {
			return editor.AddModule(bg(), f.Value(0))
		})
	case addingLesson:
		in := model.LessonInput{Title: f.Value(0), VideoURL: f.Value(1), Description: f.Value(2)}
		return edit("Lección añadida", func() (model.Course, error) {
			return editor.AddLesson(bg(), target.module, in)
		})
	case addingResource:
		in := model.ResourceInput{Label: f.Value(0), URL: f.Value(1)}
		return edit("Recurso añadido", func() (model.Course, error) {
			return editor.AddResource(bg(), target.module, target.lesson, in)
		})
	}
	return nil
}

func (m CourseManagerPage) remove(r row) tea.Cmd {
	editor := m.editor
	switch {
	case r.resource != "":
		return edit("Recurso eliminado", func() (model.Course, error) {
			return editor.DeleteResource(bg(), r.module, r.lesson, r.resource)
		})
	case r.lesson != "":
		return edit("Lección eliminada", func() (model.Course, error) {
			return editor.DeleteLesson(bg(), r.module, r.lesson)
		})
	default:
		return edit("Módulo eliminado", func() (model.Course, error) {
			return editor.DeleteModule(bg(), r.module)
		})
	}
}

func edit(done string, fn func() (model.Course, error)) tea.Cmd {
	return func() tea.Msg {
		c, err := fn()
		return courseEditedMsg{course: c, done: done, err: err}
	}
}

func (m CourseManagerPage) View() string {
	if m.editor == nil {
		if m.loading {
			return "Cargando curso...\n"
		}
		return renderInfo(m.msg) + "esc volver\n"
	}

	c := m.editor.Course()
	s := titleStyle.Render("Gestionar: "+c.Title) + "\n\n"

	if len(m.rows) == 0 {
		s += mutedStyle.Render("Sin módulos todavía.") + "\n"
	}
	for i, r := range m.rows {
		line := r.title
		switch r.depth {
		case 0:
			line = titleStyle.Render("■ " + line)
		case 1:
			line = "   ▶ " + line
		case 2:
			line = "      · " + mutedStyle.Render(line)
		}
		if i == m.cursor && m.mode == browsing {
			line = cursorStyle.Render(line)
		}
		s += "\t" + line + "\n"
	}
	s += "\n"

	switch m.mode {
	case addingModule:
		s += "Nuevo módulo\n" + m.form.View() + "\n"
	case addingLesson:
		s += "Nueva lección en el módulo seleccionado\n" + m.form.View() + "\n"
	case addingResource:
		s += "Nuevo recurso para la lección seleccionada\n" + m.form.View() + "\n"
	}
	if m.loading {
		s += "Guardando...\n\n"
	}

	s += m.confirm.View()
	s += renderInfo(m.msg)
	if m.mode == browsing {
		s += "'m' módulo · 'l' lección · 'r' recurso · 'd' eliminar · 'v' vista alumna · esc volver\n"
	} else {
		s += "enter siguiente/guardar · esc cancelar\n"
	}
	return s
}
