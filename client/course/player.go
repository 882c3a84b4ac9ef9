package course

import (
	"errors"

	"momsdigitales/util/model"
)

var ErrNoLesson = errors.New("lección no encontrada")

// Summary es la tarjeta del catálogo.
type Summary struct {
	Course  model.Course
	Modules int
	Lessons int
}

func Catalog(courses []model.Course) []Summary {
	out := make([]Summary, 0, len(courses))
	for _, c := range courses {
		out = append(out, Summary{Course: c, Modules: len(c.Modules), Lessons: LessonCount(c)})
	}
	return out
}

func LessonCount(c model.Course) int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}

// Player recorre un curso ya descargado. Cambiar de lección no vuelve a pedir el curso.
type Player struct {
	course model.Course
	module int
	lesson int
}

func NewPlayer(c model.Course) *Player {
	p := &Player{course: c, module: -1, lesson: -1}
	if len(c.Modules) > 0 && len(c.Modules[0].Lessons) > 0 {
		p.module, p.lesson = 0, 0
	}
	return p
}

func (p *Player) Course() model.Course {
	return p.course
}

func (p *Player) Lesson() (model.Lesson, bool) {
	if p.module < 0 {
		return model.Lesson{}, false
	}
	return p.course.Modules[p.module].Lessons[p.lesson], true
}

func (p *Player) Selected() (module, lesson int) {
	return p.module, p.lesson
}

func (p *Player) Select(module, lesson int) error {
	if module < 0 || module >= len(p.course.Modules) {
		return ErrNoLesson
	}
	if lesson < 0 || lesson >= len(p.course.Modules[module].Lessons) {
		return ErrNoLesson
	}
	p.module, p.lesson = module, lesson
	return nil
}

// Outline aplana módulos y lecciones para la lista de la TUI.
type OutlineItem struct {
	Module   int
	Lesson   int // -1 en la cabecera del módulo
	Title    string
	Selected bool
}

func (p *Player) Outline() []OutlineItem {
	var out []OutlineItem
	for mi, m := range p.course.Modules {
		out = append(out, OutlineItem{Module: mi, Lesson: -1, Title: m.Title})
		for li, l := range m.Lessons {
			out = append(out, OutlineItem{Module: mi, Lesson: li, Title: l.Title, Selected: mi == p.module && li == p.lesson})
		}
	}
	return out
}
