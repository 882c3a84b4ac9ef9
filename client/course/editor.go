package course

import (
	"context"
	"errors"
	"strings"

	"momsdigitales/util/model"
)

var (
	ErrMissingTitle    = errors.New("el título es obligatorio")
	ErrMissingDetails  = errors.New("título y descripción son obligatorios")
	ErrMissingResource = errors.New("nombre y enlace son obligatorios")
)

// Backend son las mutaciones de cursos; todas devuelven el curso completo.
type Backend interface {
	CreateCourse(ctx context.Context, draft model.CourseDraft) (model.Course, error)
	AddModule(ctx context.Context, courseID string, in model.ModuleInput) (model.Course, error)
	DeleteModule(ctx context.Context, courseID, moduleID string) (model.Course, error)
	AddLesson(ctx context.Context, courseID, moduleID string, in model.LessonInput) (model.Course, error)
	DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string) (model.Course, error)
	AddResource(ctx context.Context, courseID, moduleID, lessonID string, in model.ResourceInput) (model.Course, error)
	DeleteResource(ctx context.Context, courseID, moduleID, lessonID, resourceID string) (model.Course, error)
}

func ValidateDraft(d model.CourseDraft) error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" {
		return ErrMissingDetails
	}
	return nil
}

func Create(ctx context.Context, b Backend, d model.CourseDraft) (model.Course, error) {
	if err := ValidateDraft(d); err != nil {
		return model.Course{}, err
	}
	return b.CreateCourse(ctx, d)
}

// Editor valida y manda las mutaciones. El curso devuelto se adopta entero con Adopt.
type Editor struct {
	backend Backend
	course  model.Course
}

func NewEditor(b Backend, c model.Course) *Editor {
	return &Editor{backend: b, course: c}
}

func (e *Editor) Course() model.Course {
	return e.course
}

func (e *Editor) Adopt(c model.Course) {
	e.course = c
}

func (e *Editor) AddModule(ctx context.Context, title string) (model.Course, error) {
	if strings.TrimSpace(title) == "" {
		return model.Course{}, ErrMissingTitle
	}
	return e.backend.AddModule(ctx, e.course.ID, model.ModuleInput{Title: strings.TrimSpace(title)})
}

func (e *Editor) DeleteModule(ctx context.Context, moduleID string) (model.Course, error) {
	return e.backend.DeleteModule(ctx, e.course.ID, moduleID)
}

func (e *Editor) AddLesson(ctx context.Context, moduleID string, in model.LessonInput) (model.Course, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Course{}, ErrMissingTitle
	}
	return e.backend.AddLesson(ctx, e.course.ID, moduleID, in)
}

func (e *Editor) DeleteLesson(ctx context.Context, moduleID, lessonID string) (model.Course, error) {
	return e.backend.DeleteLesson(ctx, e.course.ID, moduleID, lessonID)
}

func (e *Editor) AddResource(ctx context.Context, moduleID, lessonID string, in model.ResourceInput) (model.Course, error) {
	if strings.TrimSpace(in.Label) == "" || strings.TrimSpace(in.URL) == "" {
		return model.Course{}, ErrMissingResource
	}
	return e.backend.AddResource(ctx, e.course.ID, moduleID, lessonID, in)
}

func (e *Editor) DeleteResource(ctx context.Context, moduleID, lessonID, resourceID string) (model.Course, error) {
	return e.backend.DeleteResource(ctx, e.course.ID, moduleID, lessonID, resourceID)
}
