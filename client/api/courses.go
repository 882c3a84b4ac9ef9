package api

import (
	"context"
	"net/http"
	"net/url"

	"momsdigitales/util/model"
)

func coursePath(courseID string, parts ...string) string {
	p := "/courses/" + url.PathEscape(courseID)
	for i, part := range parts {
		if i%2 == 0 {
			p += "/" + part
		} else {
			p += "/" + url.PathEscape(part)
		}
	}
	return p
}

func (c *Client) Courses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := c.doJSON(ctx, http.MethodGet, "/courses", nil, &courses)
	return courses, err
}

func (c *Client) Course(ctx context.Context, id string) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodGet, coursePath(id), nil, &course)
	return course, err
}

func (c *Client) CreateCourse(ctx context.Context, draft model.CourseDraft) (model.Course, error) {
	var course model.Course
	fields := [][2]string{{"title", draft.Title}, {"description", draft.Description}}
	err := c.doMultipart(ctx, http.MethodPost, "/courses", fields, multipartFile{field: "thumbnail", upload: draft.Thumbnail}, &course)
	return course, err
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, coursePath(id), nil, nil)
}

// Las mutaciones de estructura devuelven siempre el curso completo.

func (c *Client) AddModule(ctx context.Context, courseID string, in model.ModuleInput) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodPost, coursePath(courseID, "modules"), in, &course)
	return course, err
}

func (c *Client) DeleteModule(ctx context.Context, courseID, moduleID string) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodDelete, coursePath(courseID, "modules", moduleID), nil, &course)
	return course, err
}

func (c *Client) AddLesson(ctx context.Context, courseID, moduleID string, in model.LessonInput) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodPost, coursePath(courseID, "modules", moduleID, "lessons"), in, &course)
	return course, err
}

func (c *Client) DeleteLesson(ctx context.Context, courseID, moduleID, lessonID string) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodDelete, coursePath(courseID, "modules", moduleID, "lessons", lessonID), nil, &course)
	return course, err
}

func (c *Client) AddResource(ctx context.Context, courseID, moduleID, lessonID string, in model.ResourceInput) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodPost, coursePath(courseID, "modules", moduleID, "lessons", lessonID, "resources"), in, &course)
	return course, err
}

func (c *Client) DeleteResource(ctx context.Context, courseID, moduleID, lessonID, resourceID string) (model.Course, error) {
	var course model.Course
	err := c.doJSON(ctx, http.MethodDelete, coursePath(courseID, "modules", moduleID, "lessons", lessonID, "resources", resourceID), nil, &course)
	return course, err
}
