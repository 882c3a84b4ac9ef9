package repository

import (
	"encoding/json"

	"momsdigitales/util/model"
)

func cloneCourse(c *model.Course) model.Course {
	var out model.Course
	b, _ := json.Marshal(c)
	_ = json.Unmarshal(b, &out)
	return out
}

func ListCourses(db *Database) []model.Course {
	db.mu.RLock()
	defer db.mu.RUnlock()

	courses := make([]model.Course, 0, len(db.CourseIDs))
	for _, id := range db.CourseIDs {
		courses = append(courses, cloneCourse(db.Courses[id]))
	}
	return courses
}

func GetCourse(db *Database, id string) (model.Course, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.Courses[id]
	if !ok {
		return model.Course{}, ErrNotFound
	}
	return cloneCourse(c), nil
}

func CreateCourse(db *Database, title, description, thumbnail string) model.Course {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := &model.Course{ID: newID(), Title: title, Description: description, Thumbnail: thumbnail, Modules: []model.Module{}}
	db.Courses[c.ID] = c
	db.CourseIDs = append(db.CourseIDs, c.ID)
	return cloneCourse(c)
}

func DeleteCourse(db *Database, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.Courses[id]; !ok {
		return ErrNotFound
	}
	delete(db.Courses, id)
	db.CourseIDs = removeID(db.CourseIDs, id)
	return nil
}

// EditCourse aplica fn sobre el curso bajo lock y devuelve el curso completo resultante.
func EditCourse(db *Database, id string, fn func(c *model.Course) error) (model.Course, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.Courses[id]
	if !ok {
		return model.Course{}, ErrNotFound
	}
	if err := fn(c); err != nil {
		return model.Course{}, err
	}
	return cloneCourse(c), nil
}

func AddModule(c *model.Course, title string) {
	c.Modules = append(c.Modules, model.Module{ID: newID(), Title: title, Lessons: []model.Lesson{}})
}

func DeleteModule(c *model.Course, moduleID string) error {
	for i, m := range c.Modules {
		if m.ID == moduleID {
			c.Modules = append(c.Modules[:i], c.Modules[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func findModule(c *model.Course, moduleID string) (*model.Module, error) {
	for i := range c.Modules {
		if c.Modules[i].ID == moduleID {
			return &c.Modules[i], nil
		}
	}
	return nil, ErrNotFound
}

func findLesson(c *model.Course, moduleID, lessonID string) (*model.Lesson, error) {
	m, err := findModule(c, moduleID)
	if err != nil {
		return nil, err
	}
	for i := range m.Lessons {
		if m.Lessons[i].ID == lessonID {
			return &m.Lessons[i], nil
		}
	}
	return nil, ErrNotFound
}

func AddLesson(c *model.Course, moduleID string, in model.LessonInput) error {
	m, err := findModule(c, moduleID)
	if err != nil {
		return err
	}
	m.Lessons = append(m.Lessons, model.Lesson{
		ID:          newID(),
		Title:       in.Title,
		VideoURL:    in.VideoURL,
		Description: in.Description,
		Resources:   []model.Resource{},
	})
	return nil
}

func DeleteLesson(c *model.Course, moduleID, lessonID string) error {
	m, err := findModule(c, moduleID)
	if err != nil {
		return err
	}
	for i, l := range m.Lessons {
		if l.ID == lessonID {
			m.Lessons = append(m.Lessons[:i], m.Lessons[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func AddResource(c *model.Course, moduleID, lessonID string, in model.ResourceInput) error {
	l, err := findLesson(c, moduleID, lessonID)
	if err != nil {
		return err
	}
	l.Resources = append(l.Resources, model.Resource{ID: newID(), Label: in.Label, URL: in.URL})
	return nil
}

func DeleteResource(c *model.Course, moduleID, lessonID, resourceID string) error {
	l, err := findLesson(c, moduleID, lessonID)
	if err != nil {
		return err
	}
	for i, r := range l.Resources {
		if r.ID == resourceID {
			l.Resources = append(l.Resources[:i], l.Resources[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
