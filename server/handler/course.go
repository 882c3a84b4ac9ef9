package handler

import (
	"net/http"

	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

func ListCoursesHandler(w http.ResponseWriter, req *http.Request) {
	etc.Response(w, http.StatusOK, repository.ListCourses(etc.GetDb(req)))
}

func GetCourseHandler(w http.ResponseWriter, req *http.Request) {
	c, err := repository.GetCourse(etc.GetDb(req), req.PathValue("id"))
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, c)
}

func CreateCourseHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUpload); err != nil {
		etc.Fail(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	title := req.FormValue("title")
	if title == "" {
		etc.Fail(w, http.StatusBadRequest, "El título es obligatorio")
		return
	}
	thumbnail, err := upload(req, "thumbnail")
	if err != nil {
		etc.Fail(w, http.StatusBadRequest, "Imagen inválida")
		return
	}
	c := repository.CreateCourse(etc.GetDb(req), title, req.FormValue("description"), thumbnail)
	etc.Response(w, http.StatusCreated, c)
}

func DeleteCourseHandler(w http.ResponseWriter, req *http.Request) {
	if err := repository.DeleteCourse(etc.GetDb(req), req.PathValue("id")); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Curso eliminado"})
}

// editCourse aplica fn sobre el curso de la ruta y responde con el curso completo.
func editCourse(w http.ResponseWriter, req *http.Request, fn func(c *model.Course) error) {
	c, err := repository.EditCourse(etc.GetDb(req), req.PathValue("id"), fn)
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, c)
}

func AddModuleHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.ModuleInput
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.Title == "" {
		etc.Fail(w, http.StatusBadRequest, "El título es obligatorio")
		return
	}
	editCourse(w, req, func(c *model.Course) error {
		repository.AddModule(c, in.Title)
		return nil
	})
}

func DeleteModuleHandler(w http.ResponseWriter, req *http.Request) {
	editCourse(w, req, func(c *model.Course) error {
		return repository.DeleteModule(c, req.PathValue("module"))
	})
}

func AddLessonHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.LessonInput
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.Title == "" {
		etc.Fail(w, http.StatusBadRequest, "El título es obligatorio")
		return
	}
	editCourse(w, req, func(c *model.Course) error {
		return repository.AddLesson(c, req.PathValue("module"), in)
	})
}

func DeleteLessonHandler(w http.ResponseWriter, req *http.Request) {
	editCourse(w, req, func(c *model.Course) error {
		return repository.DeleteLesson(c, req.PathValue("module"), req.PathValue("lesson"))
	})
}

func AddResourceHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.ResourceInput
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.Label == "" || in.URL == "" {
		etc.Fail(w, http.StatusBadRequest, "Nombre y enlace requeridos")
		return
	}
	editCourse(w, req, func(c *model.Course) error {
		return repository.AddResource(c, req.PathValue("module"), req.PathValue("lesson"), in)
	})
}

func DeleteResourceHandler(w http.ResponseWriter, req *http.Request) {
	editCourse(w, req, func(c *model.Course) error {
		return repository.DeleteResource(c, req.PathValue("module"), req.PathValue("lesson"), req.PathValue("resource"))
	})
}
