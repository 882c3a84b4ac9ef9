package handler

import (
	"net/http"
	"strings"

	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

func GetPostsHandler(w http.ResponseWriter, req *http.Request) {
	etc.Response(w, http.StatusOK, repository.ListPosts(etc.GetDb(req)))
}

func CreatePostHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUpload); err != nil {
		etc.Fail(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	image, err := upload(req, "image")
	if err != nil {
		etc.Fail(w, http.StatusBadRequest, "Imagen inválida")
		return
	}
	content := strings.TrimSpace(req.FormValue("content"))
	if content == "" && image == "" {
		etc.Fail(w, http.StatusBadRequest, "La publicación está vacía")
		return
	}
	p := repository.CreatePost(etc.GetDb(req), etc.CurrentUser(req), content, image)
	etc.Response(w, http.StatusCreated, p)
}

func DeletePostHandler(w http.ResponseWriter, req *http.Request) {
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)

	p, err := repository.GetPost(db, req.PathValue("id"))
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	if p.AuthorID() != me.ID && !me.IsAdmin() {
		etc.Fail(w, http.StatusForbidden, "No puedes borrar esta publicación")
		return
	}
	if err := repository.DeletePost(db, p.ID); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Publicación eliminada"})
}

func (s *Server) LikeHandler(w http.ResponseWriter, req *http.Request) {
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)

	likes, liked, err := repository.ToggleLike(db, req.PathValue("id"), me.ID)
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	if liked {
		s.notifyAuthor(db, req.PathValue("id"), me, model.NotificationLike, "le gustó tu publicación")
	}
	etc.Response(w, http.StatusOK, likes)
}

func (s *Server) CommentHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.CommentInput
	if err := util.DecodeJSON(req.Body, &in); err != nil || strings.TrimSpace(in.Text) == "" {
		etc.Fail(w, http.StatusBadRequest, "El comentario está vacío")
		return
	}
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)

	comments, err := repository.AddComment(db, req.PathValue("id"), me, in.Text)
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	s.notifyAuthor(db, req.PathValue("id"), me, model.NotificationComment, "comentó tu publicación")
	etc.Response(w, http.StatusOK, comments)
}

// notifyAuthor guarda la notificación y la empuja a la sala personal del autor.
func (s *Server) notifyAuthor(db *repository.Database, postID string, sender model.User, kind model.NotificationType, content string) {
	p, err := repository.GetPost(db, postID)
	if err != nil || p.AuthorID() == "" || p.AuthorID() == sender.ID {
		return
	}
	n := repository.CreateNotification(db, p.AuthorID(), kind, sender, content, "/muro")
	if s.Hub != nil {
		s.Hub.Emit(p.AuthorID(), model.EventNewNotification, n)
	}
}
