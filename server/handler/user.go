package handler

import (
	"net/http"

	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

func ListUsersHandler(w http.ResponseWriter, req *http.Request) {
	etc.Response(w, http.StatusOK, repository.SearchUsers(etc.GetDb(req), req.URL.Query().Get("search")))
}

func UpdateProfileHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUpload); err != nil {
		etc.Fail(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	avatar, err := upload(req, "image")
	if err != nil {
		etc.Fail(w, http.StatusBadRequest, "Imagen inválida")
		return
	}
	me := etc.CurrentUser(req)
	u, err := repository.UpdateProfile(etc.GetDb(req), me.ID, req.FormValue("username"), req.FormValue("bio"), avatar)
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, u)
}

func ChangeRoleHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.RoleChange
	if err := util.DecodeJSON(req.Body, &in); err != nil || (in.Role != model.Admin && in.Role != model.NormalUser) {
		etc.Fail(w, http.StatusBadRequest, "Rol inválido")
		return
	}
	if err := repository.SetRole(etc.GetDb(req), req.PathValue("id"), in.Role); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Rol actualizado"})
}

func DeleteUserHandler(w http.ResponseWriter, req *http.Request) {
	if err := repository.DeleteUser(etc.GetDb(req), req.PathValue("id")); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Usuario eliminado"})
}
