package handler

import (
	"net/http"

	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

func ListNotificationsHandler(w http.ResponseWriter, req *http.Request) {
	me := etc.CurrentUser(req)
	etc.Response(w, http.StatusOK, repository.ListNotifications(etc.GetDb(req), me.ID))
}

func MarkReadHandler(w http.ResponseWriter, req *http.Request) {
	me := etc.CurrentUser(req)
	if err := repository.MarkRead(etc.GetDb(req), me.ID, req.PathValue("id")); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Leída"})
}

func MarkAllReadHandler(w http.ResponseWriter, req *http.Request) {
	me := etc.CurrentUser(req)
	repository.MarkAllRead(etc.GetDb(req), me.ID)
	etc.Response(w, http.StatusOK, model.Resp{Message: "Todas leídas"})
}
