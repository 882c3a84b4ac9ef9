package handler

import (
	"net/http"
	"strings"

	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

func ListConversationsHandler(w http.ResponseWriter, req *http.Request) {
	me := etc.CurrentUser(req)
	etc.Response(w, http.StatusOK, repository.ListConversations(etc.GetDb(req), me.ID))
}

// ChatUsersHandler lista con quién se puede abrir chat: todos menos uno mismo.
func ChatUsersHandler(w http.ResponseWriter, req *http.Request) {
	me := etc.CurrentUser(req)
	users := repository.SearchUsers(etc.GetDb(req), req.URL.Query().Get("search"))

	candidates := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.ID != me.ID {
			u.Email = ""
			candidates = append(candidates, u)
		}
	}
	etc.Response(w, http.StatusOK, candidates)
}

func StartConversationHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.NewConversation
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.ReceiverID == "" {
		etc.Fail(w, http.StatusBadRequest, "Destinatario requerido")
		return
	}
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)
	if in.ReceiverID == me.ID {
		etc.Fail(w, http.StatusBadRequest, "No puedes abrir un chat contigo")
		return
	}
	other, ok := repository.GetUser(db, in.ReceiverID)
	if !ok {
		etc.Fail(w, http.StatusNotFound, "Usuario no encontrado")
		return
	}
	etc.Response(w, http.StatusOK, repository.FindOrCreateConversation(db, me, other))
}

func DeleteConversationHandler(w http.ResponseWriter, req *http.Request) {
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)
	id := req.PathValue("id")

	if !repository.IsMember(db, id, me.ID) {
		etc.Fail(w, http.StatusNotFound, "Conversación no encontrada")
		return
	}
	if err := repository.DeleteConversation(db, id); err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Conversación eliminada"})
}

func SendMessageHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.MessageInput
	if err := util.DecodeJSON(req.Body, &in); err != nil || strings.TrimSpace(in.Text) == "" {
		etc.Fail(w, http.StatusBadRequest, "El mensaje está vacío")
		return
	}
	db := etc.GetDb(req)
	me := etc.CurrentUser(req)
	if !repository.IsMember(db, in.ConversationID, me.ID) {
		etc.Fail(w, http.StatusNotFound, "Conversación no encontrada")
		return
	}

	msg, err := repository.CreateMessage(db, in.ConversationID, me, in.Text, in.ClientID)
	if err != nil {
		notFoundOr(w, err, http.StatusBadRequest)
		return
	}
	etc.Response(w, http.StatusCreated, msg)
}
