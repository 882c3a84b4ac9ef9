package etc

import (
	"encoding/json"
	"net/http"

	"momsdigitales/logs"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

// Response escribe v como JSON con el código dado.
func Response(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logs.Error("encoding response", "error", err)
	}
}

func Fail(w http.ResponseWriter, status int, msg string) {
	Response(w, status, model.Resp{Message: msg})
}

func GetDb(req *http.Request) *repository.Database {
	db := req.Context().Value(middleware.ContextKeyData)
	if db == nil {
		return nil
	}
	return db.(*repository.Database)
}

func CurrentUser(req *http.Request) model.User {
	u, _ := req.Context().Value(middleware.ContextKeyUser).(model.User)
	return u
}
