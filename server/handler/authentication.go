package handler

import (
	"errors"
	"net/http"
	"strings"

	"momsdigitales/logs"
	"momsdigitales/server/etc"
	"momsdigitales/server/repository"
	"momsdigitales/util"
	"momsdigitales/util/model"
)

func (s *Server) RegisterHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var register model.RegisterCredentials
	if err := util.DecodeJSON(req.Body, &register); err != nil {
		etc.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}
	if register.Username == "" || register.Email == "" || register.Password == "" {
		etc.Fail(w, http.StatusBadRequest, "Campos vacíos")
		return
	}

	u, err := repository.CreateUser(etc.GetDb(req), register.Username, register.Email, register.Password)
	if errors.Is(err, repository.ErrUserExists) {
		etc.Fail(w, http.StatusBadRequest, "El usuario ya existe")
		return
	}
	if err != nil {
		etc.Fail(w, http.StatusInternalServerError, err.Error())
		return
	}
	logs.Info("registro", "user_id", u.ID)
	s.respondSession(w, http.StatusCreated, u)
}

func (s *Server) LoginHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var login model.Credentials
	if err := util.DecodeJSON(req.Body, &login); err != nil {
		etc.Fail(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	u, err := repository.Authenticate(etc.GetDb(req), login.Email, login.Password)
	if err != nil {
		etc.Fail(w, http.StatusUnauthorized, "Credenciales inválidas")
		return
	}
	logs.Info("login", "user_id", u.ID)
	s.respondSession(w, http.StatusOK, u)
}

func (s *Server) respondSession(w http.ResponseWriter, status int, u model.User) {
	token, err := s.Tokens.Issue(u)
	if err != nil {
		etc.Fail(w, http.StatusInternalServerError, "Error generando token")
		return
	}
	etc.Response(w, status, model.AuthResponse{User: u, Token: token})
}

func ProfileHandler(w http.ResponseWriter, req *http.Request) {
	etc.Response(w, http.StatusOK, etc.CurrentUser(req))
}

func ForgotPasswordHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.EmailRequest
	if err := util.DecodeJSON(req.Body, &in); err != nil || in.Email == "" {
		etc.Fail(w, http.StatusBadRequest, "Email requerido")
		return
	}
	db := etc.GetDb(req)
	u, ok := repository.FindByEmail(db, in.Email)
	if !ok {
		etc.Fail(w, http.StatusNotFound, "No existe un usuario con ese email")
		return
	}
	// sin servidor de correo: el enlace se queda en el log
	token := repository.CreateReset(db, u.ID)
	logs.Info("reset de contraseña", "user_id", u.ID, "link", "/reset-password/"+token)
	etc.Response(w, http.StatusOK, model.Resp{Message: "Correo enviado"})
}

func ResetPasswordHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.PasswordRequest
	if err := util.DecodeJSON(req.Body, &in); err != nil || len(in.Password) < 6 {
		etc.Fail(w, http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres")
		return
	}
	if err := repository.ResetPassword(etc.GetDb(req), req.PathValue("token"), in.Password); err != nil {
		etc.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	etc.Response(w, http.StatusOK, model.Resp{Message: "Contraseña actualizada"})
}

func (s *Server) InviteHandler(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	var in model.EmailRequest
	if err := util.DecodeJSON(req.Body, &in); err != nil || !strings.Contains(in.Email, "@") {
		etc.Fail(w, http.StatusBadRequest, "Email inválido")
		return
	}
	token := repository.CreateInvite(etc.GetDb(req), in.Email)
	link := strings.TrimRight(s.PublicURL, "/") + "/setup-account/" + token
	etc.Response(w, http.StatusOK, model.InviteResponse{Message: "Invitación enviada", Link: link})
}

func CompleteProfileHandler(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxUpload); err != nil {
		etc.Fail(w, http.StatusBadRequest, "Formulario inválido")
		return
	}
	username := req.FormValue("username")
	password := req.FormValue("password")
	if username == "" || len(password) < 6 {
		etc.Fail(w, http.StatusBadRequest, "Nombre y contraseña (mínimo 6) requeridos")
		return
	}
	avatar, err := upload(req, "image")
	if err != nil {
		etc.Fail(w, http.StatusBadRequest, "Imagen inválida")
		return
	}

	u, err := repository.CompleteInvite(etc.GetDb(req), req.PathValue("token"), username, password, avatar)
	if err != nil {
		etc.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	etc.Response(w, http.StatusCreated, u)
}
