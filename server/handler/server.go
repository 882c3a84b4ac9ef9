package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"momsdigitales/server/etc"
	"momsdigitales/server/hub"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
)

const maxUpload = 10 << 20

// Server agrupa lo que comparten los handlers además de la BD del contexto.
type Server struct {
	Tokens    middleware.Tokens
	Hub       *hub.Hub
	PublicURL string // origen del frontend para los enlaces de invitación
}

// Routes monta la API bajo /api y el websocket en /ws.
func (s *Server) Routes(db *repository.Database) http.Handler {
	auth := func(h http.HandlerFunc) http.Handler {
		return middleware.Authorization(s.Tokens)(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.Authorization(s.Tokens)(middleware.Admin(h))
	}

	api := http.NewServeMux()

	api.HandleFunc("POST /auth/register", s.RegisterHandler)
	api.HandleFunc("POST /auth/login", s.LoginHandler)
	api.Handle("GET /auth/profile", auth(ProfileHandler))
	api.HandleFunc("POST /auth/forgot-password", ForgotPasswordHandler)
	api.HandleFunc("PUT /auth/reset-password/{token}", ResetPasswordHandler)
	api.Handle("POST /auth/invite", admin(s.InviteHandler))
	api.HandleFunc("POST /auth/complete-profile/{token}", CompleteProfileHandler)

	api.Handle("GET /users", admin(ListUsersHandler))
	api.Handle("PUT /users/profile", auth(UpdateProfileHandler))
	api.Handle("PUT /users/{id}/role", admin(ChangeRoleHandler))
	api.Handle("DELETE /users/{id}", admin(DeleteUserHandler))

	api.Handle("GET /courses", auth(ListCoursesHandler))
	api.Handle("POST /courses", admin(CreateCourseHandler))
	api.Handle("GET /courses/{id}", auth(GetCourseHandler))
	api.Handle("DELETE /courses/{id}", admin(DeleteCourseHandler))
	api.Handle("POST /courses/{id}/modules", admin(AddModuleHandler))
	api.Handle("DELETE /courses/{id}/modules/{module}", admin(DeleteModuleHandler))
	api.Handle("POST /courses/{id}/modules/{module}/lessons", admin(AddLessonHandler))
	api.Handle("DELETE /courses/{id}/modules/{module}/lessons/{lesson}", admin(DeleteLessonHandler))
	api.Handle("POST /courses/{id}/modules/{module}/lessons/{lesson}/resources", admin(AddResourceHandler))
	api.Handle("DELETE /courses/{id}/modules/{module}/lessons/{lesson}/resources/{resource}", admin(DeleteResourceHandler))

	api.Handle("GET /posts", auth(GetPostsHandler))
	api.Handle("POST /posts", auth(CreatePostHandler))
	api.Handle("DELETE /posts/{id}", auth(DeletePostHandler))
	api.Handle("PUT /posts/{id}/like", auth(s.LikeHandler))
	api.Handle("POST /posts/{id}/comment", auth(s.CommentHandler))

	api.Handle("GET /chat", auth(ListConversationsHandler))
	api.Handle("POST /chat", auth(StartConversationHandler))
	api.Handle("GET /chat/users", auth(ChatUsersHandler))
	api.Handle("DELETE /chat/{id}", auth(DeleteConversationHandler))
	api.Handle("POST /chat/message", auth(SendMessageHandler))

	api.Handle("GET /notifications", auth(ListNotificationsHandler))
	api.Handle("PUT /notifications/read-all", auth(MarkAllReadHandler))
	api.Handle("PUT /notifications/{id}/read", auth(MarkReadHandler))

	api.HandleFunc("POST /payment/create-checkout-session", CheckoutHandler)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.Hub != nil {
		s.Hub.Protect(s.socketUser(db), func(userID, room string) bool {
			return room == userID || repository.IsMember(db, room, userID)
		})
		root.Handle("/ws", s.Hub)
	}

	return middleware.InjectData(db)(root)
}

// upload lee el fichero opcional del multipart y devuelve la ruta pública simulada.
func upload(req *http.Request, field string) (string, error) {
	file, header, err := req.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s", filepath.Base(header.Filename)), nil
}

func notFoundOr(w http.ResponseWriter, err error, status int) {
	if errors.Is(err, repository.ErrNotFound) {
		etc.Fail(w, http.StatusNotFound, "No encontrado")
		return
	}
	etc.Fail(w, status, err.Error())
}

// socketUser valida el JWT del upgrade: cabecera Authorization o ?token=.
func (s *Server) socketUser(db *repository.Database) hub.Authenticate {
	return func(req *http.Request) (string, error) {
		raw, ok := strings.CutPrefix(req.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			raw = req.URL.Query().Get("token")
		}
		if raw == "" {
			return "", errors.New("sin token")
		}
		id, err := s.Tokens.Parse(raw)
		if err != nil {
			return "", err
		}
		if _, ok := repository.GetUser(db, id); !ok {
			return "", errors.New("usuario no encontrado")
		}
		return id, nil
	}
}
