package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"momsdigitales/logs"
	"momsdigitales/server/repository"
	"momsdigitales/util/model"
)

const tokenTTL = 24 * time.Hour

// Tokens firma y valida los JWT de sesión.
type Tokens struct {
	Secret []byte
}

func (t Tokens) Issue(u model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": string(u.Role),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.Secret)
}

func (t Tokens) Parse(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.MapClaims{}, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tk.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil {
		return "", err
	}
	claims := token.Claims.(*jwt.MapClaims)
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("token sin sujeto")
	}
	return sub, nil
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(model.Resp{Message: msg})
}

// Authorization exige "Authorization: Bearer <jwt>" de un usuario existente.
func Authorization(tokens Tokens) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			header := req.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				unauthorized(w, "No autorizado, no hay token")
				return
			}

			id, err := tokens.Parse(raw)
			if err != nil {
				logs.Info("error de login", "error", err)
				unauthorized(w, "No autorizado, token inválido")
				return
			}

			db := req.Context().Value(ContextKeyData).(*repository.Database)
			user, ok := repository.GetUser(db, id)
			if !ok {
				unauthorized(w, "Usuario no encontrado")
				return
			}

			ctx := context.WithValue(req.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		user, _ := req.Context().Value(ContextKeyUser).(model.User)
		if user.Role != model.Admin {
			logs.Info("error de autorización, no es admin", "user_id", user.ID)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(model.Resp{Message: "Acceso solo para administradores"})
			return
		}
		next.ServeHTTP(w, req)
	})
}
