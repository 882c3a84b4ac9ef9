package middleware

import (
	"context"
	"net/http"

	"momsdigitales/server/repository"
)

type contextKey string

const (
	ContextKeyData = contextKey("db")
	ContextKeyUser = contextKey("user")
)

func InjectData(data *repository.Database) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), ContextKeyData, data)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
