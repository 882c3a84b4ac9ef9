package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"momsdigitales/logs"
	"momsdigitales/server/handler"
	"momsdigitales/server/hub"
	"momsdigitales/server/middleware"
	"momsdigitales/server/repository"
	"momsdigitales/util"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	util.FailOnError(logs.Init(getEnv("MOMS_LOG_MODE", "dev"), os.Getenv("MOMS_LOG_FILE")))
	defer logs.Sync()

	db := repository.NewDatabase()
	if email := os.Getenv("MOMS_ADMIN_EMAIL"); email != "" {
		// el primer usuario registrado es admin
		_, err := repository.CreateUser(db, getEnv("MOMS_ADMIN_NAME", "Admin"), email, getEnv("MOMS_ADMIN_PASSWORD", "admin123"))
		util.FailOnError(err)
	}

	srv := &handler.Server{
		Tokens:    middleware.Tokens{Secret: []byte(getEnv("MOMS_JWT_SECRET", "momsdigitales-dev"))},
		Hub:       hub.New(),
		PublicURL: getEnv("MOMS_PUBLIC_URL", "http://localhost:5173"),
	}

	addr := getEnv("MOMS_SERVER_ADDR", ":5000")
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdown)
	}()

	cert, key := os.Getenv("MOMS_TLS_CERT"), os.Getenv("MOMS_TLS_KEY")
	var err error
	if cert != "" && key != "" {
		logs.Info("servidor escuchando", "addr", addr, "tls", true)
		err = server.ListenAndServeTLS(cert, key)
	} else {
		logs.Info("servidor escuchando", "addr", addr, "tls", false)
		err = server.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		util.FailOnError(err)
	}
}
