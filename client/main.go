/*
Cliente de terminal de MomsDigitales.

Uso: client [ruta]   p. ej. client /reset-password/<token>
*/
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/api"
	"momsdigitales/client/config"
	"momsdigitales/client/guard"
	"momsdigitales/client/mvc"
	"momsdigitales/client/payment"
	"momsdigitales/client/realtime"
	"momsdigitales/client/session"
	"momsdigitales/client/terminal"
	"momsdigitales/logs"
	"momsdigitales/util"
)

func main() {
	if !terminal.Interactive() {
		fmt.Fprintln(os.Stderr, "Error: el cliente necesita una terminal interactiva")
		os.Exit(1)
	}

	cfg, err := config.Load()
	util.FailOnError(err)

	// la TUI ocupa la pantalla, así que el log va siempre a fichero
	util.FailOnError(logs.Init(cfg.LogMode, cfg.LogFile))
	defer logs.Sync()

	store, err := session.OpenStore(cfg.SessionStore, cfg.Profile)
	util.FailOnError(err)
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	client := api.New(cfg.BackendURL, &http.Client{Timeout: 30 * time.Second}, nil)
	sessions := session.New(client, store)
	client.SetTokenSource(sessions.Token)

	plans, err := payment.LoadPlans(cfg.PlansFile)
	util.FailOnError(err)

	rt := realtime.New(cfg.RealtimeURL)
	rt.SetTokenSource(sessions.Token)
	defer rt.Close()

	deps := &mvc.Deps{
		API:      client,
		Session:  sessions,
		Realtime: rt,
		Guard:    guard.New(guard.Policies),
		Plans:    plans,
		Open:     payment.OpenBrowser,
	}

	start := guard.Home
	if len(os.Args) > 1 {
		start = os.Args[1]
	}

	logs.Info("cliente iniciado", "backend", cfg.BackendURL, "profile", cfg.Profile, "start", start)

	p := tea.NewProgram(mvc.InitialAppModel(deps, start), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logs.Error("la interfaz terminó con error", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
