package message

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/realtime"
	"momsdigitales/client/session"
)

type ResetMsg struct{}

// NavigateMsg pide a la App cambiar de ruta; pasa por el guard.
type NavigateMsg struct {
	Path string
}

// SessionMsg llega cada vez que cambia el estado de sesión.
type SessionMsg session.State

type RestoredMsg session.State

type RealtimeMsg realtime.Event

func SendTimedMessage(msg interface{}, t time.Duration) func() tea.Msg {
	return func() tea.Msg {
		timer := time.NewTimer(t)
		<-timer.C

		return msg
	}
}

func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// WaitForEvent espera el siguiente evento realtime. Hay que volver a pedirlo tras cada uno.
func WaitForEvent(events <-chan realtime.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return RealtimeMsg(e)
	}
}

func WaitForSession(changes <-chan session.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-changes
		if !ok {
			return nil
		}
		return SessionMsg(s)
	}
}
