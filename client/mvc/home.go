package mvc

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/payment"
	"momsdigitales/logs"
)

type checkoutMsg struct {
	url string
	err error
}

// HomePage es la portada pública con los planes de suscripción.
type HomePage struct {
	deps    *Deps
	cursor  int
	loading bool
	msg     string
}

func InitialHomeModel(deps *Deps) HomePage {
	return HomePage{deps: deps}
}

func (m HomePage) Init() tea.Cmd {
	return nil
}

func (m HomePage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "down":
			m.cursor = moveCursor(m.cursor, len(m.deps.Plans), msg.String())
		case "q":
			return m, tea.Quit
		case "l":
			return m, message.Navigate(guard.Login)
		case "r":
			return m, message.Navigate(guard.Register)
		case "d":
			if m.deps.Session.State().IsAuthenticated() {
				return m, message.Navigate(guard.Dashboard)
			}
		case "enter":
			if m.loading || len(m.deps.Plans) == 0 {
				break
			}
			m.loading = true
			return m, checkout(m.deps, m.deps.Plans[m.cursor])
		}
	case checkoutMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al iniciar el pago"))
		}
		if m.deps.Open == nil || m.deps.Open(msg.url) != nil {
			return m, info(&m.msg, "Abre este enlace para pagar: "+msg.url)
		}
		return m, info(&m.msg, "Te hemos llevado a la pasarela de pago")
	case message.ResetMsg:
		m.msg = ""
	}
	return m, nil
}

func checkout(deps *Deps, plan payment.Plan) tea.Cmd {
	return func() tea.Msg {
		url, err := payment.Checkout(bg(), deps.API, plan, deps.Session.State())
		if err == nil {
			logs.Info("checkout", "plan", plan.ID)
		}
		return checkoutMsg{url: url, err: err}
	}
}

func (m HomePage) View() string {
	s := titleStyle.Render("MomsDigitales") + "\n"
	s += "Aprende, conecta y crece con otras mamás.\n\n"
	s += "Elige el plan que mejor se adapte a tu ritmo. Cancela cuando quieras.\n\n"

	for i, p := range m.deps.Plans {
		name := fmt.Sprintf("%s  %s/%s", p.Name, p.Price, p.Period)
		if p.Featured {
			name += "  ★ más popular"
		}
		if i == m.cursor {
			s += "\t" + cursorStyle.Render(name) + "\n"
			for _, f := range p.Features {
				s += "\t  · " + f + "\n"
			}
		} else {
			s += "\t" + name + "\n"
		}
	}

	if m.loading {
		s += "\nConectando con la pasarela...\n"
	}
	s += "\n" + renderInfo(m.msg)

	keys := []string{"enter suscribirse", "'l' iniciar sesión", "'r' registrarse"}
	if m.deps.Session.State().IsAuthenticated() {
		keys = append(keys, "'d' ir al dashboard")
	}
	s += strings.Join(keys, " · ") + "\n"
	s += "Presione 'q' o 'ctrl-c' para salir\n\n"
	return s
}
