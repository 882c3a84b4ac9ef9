package mvc

import (
	"net/url"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/payment"
)

type PaymentSuccessPage struct {
	reference string
	date      time.Time
}

func InitialPaymentSuccessModel(_ *Deps, query url.Values) PaymentSuccessPage {
	return PaymentSuccessPage{reference: payment.Reference(query), date: time.Now()}
}

func (m PaymentSuccessPage) Init() tea.Cmd {
	return nil
}

func (m PaymentSuccessPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "d", "enter":
			return m, message.Navigate(guard.Dashboard)
		case "v", "esc":
			return m, message.Navigate(guard.Home)
		}
	}
	return m, nil
}

func (m PaymentSuccessPage) View() string {
	ref := m.reference
	if len(ref) > 15 {
		ref = ref[:15] + "..."
	}

	s := titleStyle.Render("MomsDigitales · Comprobante de pago") + "\n\n"
	s += "Fecha:       " + m.date.Format("02/01/2006 15:04") + "\n"
	s += "Estado:      Procesado\n"
	s += "Referencia:  " + ref + "\n"
	s += "Total:       Suscripción Premium\n\n"

	s += titleStyle.Render("¡Casi terminamos!") + "\n"
	s += "Tu pago ha sido recibido. Para activar tu acceso necesitamos un último paso:\n\n"
	s += "  1. Haz una captura de este comprobante (o del correo de la pasarela).\n"
	s += "  2. Envíala a nuestro equipo indicando la referencia " + m.reference + ".\n"
	s += "  3. Espera la confirmación de activación.\n\n"
	s += mutedStyle.Render("Validamos los pagos manualmente: tu cuenta quedará activa en 24 a 48 horas hábiles.") + "\n\n"
	s += "'d' ir al dashboard · 'v' volver\n\n"
	return s
}
