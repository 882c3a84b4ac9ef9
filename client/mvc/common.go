package mvc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"momsdigitales/client/api"
	"momsdigitales/client/guard"
	"momsdigitales/client/message"
	"momsdigitales/client/payment"
	"momsdigitales/client/realtime"
	"momsdigitales/client/session"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

const infoTimeout = 5 * time.Second

// Deps es lo que comparten todas las páginas. Todo es obligatorio salvo Open.
type Deps struct {
	API      *api.Client
	Session  *session.Manager
	Realtime *realtime.Client
	Guard    *guard.Guard
	Plans    []payment.Plan
	Open     payment.Opener
}

func (d *Deps) User() model.User {
	return d.Session.State().User
}

// link resuelve una ruta con parámetros; si falla se queda en el inicio.
func (d *Deps) link(route string, pairs ...string) string {
	path, err := d.Guard.URL(route, pairs...)
	if err != nil {
		logs.Warn("ruta inválida", "route", route, "error", err)
		return guard.Home
	}
	return path
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FFF"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#905361"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8"))
	otherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#45f"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f55"))
)

// info deja el mensaje en la línea de estado y programa su borrado.
func info(msg *string, text string) tea.Cmd {
	*msg = text
	return message.SendTimedMessage(message.ResetMsg{}, infoTimeout)
}

// failure traduce el error a texto para el usuario y lo registra.
func failure(err error, fallback string) string {
	logs.Warn(fallback, "error", err)
	return api.Message(err, fallback)
}

func bg() context.Context {
	return context.Background()
}

func renderInfo(msg string) string {
	if msg == "" {
		return ""
	}
	return "Info: " + msg + "\n\n"
}

func renderList(items []string, cursor int) string {
	var s string
	for i, item := range items {
		if i == cursor {
			s += "\t" + cursorStyle.Render(item) + "\n"
		} else {
			s += "\t" + item + "\n"
		}
	}
	return s
}

func moveCursor(cursor, n int, key string) int {
	if n == 0 {
		return 0
	}
	switch key {
	case "down":
		cursor++
		if cursor >= n {
			cursor = 0
		}
	case "up":
		cursor--
		if cursor < 0 {
			cursor = n - 1
		}
	}
	return cursor
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

// readUpload carga el fichero indicado; ruta vacía es "sin fichero".
func readUpload(path string) (*model.Upload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("no se pudo leer el fichero " + path)
	}
	return &model.Upload{Name: filepath.Base(path), Data: data}, nil
}

// form es un grupo de textinputs que se recorre con arriba/abajo.
type form struct {
	inputs []textinput.Model
	focus  int
}

func newForm(placeholders ...string) form {
	f := form{inputs: make([]textinput.Model, len(placeholders))}
	for i, p := range placeholders {
		in := textinput.New()
		in.Placeholder = p
		f.inputs[i] = in
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f form) password(i int) form {
	f.inputs[i].EchoMode = textinput.EchoPassword
	f.inputs[i].EchoCharacter = '•'
	return f
}

func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "down", "tab":
			f = f.setFocus(f.focus + 1)
			return f, nil
		case "up", "shift+tab":
			f = f.setFocus(f.focus - 1)
			return f, nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f form) setFocus(i int) form {
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
	return f
}

func (f form) Value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) Set(i int, v string) form {
	f.inputs[i].SetValue(v)
	return f
}

func (f form) Reset() form {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.setFocus(0)
}

func (f form) Last() bool {
	return f.focus == len(f.inputs)-1
}

func (f form) View() string {
	var s string
	for _, in := range f.inputs {
		s += in.View() + "\n"
	}
	return s
}

// confirm es el paso de confirmación antes de borrar.
type confirm struct {
	prompt string
	action tea.Cmd
}

func (c confirm) Active() bool {
	return c.action != nil
}

func ask(prompt string, action tea.Cmd) confirm {
	return confirm{prompt: prompt, action: action}
}

// Update devuelve handled=true si la tecla era para la confirmación.
func (c confirm) Update(msg tea.Msg) (confirm, tea.Cmd, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !c.Active() {
		return c, nil, false
	}
	switch key.String() {
	case "s", "y", "enter":
		return confirm{}, c.action, true
	case "n", "esc":
		return confirm{}, nil, true
	}
	return c, nil, true
}

func (c confirm) View() string {
	if !c.Active() {
		return ""
	}
	return errorStyle.Render(c.prompt+" (s/n)") + "\n\n"
}
