package mvc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"momsdigitales/client/chat"
	"momsdigitales/client/message"
	"momsdigitales/logs"
	"momsdigitales/util/model"
)

type conversationsLoadedMsg struct {
	convs []model.Conversation
	err   error
}

type candidatesLoadedMsg struct {
	users []model.User
	err   error
}

type conversationStartedMsg struct {
	conv model.Conversation
	err  error
}

type conversationDeletedMsg struct {
	id  string
	err error
}

type messageSentMsg struct {
	clientID string
	stored   model.Message
	err      error
}

type chatMode int

const (
	listing chatMode = iota
	filtering
	picking
	talking
)

// ChatPage es la bandeja de conversaciones y la conversación abierta.
type ChatPage struct {
	deps       *Deps
	inbox      *chat.Inbox
	mode       chatMode
	cursor     int
	filter     textinput.Model
	input      textinput.Model
	viewport   viewport.Model
	candidates []model.User
	loading    bool
	confirm    confirm
	msg        string
}

func InitialChatModel(deps *Deps) ChatPage {
	filter := textinput.New()
	filter.Placeholder = "Buscar conversación"

	input := textinput.New()
	input.Placeholder = "Escribe un mensaje"
	input.CharLimit = 1000

	return ChatPage{
		deps:     deps,
		inbox:    chat.NewInbox(deps.User(), nil),
		filter:   filter,
		input:    input,
		viewport: viewport.New(80, 12),
		loading:  true,
	}
}

func (m ChatPage) Init() tea.Cmd {
	return loadConversations(m.deps)
}

func loadConversations(deps *Deps) tea.Cmd {
	return func() tea.Msg {
		convs, err := deps.API.Conversations(bg())
		return conversationsLoadedMsg{convs: convs, err: err}
	}
}

func (m ChatPage) visible() []model.Conversation {
	return m.inbox.Filter(m.filter.Value())
}

func (m ChatPage) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var handled bool
	if m.confirm, cmd, handled = m.confirm.Update(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case conversationsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "Error al cargar los chats"))
		}
		open, wasOpen := m.inbox.Current()
		m.inbox = chat.NewInbox(m.deps.User(), msg.convs)
		if wasOpen && m.inbox.Open(open.ID) != nil {
			m.mode = listing
		}
		m.cursor = 0
		m.refresh()
		return m, nil
	case candidatesLoadedMsg:
		if msg.err != nil {
			m.mode = listing
			return m, info(&m.msg, failure(msg.err, "Error al cargar las usuarias"))
		}
		m.candidates = msg.users
		m.cursor = 0
		return m, nil
	case conversationStartedMsg:
		if msg.err != nil {
			m.mode = listing
			return m, info(&m.msg, failure(msg.err, "No se pudo iniciar el chat"))
		}
		m.inbox.Add(msg.conv)
		return m.openConversation(msg.conv.ID)
	case conversationDeletedMsg:
		if msg.err != nil {
			return m, info(&m.msg, failure(msg.err, "No se pudo eliminar el chat"))
		}
		m.inbox.Remove(msg.id)
		if _, ok := m.inbox.Current(); !ok && m.mode == talking {
			m.mode = listing
			m.input.Blur()
		}
		m.cursor = 0
		return m, info(&m.msg, "Chat eliminado")
	case messageSentMsg:
		if msg.err != nil {
			m.inbox.Fail(msg.clientID)
			m.refresh()
			return m, info(&m.msg, failure(msg.err, "El mensaje no se pudo enviar"))
		}
		m.inbox.Confirm(msg.clientID, msg.stored)
		m.refresh()
		return m, nil
	case message.RealtimeMsg:
		if msg.Message != nil && m.inbox.Receive(*msg.Message) {
			m.refresh()
		}
		return m, nil
	case message.ResetMsg:
		m.msg = ""
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case filtering:
			return m.updateFilter(msg)
		case picking:
			return m.updatePick(msg)
		case talking:
			return m.updateTalk(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m ChatPage) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	convs := m.visible()
	switch msg.String() {
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(convs), msg.String())
	case "/":
		m.mode = filtering
		return m, m.filter.Focus()
	case "r":
		m.loading = true
		return m, loadConversations(m.deps)
	case "n":
		m.mode = picking
		m.candidates = nil
		deps := m.deps
		return m, func() tea.Msg {
			users, err := deps.API.ChatCandidates(bg())
			return candidatesLoadedMsg{users: users, err: err}
		}
	case "enter":
		if len(convs) > 0 {
			return m.openConversation(convs[m.cursor].ID)
		}
	case "d":
		if len(convs) > 0 {
			c := convs[m.cursor]
			m.confirm = ask(fmt.Sprintf("¿Eliminar el chat con %s?", c.Other(m.inbox.Me().ID).Username), deleteConversation(m.deps, c.ID))
		}
	}
	return m, nil
}

func (m ChatPage) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.mode = listing
		m.filter.Blur()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.cursor = 0
	return m, cmd
}

func (m ChatPage) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = listing
		m.cursor = 0
	case "up", "down":
		m.cursor = moveCursor(m.cursor, len(m.candidates), msg.String())
	case "enter":
		if len(m.candidates) == 0 {
			break
		}
		u := m.candidates[m.cursor]
		if c, ok := m.inbox.FindWith(u.ID); ok {
			return m.openConversation(c.ID)
		}
		deps := m.deps
		return m, func() tea.Msg {
			c, err := deps.API.StartConversation(bg(), u.ID)
			return conversationStartedMsg{conv: c, err: err}
		}
	}
	return m, nil
}

func (m ChatPage) updateTalk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = listing
		m.input.Blur()
		return m, nil
	case "ctrl+d":
		if c, ok := m.inbox.Current(); ok {
			m.confirm = ask(fmt.Sprintf("¿Eliminar el chat con %s?", c.Other(m.inbox.Me().ID).Username), deleteConversation(m.deps, c.ID))
		}
		return m, nil
	case "enter":
		out, err := m.inbox.Compose(m.input.Value())
		if err != nil {
			if errors.Is(err, chat.ErrEmptyMessage) {
				return m, nil
			}
			return m, info(&m.msg, err.Error())
		}
		m.input.Reset()
		m.refresh()
		return m, sendMessage(m.deps, out)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ChatPage) openConversation(id string) (tea.Model, tea.Cmd) {
	if err := m.inbox.Open(id); err != nil {
		return m, info(&m.msg, err.Error())
	}
	m.mode = talking
	m.refresh()
	return m, tea.Batch(m.input.Focus(), joinRoom(m.deps, id))
}

// refresh vuelca el transcript al viewport y baja al final.
func (m *ChatPage) refresh() {
	me := m.inbox.Me()
	c, ok := m.inbox.Current()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	other := c.Other(me.ID).Username

	var b strings.Builder
	for _, e := range m.inbox.Transcript() {
		if e.Mine(me.ID) {
			b.WriteString(userStyle.Render("Tú: ") + e.Text)
			switch e.Status {
			case chat.Sending:
				b.WriteString(mutedStyle.Render("  enviando…"))
			case chat.Failed:
				b.WriteString(errorStyle.Render("  no enviado"))
			}
		} else {
			b.WriteString(otherStyle.Render(other+": ") + e.Text)
		}
		b.WriteString("  " + mutedStyle.Render(e.CreatedAt.Local().Format("15:04")) + "\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// sendMessage emite por realtime y persiste por API; la API confirma la entrada optimista.
func sendMessage(deps *Deps, out model.Message) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Realtime.SendMessage(out.ConversationID, out); err != nil {
			logs.Debug("envío realtime", "conversation", out.ConversationID, "error", err)
		}
		stored, err := deps.API.SendMessage(bg(), model.MessageInput{
			ConversationID: out.ConversationID,
			Text:           out.Text,
			ClientID:       out.ClientID,
		})
		return messageSentMsg{clientID: out.ClientID, stored: stored, err: err}
	}
}

func deleteConversation(deps *Deps, id string) tea.Cmd {
	return func() tea.Msg {
		return conversationDeletedMsg{id: id, err: deps.API.DeleteConversation(bg(), id)}
	}
}

func (m ChatPage) View() string {
	me := m.inbox.Me()
	s := titleStyle.Render("Chat") + "\n\n"

	switch m.mode {
	case picking:
		s += "Nueva conversación con:\n\n"
		if m.candidates == nil {
			s += "Cargando...\n"
		} else if len(m.candidates) == 0 {
			s += mutedStyle.Render("No hay nadie más todavía.") + "\n"
		}
		items := make([]string, len(m.candidates))
		for i, u := range m.candidates {
			items[i] = u.Username
		}
		s += renderList(items, m.cursor) + "\n"
		s += renderInfo(m.msg)
		s += "enter abrir · esc volver\n"
		return s

	case talking:
		c, _ := m.inbox.Current()
		s += "Chat con " + userStyle.Render(c.Other(me.ID).Username) + "\n"
		s += "_________________________\n"
		s += m.viewport.View() + "\n"
		s += "‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾‾\n\n"
		s += m.input.View() + "\n\n"
		s += m.confirm.View()
		s += renderInfo(m.msg)
		s += "enter enviar · pgup/pgdown desplazar · ctrl+d eliminar chat · esc volver\n"
		return s
	}

	s += m.filter.View() + "\n\n"
	convs := m.visible()
	switch {
	case m.loading:
		s += "Cargando chats...\n\n"
	case len(convs) == 0:
		s += mutedStyle.Render("Sin conversaciones. Empieza una con 'n'.") + "\n\n"
	default:
		items := make([]string, len(convs))
		for i, c := range convs {
			items[i] = c.Other(me.ID).Username
			if c.LastMessage != "" {
				items[i] += "  " + mutedStyle.Render(c.LastMessage)
			}
		}
		s += renderList(items, m.cursor) + "\n"
	}
	s += m.confirm.View()
	s += renderInfo(m.msg)
	s += "enter abrir · 'n' nuevo · '/' buscar · 'd' eliminar · 'r' recargar\n"
	return s
}
