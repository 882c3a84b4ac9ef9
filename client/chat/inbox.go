package chat

import (
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"

	"momsdigitales/util/model"
)

var (
	ErrNoConversation = errors.New("no hay conversación abierta")
	ErrEmptyMessage   = errors.New("el mensaje está vacío")
)

type Status int

const (
	Sending Status = iota
	Sent
	Failed
)

// Entry es un mensaje del transcript con su estado de entrega.
type Entry struct {
	model.Message
	Status Status
}

func (e Entry) Mine(me string) bool {
	return e.Sender.ID == me
}

// Inbox guarda las conversaciones y la abierta. Es del bucle de eventos de la TUI, sin locks.
type Inbox struct {
	me            model.User
	conversations []model.Conversation
	open          string
	transcript    []Entry
}

func NewInbox(me model.User, convs []model.Conversation) *Inbox {
	return &Inbox{me: me, conversations: convs}
}

func (i *Inbox) Me() model.User {
	return i.me
}

func (i *Inbox) Conversations() []model.Conversation {
	return i.conversations
}

// Filter busca por nombre del otro miembro, sin distinguir mayúsculas.
func (i *Inbox) Filter(query string) []model.Conversation {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return i.conversations
	}
	var out []model.Conversation
	for _, c := range i.conversations {
		if strings.Contains(strings.ToLower(c.Other(i.me.ID).Username), query) {
			out = append(out, c)
		}
	}
	return out
}

// FindWith devuelve la conversación ya existente con userID.
func (i *Inbox) FindWith(userID string) (model.Conversation, bool) {
	for _, c := range i.conversations {
		if slices.ContainsFunc(c.Members, func(u model.User) bool { return u.ID == userID }) {
			return c, true
		}
	}
	return model.Conversation{}, false
}

// Add mete la conversación al principio si no estaba.
func (i *Inbox) Add(c model.Conversation) {
	if i.index(c.ID) >= 0 {
		return
	}
	i.conversations = append([]model.Conversation{c}, i.conversations...)
}

func (i *Inbox) index(id string) int {
	return slices.IndexFunc(i.conversations, func(c model.Conversation) bool { return c.ID == id })
}

func (i *Inbox) Open(id string) error {
	idx := i.index(id)
	if idx < 0 {
		return ErrNoConversation
	}
	i.open = id
	msgs := i.conversations[idx].Messages
	i.transcript = make([]Entry, 0, len(msgs))
	for _, m := range msgs {
		i.transcript = append(i.transcript, Entry{Message: m, Status: Sent})
	}
	return nil
}

func (i *Inbox) Current() (model.Conversation, bool) {
	idx := i.index(i.open)
	if i.open == "" || idx < 0 {
		return model.Conversation{}, false
	}
	return i.conversations[idx], true
}

func (i *Inbox) Transcript() []Entry {
	return i.transcript
}

// Compose crea la entrada optimista con su clave de idempotencia.
func (i *Inbox) Compose(text string) (model.Message, error) {
	if i.open == "" || i.index(i.open) < 0 {
		return model.Message{}, ErrNoConversation
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, ErrEmptyMessage
	}
	msg := model.Message{
		ConversationID: i.open,
		Sender:         model.RefTo(i.me),
		Text:           text,
		CreatedAt:      model.Now(),
		ClientID:       uuid.NewString(),
	}
	i.transcript = append(i.transcript, Entry{Message: msg, Status: Sending})
	i.touch(i.open, msg)
	return msg, nil
}

// Confirm sustituye la entrada optimista por la que guardó el backend.
func (i *Inbox) Confirm(clientID string, stored model.Message) {
	if stored.ConversationID != "" && stored.ConversationID != i.open {
		return
	}
	idx := i.entry(clientID, stored.ID)
	if idx < 0 {
		return
	}
	if stored.ClientID == "" {
		stored.ClientID = clientID
	}
	if stored.Sender.User == nil && stored.Sender.ID == i.me.ID {
		stored.Sender = model.RefTo(i.me)
	}
	i.transcript[idx] = Entry{Message: stored, Status: Sent}
	i.dedupe(idx)
}

func (i *Inbox) Fail(clientID string) {
	if idx := i.entry(clientID, ""); idx >= 0 && i.transcript[idx].Status == Sending {
		i.transcript[idx].Status = Failed
	}
}

// Receive trata un mensaje que llega por realtime. Devuelve true si cambió el transcript abierto.
func (i *Inbox) Receive(msg model.Message) bool {
	conv := msg.ConversationID
	if conv == "" {
		conv = i.open
	}
	i.touch(conv, msg)
	if conv != i.open || i.open == "" {
		return false
	}

	if idx := i.entry(msg.ClientID, msg.ID); idx >= 0 {
		e := &i.transcript[idx]
		if e.ID == "" {
			e.ID = msg.ID
		}
		if e.Status == Sending {
			e.Status = Sent
		}
		return true
	}
	i.transcript = append(i.transcript, Entry{Message: msg, Status: Sent})
	return true
}

// entry busca por clientId y, si no, por id del backend.
func (i *Inbox) entry(clientID, id string) int {
	if clientID != "" {
		if idx := slices.IndexFunc(i.transcript, func(e Entry) bool { return e.ClientID == clientID }); idx >= 0 {
			return idx
		}
	}
	if id != "" {
		return slices.IndexFunc(i.transcript, func(e Entry) bool { return e.ID == id })
	}
	return -1
}

// dedupe quita otras entradas con el mismo id que la de keep.
func (i *Inbox) dedupe(keep int) {
	id := i.transcript[keep].ID
	if id == "" {
		return
	}
	kept := i.transcript[keep]
	i.transcript = slices.DeleteFunc(i.transcript, func(e Entry) bool { return e.ID == id })
	i.transcript = slices.Insert(i.transcript, min(keep, len(i.transcript)), kept)
}

func (i *Inbox) touch(convID string, msg model.Message) {
	if idx := i.index(convID); idx >= 0 {
		i.conversations[idx].LastMessage = msg.Text
	}
}

// Remove borra la conversación. Si era la abierta, deja de haber conversación abierta.
func (i *Inbox) Remove(id string) {
	if idx := i.index(id); idx >= 0 {
		i.conversations = slices.Delete(i.conversations, idx, idx+1)
	}
	if i.open == id {
		i.open = ""
		i.transcript = nil
	}
}
