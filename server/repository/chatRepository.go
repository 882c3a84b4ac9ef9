package repository

import (
	"encoding/json"
	"slices"

	"momsdigitales/util/model"
)

func cloneConversation(c *model.Conversation) model.Conversation {
	var out model.Conversation
	b, _ := json.Marshal(c)
	_ = json.Unmarshal(b, &out)
	return out
}

func isMember(c *model.Conversation, userID string) bool {
	return slices.ContainsFunc(c.Members, func(u model.User) bool { return u.ID == userID })
}

func ListConversations(db *Database, userID string) []model.Conversation {
	db.mu.RLock()
	defer db.mu.RUnlock()

	convs := make([]model.Conversation, 0)
	for _, c := range db.Conversations {
		if isMember(c, userID) {
			convs = append(convs, cloneConversation(c))
		}
	}
	return convs
}

// FindOrCreateConversation devuelve la conversación entre a y b, creándola la primera vez.
func FindOrCreateConversation(db *Database, a, b model.User) model.Conversation {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, c := range db.Conversations {
		if isMember(c, a.ID) && isMember(c, b.ID) {
			return cloneConversation(c)
		}
	}
	c := &model.Conversation{ID: newID(), Members: []model.User{a, b}, Messages: []model.Message{}}
	db.Conversations[c.ID] = c
	return cloneConversation(c)
}

func GetConversation(db *Database, id string) (model.Conversation, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.Conversations[id]
	if !ok {
		return model.Conversation{}, ErrNotFound
	}
	return cloneConversation(c), nil
}

func DeleteConversation(db *Database, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.Conversations[id]; !ok {
		return ErrNotFound
	}
	delete(db.Conversations, id)
	return nil
}

// CreateMessage guarda el mensaje. Si ya existe uno con el mismo clientId lo devuelve sin duplicarlo.
func CreateMessage(db *Database, convID string, sender model.User, text, clientID string) (model.Message, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.Conversations[convID]
	if !ok {
		return model.Message{}, ErrNotFound
	}
	if clientID != "" {
		for _, m := range c.Messages {
			if m.ClientID == clientID {
				return m, nil
			}
		}
	}
	msg := model.Message{
		ID:             newID(),
		ConversationID: convID,
		Sender:         model.UserRef{ID: sender.ID},
		Text:           text,
		CreatedAt:      model.Now(),
		ClientID:       clientID,
	}
	c.Messages = append(c.Messages, msg)
	c.LastMessage = text
	return msg, nil
}

func IsMember(db *Database, convID, userID string) bool {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.Conversations[convID]
	return ok && isMember(c, userID)
}
