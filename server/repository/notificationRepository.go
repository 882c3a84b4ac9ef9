package repository

import (
	"momsdigitales/util/model"
)

func CreateNotification(db *Database, recipient string, kind model.NotificationType, sender model.User, content, link string) model.Notification {
	db.mu.Lock()
	defer db.mu.Unlock()

	n := &model.Notification{
		ID:        newID(),
		Recipient: recipient,
		Type:      kind,
		Sender:    &sender,
		Content:   content,
		Link:      link,
		CreatedAt: model.Now(),
	}
	db.Notifications[recipient] = append(db.Notifications[recipient], n)
	return *n
}

// ListNotifications devuelve las del usuario, la más nueva primero.
func ListNotifications(db *Database, userID string) []model.Notification {
	db.mu.RLock()
	defer db.mu.RUnlock()

	list := db.Notifications[userID]
	out := make([]model.Notification, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, *list[i])
	}
	return out
}

func MarkRead(db *Database, userID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, n := range db.Notifications[userID] {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return ErrNotFound
}

func MarkAllRead(db *Database, userID string) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, n := range db.Notifications[userID] {
		n.IsRead = true
	}
}
