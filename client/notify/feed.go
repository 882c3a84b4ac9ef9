package notify

import (
	"slices"

	"momsdigitales/util/model"
)

// Feed es la lista de notificaciones de la barra superior, la más reciente primero.
type Feed struct {
	items []model.Notification
}

func NewFeed(items []model.Notification) *Feed {
	return &Feed{items: items}
}

func (f *Feed) Items() []model.Notification {
	return f.items
}

// Prepend añade la notificación recibida por realtime, ignorando repetidas.
func (f *Feed) Prepend(n model.Notification) {
	if n.ID != "" && slices.ContainsFunc(f.items, func(x model.Notification) bool { return x.ID == n.ID }) {
		return
	}
	f.items = append([]model.Notification{n}, f.items...)
}

func (f *Feed) MarkRead(id string) {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsRead = true
		}
	}
}

func (f *Feed) MarkAllRead() {
	for i := range f.items {
		f.items[i].IsRead = true
	}
}

func (f *Feed) Unread() int {
	n := 0
	for _, x := range f.items {
		if !x.IsRead {
			n++
		}
	}
	return n
}
