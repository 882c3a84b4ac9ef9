package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"momsdigitales/util/model"
)

func TestUnreadFollowsMarkRead(t *testing.T) {
	f := NewFeed([]model.Notification{{ID: "a"}, {ID: "b", IsRead: true}})
	assert.Equal(t, 1, f.Unread())

	f.Prepend(model.Notification{ID: "c", Type: model.NotificationComment})
	f.Prepend(model.Notification{ID: "c"})
	assert.Len(t, f.Items(), 3)
	assert.Equal(t, "c", f.Items()[0].ID)
	assert.Equal(t, 2, f.Unread())

	f.MarkRead("a")
	assert.Equal(t, 1, f.Unread())

	f.MarkAllRead()
	assert.Zero(t, f.Unread())
}
